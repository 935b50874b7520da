package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"price-watcher/models"
	"price-watcher/utils"
)

var (
	// priceRegexp captures the first amount in a price label, allowing
	// thousands separated by spaces and a decimal comma or point.
	priceRegexp  = regexp.MustCompile(`\d[\d\s\x{00a0}]*(?:[.,]\d+)?`)
	spaceRemover = strings.NewReplacer(" ", "", "\u00a0", "", "\t", "")
)

// Cleaner transforms RawListings into Items.
type Cleaner struct {
	logger *utils.Logger
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// Clean parses raw listings into items, keeping the first listing for each
// code. Listings whose price cannot be parsed are dropped with a warning.
func (c *Cleaner) Clean(raw []models.RawListing) []models.Item {
	seen := make(map[int]struct{})
	result := make([]models.Item, 0, len(raw))

	for _, r := range raw {
		if _, dup := seen[r.Code]; dup {
			c.logger.Debug("[cleaner] Duplicate code %d skipped: %s", r.Code, r.Title)
			continue
		}

		price, err := ParsePrice(r.RawPrice)
		if err != nil {
			c.logger.Warn("[cleaner] Dropping listing %d (%q): %v", r.Code, r.Title, err)
			continue
		}
		seen[r.Code] = struct{}{}

		result = append(result, models.NewItem(r.Code, price, listingName(r.RawName, r.Code)))
	}

	c.logger.Debug("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// ParsePrice extracts an amount from a price label using the decimal-comma
// convention.
// Examples:
//
//	"99,99 zł"     → 99.99
//	"1 299,00 PLN" → 1299.00
//	"149.5"        → 149.5
func ParsePrice(raw string) (decimal.Decimal, error) {
	match := priceRegexp.FindString(raw)
	if match == "" {
		return decimal.Zero, fmt.Errorf("no amount in price %q", raw)
	}

	normalised := strings.Replace(spaceRemover.Replace(match), ",", ".", 1)
	price, err := decimal.NewFromString(normalised)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse price %q: %w", raw, err)
	}
	return price, nil
}

// listingName strips everything up to and including the code token from a
// listing label, e.g. "LEGO Speed Champions 76916 Porsche 963" → "Porsche 963".
// Labels without the code are returned whitespace-normalised. The record
// field separator never survives into a name; it is replaced by a comma.
func listingName(label string, code int) string {
	label = strings.ReplaceAll(label, models.FieldSeparator, ",")
	fields := strings.FieldsFunc(label, unicode.IsSpace)
	want := strconv.Itoa(code)
	for i, f := range fields {
		if f == want {
			return strings.Join(fields[i+1:], " ")
		}
	}
	return strings.Join(fields, " ")
}
