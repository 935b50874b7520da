package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FieldSeparator delimits the code, price and name columns of a record row.
const FieldSeparator = ";"

// ErrMalformedRow is wrapped by every ParseItemRow failure.
var ErrMalformedRow = errors.New("malformed item row")

// Item is a single tracked catalog entry: its numeric code, a price and the
// display name. Item is a value type; copies never share mutable state, so
// changing a price always means building a new Item via WithPrice.
type Item struct {
	Code  int
	Price decimal.Decimal
	Name  string
}

// NewItem builds an Item without validating its fields.
func NewItem(code int, price decimal.Decimal, name string) Item {
	return Item{Code: code, Price: price, Name: name}
}

// Clone returns an independent copy of the item.
func (i Item) Clone() Item {
	return NewItem(i.Code, i.Price, i.Name)
}

// WithPrice returns a copy of the item carrying price p.
func (i Item) WithPrice(p decimal.Decimal) Item {
	return NewItem(i.Code, p, i.Name)
}

// Equal reports whether both items hold the same code, price and name.
func (i Item) Equal(o Item) bool {
	return i.Code == o.Code && i.Price.Equal(o.Price) && i.Name == o.Name
}

// Row serializes the item as a "code;price;name" line terminated by "\n".
// A separator inside the name is written as a comma so the row always parses
// back into three fields.
func (i Item) Row() string {
	name := strings.ReplaceAll(i.Name, FieldSeparator, ",")
	return strconv.Itoa(i.Code) + FieldSeparator + i.Price.String() + FieldSeparator + name + "\n"
}

func (i Item) String() string {
	return fmt.Sprintf("%d - %s %s", i.Code, i.Price.String(), i.Name)
}

// ParseItemRow is the inverse of Row. The line must split into exactly three
// fields and the first two must be numeric; nothing is coerced to zero.
func ParseItemRow(line string) (Item, error) {
	line = strings.TrimRight(line, "\r\n")

	fields := strings.Split(line, FieldSeparator)
	if len(fields) != 3 {
		return Item{}, fmt.Errorf("%w: want 3 fields, got %d", ErrMalformedRow, len(fields))
	}

	code, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return Item{}, fmt.Errorf("%w: code %q: %v", ErrMalformedRow, fields[0], err)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(fields[1]))
	if err != nil {
		return Item{}, fmt.Errorf("%w: price %q: %v", ErrMalformedRow, fields[1], err)
	}

	return NewItem(code, price, fields[2]), nil
}

// Codes returns the codes of items in order.
func Codes(items []Item) []int {
	codes := make([]int, 0, len(items))
	for _, it := range items {
		codes = append(codes, it.Code)
	}
	return codes
}
