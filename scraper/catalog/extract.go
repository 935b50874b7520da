package catalog

import (
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"price-watcher/config"
	"price-watcher/models"
	"price-watcher/utils"
)

// Extract collects raw listings for watched codes from a catalog document.
//
// Each element matched by sel.Item is a listing anchor. Its title attribute
// is split on whitespace and the first numeric token present in watch
// becomes the listing code. Name and price text come from the anchor's
// parent container.
func Extract(doc *goquery.Document, sel config.Selectors, watch *utils.Set[int]) []models.RawListing {
	listings := make([]models.RawListing, 0)
	now := time.Now()

	doc.Find(sel.Item).Each(func(_ int, anchor *goquery.Selection) {
		title, _ := anchor.Attr("title")
		code, ok := watchedCode(title, watch)
		if !ok {
			return
		}

		container := anchor.Parent()
		name := strings.TrimSpace(container.Find(sel.Name).First().Text())
		if name == "" {
			name = title
		}

		listings = append(listings, models.RawListing{
			Code:      code,
			Title:     title,
			RawName:   name,
			RawPrice:  strings.TrimSpace(container.Find(sel.Price).First().Text()),
			ScrapedAt: now,
		})
	})

	return listings
}

// CodesInTitle returns the numeric whitespace-separated tokens of a listing title.
func CodesInTitle(title string) []int {
	var codes []int
	for _, tok := range strings.Fields(title) {
		if n, err := strconv.Atoi(tok); err == nil {
			codes = append(codes, n)
		}
	}
	return codes
}

func watchedCode(title string, watch *utils.Set[int]) (int, bool) {
	for _, code := range CodesInTitle(title) {
		if watch.Contains(code) {
			return code, true
		}
	}
	return 0, false
}
