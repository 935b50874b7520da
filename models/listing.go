package models

import "time"

// RawListing holds unprocessed text scraped from one catalog listing.
// The cleaner turns it into an Item.
type RawListing struct {
	Code      int    // watched code matched in the listing title
	Title     string // title attribute of the listing anchor
	RawName   string
	RawPrice  string
	ScrapedAt time.Time
}

// CycleReport summarises one completed check cycle.
type CycleReport struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Watched   int
	Latest    []Item
	Improved  []Item
	NextBest  []Item
}
