package storage

import "price-watcher/models"

// ItemStore loads and saves item record lists.
//
// Load never fails: a missing or unreadable resource yields an empty list.
// Save replaces the whole resource with items.
type ItemStore interface {
	Load(path string) []models.Item
	Save(path string, items []models.Item) error
}
