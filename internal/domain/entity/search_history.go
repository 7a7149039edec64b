package entity

import "time"

// SearchHistory counts how often a product appeared in search results; feeds
// the popular-products section.
type SearchHistory struct {
	ID           string
	ProductID    string
	SearchCount  int
	LastSearched time.Time
}
