package models

import "strings"

// TrackedItem is one inventory entry whose market price is tracked.
// Price and Quantity are non-negative.
type TrackedItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Source   string `json:"source,omitempty"`
	Quantity int    `json:"quantity"`
	Price    int    `json:"price"`
}

// SourceBalances maps a lower-cased source name to its available balance.
// A missing key means zero balance.
type SourceBalances map[string]int

// Covers reports whether the item's price is coverable by the balance of its
// source. Items without a source are unconstrained and always affordable.
func (b SourceBalances) Covers(item TrackedItem) bool {
	src := strings.ToLower(strings.TrimSpace(item.Source))
	if src == "" {
		return true
	}
	return item.Price <= b[src]
}
