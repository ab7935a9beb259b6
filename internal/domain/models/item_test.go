package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceBalancesCovers(t *testing.T) {
	balances := SourceBalances{"red veil": 50000}

	tests := []struct {
		name string
		item TrackedItem
		want bool
	}{
		{"price below balance", TrackedItem{Source: "red veil", Price: 20000}, true},
		{"price equals balance", TrackedItem{Source: "red veil", Price: 50000}, true},
		{"price above balance", TrackedItem{Source: "red veil", Price: 60000}, false},
		{"default price is affordable", TrackedItem{Source: "red veil", Price: 25000}, true},
		{"unknown source", TrackedItem{Source: "new loka", Price: 1}, false},
		{"no source always affordable", TrackedItem{Source: "", Price: 999999}, true},
		{"source lookup is case insensitive", TrackedItem{Source: "Red Veil", Price: 100}, true},
		{"source lookup trims whitespace", TrackedItem{Source: " red veil ", Price: 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, balances.Covers(tt.item))
		})
	}
}

func TestSourceBalancesCoversEmpty(t *testing.T) {
	var balances SourceBalances

	assert.True(t, balances.Covers(TrackedItem{Price: 100}))
	assert.False(t, balances.Covers(TrackedItem{Source: "red veil", Price: 100}))
}
