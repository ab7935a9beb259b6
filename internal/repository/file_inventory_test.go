package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ShiblySohaib/wfmarket/internal/domain/models"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestItemsMixedEntries(t *testing.T) {
	path := writeTemp(t, "items.json", `[
		{"name": "Abating Link", "category": "mods", "source": "red veil", "quantity": 2, "price": 20000},
		"Serration",
		{"name": "Gleaming Blight"}
	]`)
	inv := NewFileInventory(path, "")

	items, err := inv.Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)

	assert.Equal(t, models.TrackedItem{
		ID: 1, Name: "Abating Link", Category: "mods", Source: "red veil", Quantity: 2, Price: 20000,
	}, items[0])

	// Bare strings and sparse objects pick up the defaults.
	assert.Equal(t, models.TrackedItem{
		ID: 2, Name: "Serration", Category: "mods", Quantity: 1, Price: 25000,
	}, items[1])
	assert.Equal(t, models.TrackedItem{
		ID: 3, Name: "Gleaming Blight", Category: "mods", Quantity: 1, Price: 25000,
	}, items[2])
}

func TestItemsZeroValuesKept(t *testing.T) {
	path := writeTemp(t, "items.json", `[{"name": "Serration", "quantity": 0, "price": 0}]`)

	items, err := NewFileInventory(path, "").Items(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, items[0].Quantity)
	assert.Equal(t, 0, items[0].Price)
}

func TestItemsValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing name", `[{"category": "mods"}]`},
		{"blank name", `["   "]`},
		{"negative price", `[{"name": "Serration", "price": -5}]`},
		{"negative quantity", `[{"name": "Serration", "quantity": -1}]`},
		{"not a list", `{"name": "Serration"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTemp(t, "items.json", tt.content)
			_, err := NewFileInventory(path, "").Items(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestItemsFileMissing(t *testing.T) {
	inv := NewFileInventory(filepath.Join(t.TempDir(), "absent.json"), "")
	_, err := inv.Items(context.Background())
	assert.Error(t, err)
}

func TestBalancesNormalizesKeys(t *testing.T) {
	path := writeTemp(t, "balances.json", `{" Red Veil ": 50000, "new loka": 12000}`)

	balances, err := NewFileInventory("unused", path).Balances(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SourceBalances{"red veil": 50000, "new loka": 12000}, balances)
}

func TestBalancesOptional(t *testing.T) {
	t.Run("no path configured", func(t *testing.T) {
		balances, err := NewFileInventory("unused", "").Balances(context.Background())
		require.NoError(t, err)
		assert.Empty(t, balances)
	})

	t.Run("file missing", func(t *testing.T) {
		inv := NewFileInventory("unused", filepath.Join(t.TempDir(), "absent.json"))
		balances, err := inv.Balances(context.Background())
		require.NoError(t, err)
		assert.Empty(t, balances)
	})
}

func TestBalancesNegativeRejected(t *testing.T) {
	path := writeTemp(t, "balances.json", `{"red veil": -1}`)
	_, err := NewFileInventory("unused", path).Balances(context.Background())
	assert.Error(t, err)
}
