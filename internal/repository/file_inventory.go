package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ShiblySohaib/wfmarket/internal/domain/models"
)

// Defaults applied to sparse item entries.
const (
	defaultCategory = "mods"
	defaultQuantity = 1
	defaultPrice    = 25000
)

// FileInventory provides tracked items and source balances from JSON files.
// The files are read on every call so edits are picked up without a restart;
// a fetch run still sees a single snapshot because it reads them once.
type FileInventory struct {
	itemsPath    string
	balancesPath string
}

// NewFileInventory creates a file-backed inventory provider. balancesPath may
// be empty, in which case every source has zero balance.
func NewFileInventory(itemsPath, balancesPath string) *FileInventory {
	return &FileInventory{itemsPath: itemsPath, balancesPath: balancesPath}
}

// itemEntry accepts either a bare item name or a full object.
type itemEntry struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Source   string `json:"source"`
	Quantity *int   `json:"quantity"`
	Price    *int   `json:"price"`
}

func (e *itemEntry) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*e = itemEntry{Name: name}
		return nil
	}
	type plain itemEntry
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = itemEntry(p)
	return nil
}

// Items reads the tracked item list.
func (f *FileInventory) Items(ctx context.Context) ([]models.TrackedItem, error) {
	b, err := os.ReadFile(f.itemsPath)
	if err != nil {
		return nil, fmt.Errorf("read items file: %w", err)
	}

	var entries []itemEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse items file: %w", err)
	}

	items := make([]models.TrackedItem, 0, len(entries))
	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("items file: entry %d has no name", i)
		}
		item := models.TrackedItem{
			ID:       i + 1,
			Name:     e.Name,
			Category: e.Category,
			Source:   e.Source,
			Quantity: defaultQuantity,
			Price:    defaultPrice,
		}
		if item.Category == "" {
			item.Category = defaultCategory
		}
		if e.Quantity != nil {
			item.Quantity = *e.Quantity
		}
		if e.Price != nil {
			item.Price = *e.Price
		}
		if item.Quantity < 0 || item.Price < 0 {
			return nil, fmt.Errorf("items file: %q has negative quantity or price", e.Name)
		}
		items = append(items, item)
	}
	return items, nil
}

// Balances reads the source balance map. Keys are lower-cased and trimmed.
func (f *FileInventory) Balances(ctx context.Context) (models.SourceBalances, error) {
	balances := make(models.SourceBalances)
	if f.balancesPath == "" {
		return balances, nil
	}

	b, err := os.ReadFile(f.balancesPath)
	if err != nil {
		if os.IsNotExist(err) {
			return balances, nil
		}
		return nil, fmt.Errorf("read balances file: %w", err)
	}

	var raw map[string]int
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("parse balances file: %w", err)
	}

	for source, balance := range raw {
		if balance < 0 {
			return nil, fmt.Errorf("balances file: %q has negative balance", source)
		}
		balances[strings.ToLower(strings.TrimSpace(source))] = balance
	}
	return balances, nil
}
