package models

// OutcomeStatus classifies one item fetch.
type OutcomeStatus string

const (
	OutcomeSuccess     OutcomeStatus = "success"
	OutcomeRateLimited OutcomeStatus = "rate_limited"
	OutcomeFailed      OutcomeStatus = "failed"
)

// FetchOutcome is the result of querying the market for a single item.
// It lives only for the duration of one orchestration run.
type FetchOutcome struct {
	Item   string
	Status OutcomeStatus
	Orders []MarketOrder
	Err    string
}

// MarketOrder is one upstream buy offer from an in-game user.
type MarketOrder struct {
	Buyer      string
	Platinum   int
	Quantity   int
	Rank       int
	Reputation int
	UserStatus string
}

// MarketRow pairs an item with one of its buy orders, enriched with item
// metadata and the affordability flag. This is the externally visible output.
type MarketRow struct {
	Item              string `json:"item"`
	ItemID            int    `json:"item_id"`
	Category          string `json:"category"`
	Source            string `json:"source"`
	InventoryQuantity int    `json:"inventory_quantity"`
	Buyer             string `json:"buyer"`
	Platinum          int    `json:"platinum"`
	OrderQuantity     int    `json:"order_quantity"`
	Rank              int    `json:"rank"`
	UserReputation    int    `json:"user_reputation"`
	UserStatus        string `json:"user_status"`
	IsAffordable      bool   `json:"is_affordable"`
}
