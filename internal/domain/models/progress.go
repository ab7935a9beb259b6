package models

// FetchStatus is the orchestrator state published with each snapshot.
type FetchStatus string

const (
	StatusStarting   FetchStatus = "starting"
	StatusFetching   FetchStatus = "fetching"
	StatusRetrying   FetchStatus = "retrying"
	StatusCompleting FetchStatus = "completing"
	StatusComplete   FetchStatus = "complete"
)

// FailedItem records one item that could not be fetched, with the reason.
type FailedItem struct {
	Item  string `json:"item"`
	Error string `json:"error"`
}

// ProgressRecord is the published state of one fetch session. The orchestrator
// replaces the whole record on every publish; once Status is StatusComplete
// the record is never mutated again.
type ProgressRecord struct {
	Status          FetchStatus  `json:"status"`
	MarketData      []MarketRow  `json:"market_data"`
	FailedItems     []FailedItem `json:"failed_items"`
	TotalOrders     int          `json:"total_orders"`
	TotalFailed     int          `json:"total_failed"`
	Progress        int          `json:"progress"`
	ProcessedItems  int          `json:"processed_items"`
	SuccessfulItems int          `json:"successful_items"`
	TotalItems      int          `json:"total_items"`
}
