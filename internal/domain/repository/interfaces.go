package repository

import (
	"context"
	"errors"

	"github.com/ShiblySohaib/wfmarket/internal/domain/models"
)

// ErrSessionNotFound indicates an unknown or expired fetch session id.
var ErrSessionNotFound = errors.New("session not found")

// ItemProvider supplies the tracked items. Read-only input collaborator.
type ItemProvider interface {
	Items(ctx context.Context) ([]models.TrackedItem, error)
}

// BalanceProvider supplies the source balance map. Read-only input collaborator.
type BalanceProvider interface {
	Balances(ctx context.Context) (models.SourceBalances, error)
}

// OrderFetcher performs one rate-limited market query for one item.
type OrderFetcher interface {
	FetchOrders(ctx context.Context, itemName string) models.FetchOutcome
}

// ProgressStore holds one progress record per fetch session, expiring after a
// fixed retention window. Writes are whole-record replacements.
type ProgressStore interface {
	Put(ctx context.Context, sessionID string, rec *models.ProgressRecord) error
	Get(ctx context.Context, sessionID string) (*models.ProgressRecord, error)
	Delete(ctx context.Context, sessionID string) error
}

// Metrics records operational metrics for fetch runs.
type Metrics interface {
	RecordFetchOutcome(outcome string)
	RecordRunStarted()
	RecordRetryPass()
	RecordRunDuration(seconds float64)
	RecordMarketRows(n int)
}
