package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ShiblySohaib/wfmarket/internal/domain/models"
	drepo "github.com/ShiblySohaib/wfmarket/internal/domain/repository"
	xlogger "github.com/ShiblySohaib/wfmarket/pkg/logger"
)

// FetchConfig holds the orchestration knobs.
type FetchConfig struct {
	FirstPassWorkers int
	RetryWorkers     int
	MaxRetryPasses   int
	RetryCooldown    time.Duration
	TopOrdersPerItem int
}

// MarketFetcher drives one background fetch run per session: fan-out over a
// bounded worker pool, bounded retries for rate-limited items, and progress
// snapshots published to the session store. Individual item failures never
// abort a run; every run ends in a complete record.
type MarketFetcher struct {
	items    drepo.ItemProvider
	balances drepo.BalanceProvider
	fetcher  drepo.OrderFetcher
	store    drepo.ProgressStore
	metrics  drepo.Metrics
	logger   *xlogger.Logger
	cfg      FetchConfig
}

// NewMarketFetcher creates the fetch orchestrator.
func NewMarketFetcher(
	items drepo.ItemProvider,
	balances drepo.BalanceProvider,
	fetcher drepo.OrderFetcher,
	store drepo.ProgressStore,
	metrics drepo.Metrics,
	logger *xlogger.Logger,
	cfg FetchConfig,
) *MarketFetcher {
	return &MarketFetcher{
		items:    items,
		balances: balances,
		fetcher:  fetcher,
		store:    store,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

// Start snapshots the inputs, publishes the starting record and launches the
// background run. The returned session id is the handle for progress polling.
func (f *MarketFetcher) Start(ctx context.Context) (string, error) {
	items, err := f.items.Items(ctx)
	if err != nil {
		return "", fmt.Errorf("load items: %w", err)
	}

	// Balance snapshot taken once; mid-run balance edits are not reflected.
	balances, err := f.balances.Balances(ctx)
	if err != nil {
		return "", fmt.Errorf("load balances: %w", err)
	}

	sessionID := uuid.NewString()

	rec := &models.ProgressRecord{
		Status:      models.StatusStarting,
		MarketData:  []models.MarketRow{},
		FailedItems: []models.FailedItem{},
		TotalItems:  len(items),
	}
	if len(items) == 0 {
		rec.Status = models.StatusComplete
		rec.Progress = 100
		if err := f.store.Put(ctx, sessionID, rec); err != nil {
			return "", err
		}
		return sessionID, nil
	}
	if err := f.store.Put(ctx, sessionID, rec); err != nil {
		return "", err
	}

	// The run outlives the request that started it.
	go f.run(context.Background(), sessionID, items, balances)

	return sessionID, nil
}

// run executes all passes for one session. It is the only goroutine mutating
// the accumulation state; workers hand results back over a channel.
func (f *MarketFetcher) run(ctx context.Context, sessionID string, items []models.TrackedItem, balances models.SourceBalances) {
	start := time.Now()
	f.metrics.RecordRunStarted()
	f.logger.Info("market fetch started",
		xlogger.String("session", sessionID),
		xlogger.Int("items", len(items)),
	)

	byName := make(map[string]models.TrackedItem, len(items))
	pending := make([]string, 0, len(items))
	for _, it := range items {
		byName[it.Name] = it
		pending = append(pending, it.Name)
	}

	state := &runState{
		sessionID: sessionID,
		total:     len(items),
		rows:      []models.MarketRow{},
		failures:  []models.FailedItem{},
		pubRows:   []models.MarketRow{},
	}

	retryPass := 0
	for {
		workers := f.cfg.FirstPassWorkers
		status := models.StatusFetching
		if retryPass > 0 {
			workers = f.cfg.RetryWorkers
			status = models.StatusRetrying
		}
		state.status = status
		f.publishProgress(ctx, state)

		var nextRetry []string
		for outcome := range f.runPass(ctx, pending, workers) {
			f.metrics.RecordFetchOutcome(string(outcome.Status))
			switch outcome.Status {
			case models.OutcomeSuccess:
				item := byName[outcome.Item]
				state.rows = append(state.rows, f.expandRows(item, outcome.Orders, balances)...)
				state.processed++
				state.successful++
				f.publishProgress(ctx, state)
			case models.OutcomeRateLimited:
				nextRetry = append(nextRetry, outcome.Item)
			case models.OutcomeFailed:
				state.failures = append(state.failures, models.FailedItem{Item: outcome.Item, Error: outcome.Err})
				state.processed++
				f.publishProgress(ctx, state)
			}
		}

		f.publishFull(ctx, state)

		if len(nextRetry) == 0 {
			break
		}
		if retryPass >= f.cfg.MaxRetryPasses {
			for _, name := range nextRetry {
				state.failures = append(state.failures, models.FailedItem{
					Item:  name,
					Error: "rate limit retries exhausted",
				})
				state.processed++
			}
			break
		}

		retryPass++
		f.metrics.RecordRetryPass()
		f.logger.Info("retrying rate-limited items",
			xlogger.String("session", sessionID),
			xlogger.Int("pass", retryPass),
			xlogger.Int("items", len(nextRetry)),
		)
		sleepCtx(ctx, f.cfg.RetryCooldown)
		pending = nextRetry
	}

	state.status = models.StatusCompleting
	f.publishFull(ctx, state)

	state.status = models.StatusComplete
	f.publishFull(ctx, state)

	f.metrics.RecordRunDuration(time.Since(start).Seconds())
	f.metrics.RecordMarketRows(len(state.rows))
	f.logger.Info("market fetch completed",
		xlogger.String("session", sessionID),
		xlogger.Int("orders", len(state.rows)),
		xlogger.Int("failed", len(state.failures)),
		xlogger.Duration("took", time.Since(start)),
	)
}

// runPass fans names out to a bounded pool and streams outcomes back in
// completion order. The returned channel closes when the pass is done.
func (f *MarketFetcher) runPass(ctx context.Context, names []string, workers int) <-chan models.FetchOutcome {
	if workers > len(names) {
		workers = len(names)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	results := make(chan models.FetchOutcome)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				results <- f.fetcher.FetchOrders(ctx, name)
			}
		}()
	}

	go func() {
		for _, name := range names {
			jobs <- name
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	return results
}

// expandRows turns the top orders of a successful fetch into market rows.
// Affordability is computed once per item from the run's balance snapshot.
func (f *MarketFetcher) expandRows(item models.TrackedItem, orders []models.MarketOrder, balances models.SourceBalances) []models.MarketRow {
	affordable := balances.Covers(item)

	source := item.Source
	if source == "" {
		source = "Unknown"
	}

	top := orders
	if f.cfg.TopOrdersPerItem > 0 && len(top) > f.cfg.TopOrdersPerItem {
		top = top[:f.cfg.TopOrdersPerItem]
	}

	rows := make([]models.MarketRow, 0, len(top))
	for _, o := range top {
		rows = append(rows, models.MarketRow{
			Item:              item.Name,
			ItemID:            item.ID,
			Category:          item.Category,
			Source:            source,
			InventoryQuantity: item.Quantity,
			Buyer:             o.Buyer,
			Platinum:          o.Platinum,
			OrderQuantity:     o.Quantity,
			Rank:              o.Rank,
			UserReputation:    o.Reputation,
			UserStatus:        o.UserStatus,
			IsAffordable:      affordable,
		})
	}
	return rows
}

// runState is owned by the run goroutine; nothing else touches it.
type runState struct {
	sessionID  string
	status     models.FetchStatus
	total      int
	processed  int
	successful int
	rows       []models.MarketRow
	failures   []models.FailedItem

	// pubRows is the row set from the last full publish; cheap progress-only
	// publishes reuse it instead of re-sorting the accumulator.
	pubRows []models.MarketRow
}

func (s *runState) record() *models.ProgressRecord {
	progress := 100
	if s.total > 0 {
		progress = s.processed * 100 / s.total
	}
	failures := make([]models.FailedItem, len(s.failures))
	copy(failures, s.failures)
	return &models.ProgressRecord{
		Status:          s.status,
		MarketData:      s.pubRows,
		FailedItems:     failures,
		TotalOrders:     len(s.pubRows),
		TotalFailed:     len(failures),
		Progress:        progress,
		ProcessedItems:  s.processed,
		SuccessfulItems: s.successful,
		TotalItems:      s.total,
	}
}

// publishProgress writes counters only; the row set stays at the last full
// snapshot. Keeps per-result publish cost flat under high fan-out.
func (f *MarketFetcher) publishProgress(ctx context.Context, s *runState) {
	if err := f.store.Put(ctx, s.sessionID, s.record()); err != nil {
		f.logger.Warn("progress publish failed",
			xlogger.String("session", s.sessionID),
			xlogger.Error(err),
		)
	}
}

// publishFull re-sorts the accumulated rows by platinum descending and
// publishes the complete snapshot.
func (f *MarketFetcher) publishFull(ctx context.Context, s *runState) {
	sorted := make([]models.MarketRow, len(s.rows))
	copy(sorted, s.rows)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Platinum > sorted[j].Platinum })
	s.pubRows = sorted
	f.publishProgress(ctx, s)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
