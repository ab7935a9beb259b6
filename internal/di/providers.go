package di

import (
	"fmt"

	"github.com/ShiblySohaib/wfmarket/internal/domain/repository"
	"github.com/ShiblySohaib/wfmarket/internal/handler/api"
	internalrepo "github.com/ShiblySohaib/wfmarket/internal/repository"
	"github.com/ShiblySohaib/wfmarket/internal/service/market"
	"github.com/ShiblySohaib/wfmarket/internal/service/ratelimit"
	"github.com/ShiblySohaib/wfmarket/internal/usecase"
	"github.com/ShiblySohaib/wfmarket/pkg/cache"
	"github.com/ShiblySohaib/wfmarket/pkg/config"
	xhttp "github.com/ShiblySohaib/wfmarket/pkg/http"
	applogger "github.com/ShiblySohaib/wfmarket/pkg/logger"
	"github.com/ShiblySohaib/wfmarket/pkg/metrics"
	"github.com/ShiblySohaib/wfmarket/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideCacheService creates the progress store backend.
func ProvideCacheService(cfg *config.Config) (cache.Service, error) {
	if cfg.Progress.Backend == "redis" {
		c, err := cache.NewRedisCache(
			cache.WithRedisHost(cfg.Progress.Redis.Host),
			cache.WithRedisPort(cfg.Progress.Redis.Port),
			cache.WithRedisPassword(cfg.Progress.Redis.Password),
			cache.WithRedisDB(cfg.Progress.Redis.DB),
			cache.WithRedisPrefix("wfmarket"),
		)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		return c, nil
	}
	return cache.NewMemoryCache(), nil
}

// ProvideProgressStore creates the session progress store.
func ProvideProgressStore(svc cache.Service, cfg *config.Config) repository.ProgressStore {
	return internalrepo.NewProgressCache(svc, cfg.Progress.TTL)
}

// ProvideInventory creates the file-backed item/balance provider.
func ProvideInventory(cfg *config.Config) *internalrepo.FileInventory {
	return internalrepo.NewFileInventory(cfg.Inventory.ItemsFile, cfg.Inventory.BalancesFile)
}

// ProvideItemProvider exposes the inventory as an item source.
func ProvideItemProvider(inv *internalrepo.FileInventory) repository.ItemProvider {
	return inv
}

// ProvideBalanceProvider exposes the inventory as a balance source.
func ProvideBalanceProvider(inv *internalrepo.FileInventory) repository.BalanceProvider {
	return inv
}

// ProvideRateLimiter creates the shared upstream rate limiter.
func ProvideRateLimiter(cfg *config.Config) *ratelimit.Limiter {
	return ratelimit.New(cfg.Market.RateLimit.MaxRequests, cfg.Market.RateLimit.Window)
}

// ProvideOrderFetcher creates the market API client.
func ProvideOrderFetcher(cfg *config.Config, limiter *ratelimit.Limiter, l *applogger.Logger) repository.OrderFetcher {
	return market.New(cfg.Market.BaseURL, cfg.Market.Timeout, limiter, l)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideFetchConfig extracts orchestration knobs from config.
func ProvideFetchConfig(cfg *config.Config) usecase.FetchConfig {
	return usecase.FetchConfig{
		FirstPassWorkers: cfg.Fetch.FirstPassWorkers,
		RetryWorkers:     cfg.Fetch.RetryWorkers,
		MaxRetryPasses:   cfg.Fetch.MaxRetryPasses,
		RetryCooldown:    cfg.Fetch.RetryCooldown,
		TopOrdersPerItem: cfg.Fetch.TopOrdersPerItem,
	}
}

// ProvideMarketFetcher creates the fetch orchestrator.
func ProvideMarketFetcher(
	items repository.ItemProvider,
	balances repository.BalanceProvider,
	fetcher repository.OrderFetcher,
	store repository.ProgressStore,
	m repository.Metrics,
	l *applogger.Logger,
	fc usecase.FetchConfig,
) *usecase.MarketFetcher {
	return usecase.NewMarketFetcher(items, balances, fetcher, store, m, l, fc)
}

// ProvideMarketHandler creates the HTTP handler.
func ProvideMarketHandler(l *applogger.Logger, fetcher *usecase.MarketFetcher, store repository.ProgressStore) *api.MarketHandler {
	return api.NewMarketHandler(l, fetcher, store)
}

// ProvideHTTPHandler exposes the market handler for route registration.
func ProvideHTTPHandler(h *api.MarketHandler) xhttp.Handler {
	return h
}

// ProvideApp creates the application.
func ProvideApp(cfg *config.Config, l *applogger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, l, handler)
}
