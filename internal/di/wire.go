//go:build wireinject
// +build wireinject

package di

import (
	"github.com/ShiblySohaib/wfmarket/pkg/config"
	"github.com/ShiblySohaib/wfmarket/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Progress store
		ProvideCacheService,
		ProvideProgressStore,

		// Inventory inputs
		ProvideInventory,
		ProvideItemProvider,
		ProvideBalanceProvider,

		// Market access
		ProvideRateLimiter,
		ProvideOrderFetcher,

		// Use cases
		ProvideFetchConfig,
		ProvideMarketFetcher,

		// HTTP surface
		ProvideMarketHandler,
		ProvideHTTPHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
