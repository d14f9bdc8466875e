//go:build wireinject
// +build wireinject

package di

import (
	"github.com/cuongccna/tradingjournalai-sub000/pkg/config"
	"github.com/cuongccna/tradingjournalai-sub000/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideRedisClient,
		ProvideMetrics,

		// Repositories
		ProvideCredentialStore,
		ProvideCredentialResolver,
		ProvideNewsCache,

		// Upstream adapters
		ProvideAdapters,
		ProvideMarketProviders,
		ProvideNewsProviders,
		ProvideFallback,

		// Use cases
		ProvideMarketAggregator,
		ProvideNewsAggregator,

		// HTTP
		ProvideRateLimiter,
		ProvideHandlers,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
