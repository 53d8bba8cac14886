//go:build wireinject
// +build wireinject

package di

import (
	"StratLab/internal/usecase"
	"StratLab/pkg/config"
	"StratLab/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvidePrometheusRegistry,
		ProvideMetrics,
		ProvideAPIMetrics,

		// Domain
		ProvideIndicatorRegistry,
		ProvideSpecRegistry,
		ProvideSchema,
		ProvideResultCache,

		// Use cases
		usecase.NewEvaluator,
		ProvideIndicatorService,
		ProvideStrategyService,

		// Transport
		ProvideHTTPHandler,
		ProvideRateLimiter,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}
