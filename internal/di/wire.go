//go:build wireinject
// +build wireinject

package di

import (
	"TrendGuard/pkg/config"
	"TrendGuard/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideLimiter,

		// Sources and caching
		ProvideBarSources,
		ProvideMemoCache,
		ProvideSecondLevel,

		// Use cases
		ProvideAcquirer,
		ProvideDetector,
		ProvideAnalyzer,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
