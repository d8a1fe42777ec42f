package di

import (
	"io"

	drepo "TrendGuard/internal/domain/repository"
	"TrendGuard/internal/handler/api"
	icache "TrendGuard/internal/service/cache"
	"TrendGuard/internal/service/coingecko"
	"TrendGuard/internal/service/polygon"
	"TrendGuard/internal/service/ratelimit"
	"TrendGuard/internal/services/analytics"
	"TrendGuard/internal/usecase"
	"TrendGuard/pkg/config"
	xhttp "TrendGuard/pkg/http"
	applogger "TrendGuard/pkg/logger"
	"TrendGuard/pkg/metrics"
	"TrendGuard/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	lc := &applogger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}
	if lc.Level == "" {
		lc.Level = "info"
	}
	if lc.Format == "" {
		lc.Format = "console"
	}
	if lc.Output == "" {
		lc.Output = "stdout"
	}
	return applogger.New(lc)
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideLimiter creates the shared outbound rate limiter.
func ProvideLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideBarSources builds the ordered source list: Polygon first, then
// CoinGecko. The acquirer skips sources whose credentials are missing.
func ProvideBarSources(cfg *config.Config, limiter *ratelimit.Limiter) []drepo.BarSource {
	return []drepo.BarSource{
		polygon.New(
			cfg.Polygon.APIKey,
			cfg.Polygon.BaseURL,
			cfg.Polygon.Timeout.Std(),
			cfg.Polygon.WindowPadDays,
			limiter,
			cfg.RateLimit.Capacity,
			cfg.RateLimit.RefillPerSec,
		),
		coingecko.New(
			cfg.CoinGecko.BaseURL,
			cfg.CoinGecko.QuoteCurrency,
			cfg.CoinGecko.Timeout.Std(),
			limiter,
			cfg.RateLimit.Capacity,
			cfg.RateLimit.RefillPerSec,
		),
	}
}

// ProvideMemoCache creates the in-process TTL memo.
func ProvideMemoCache() *icache.TTLCache {
	return icache.NewTTLCache()
}

// ProvideSecondLevel creates the optional Redis-backed cache level.
// Returns nil when disabled; the acquirer treats nil as memory-only.
func ProvideSecondLevel(cfg *config.Config) icache.BytesCache {
	if !cfg.Cache.Redis.Enabled {
		return nil
	}
	return icache.NewRedisCache(icache.RedisConfig{
		Addr:     cfg.Cache.Redis.Addr,
		Password: cfg.Cache.Redis.Password,
		DB:       cfg.Cache.Redis.DB,
	})
}

// ProvideAcquirer creates the acquisition orchestrator.
func ProvideAcquirer(
	sources []drepo.BarSource,
	memo *icache.TTLCache,
	second icache.BytesCache,
	cfg *config.Config,
	m drepo.Metrics,
	l *applogger.Logger,
) *usecase.Acquirer {
	return usecase.NewAcquirer(sources, memo, second, cfg.Cache.TTL.Std(), m, l)
}

// ProvideDetector creates the pump detector from configured thresholds.
func ProvideDetector(cfg *config.Config) *analytics.Detector {
	return analytics.NewDetector(analytics.Thresholds{
		PriceChangePct:   cfg.Detector.PriceChangePct,
		VolumeChangePct:  cfg.Detector.VolumeChangePct,
		RiskPriceWeight:  cfg.Detector.RiskPriceWeight,
		RiskVolumeWeight: cfg.Detector.RiskVolumeWeight,
	})
}

// ProvideAnalyzer creates the analyze use case.
func ProvideAnalyzer(acquirer *usecase.Acquirer, detector *analytics.Detector, m drepo.Metrics, l *applogger.Logger) *usecase.Analyzer {
	return usecase.NewAnalyzer(acquirer, detector, m, l)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(l *applogger.Logger, analyzer *usecase.Analyzer) xhttp.Handler {
	return api.NewAnalyzeHandler(l, analyzer)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, handler xhttp.Handler, l *applogger.Logger, second icache.BytesCache) *server.App {
	var closers []io.Closer
	if c, ok := second.(io.Closer); ok && c != nil {
		closers = append(closers, c)
	}
	return server.New(cfg, handler, l, closers...)
}
