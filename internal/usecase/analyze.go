package usecase

import (
	"context"
	"time"

	"TrendGuard/internal/domain/models"
	drepo "TrendGuard/internal/domain/repository"
	"TrendGuard/internal/services/analytics"
	xlogger "TrendGuard/pkg/logger"
)

// Analyzer runs the full analyze pipeline: acquire a canonical table, flag
// pump signals, and summarize the series. Everything it produces is
// request-scoped.
type Analyzer struct {
	acquirer *Acquirer
	detector *analytics.Detector
	metrics  drepo.Metrics
	logger   *xlogger.Logger
}

func NewAnalyzer(acquirer *Acquirer, detector *analytics.Detector, metrics drepo.Metrics, logger *xlogger.Logger) *Analyzer {
	return &Analyzer{acquirer: acquirer, detector: detector, metrics: metrics, logger: logger}
}

// Analyze acquires daily bars for symbol and runs the detector over them.
// The only failure it surfaces is repository.ErrNoData.
func (a *Analyzer) Analyze(ctx context.Context, symbol string, days int, pref Preference) (*models.Analysis, error) {
	start := time.Now()

	bars, source, attempts, err := a.acquirer.Acquire(ctx, symbol, days, pref)
	if err != nil {
		return nil, err
	}

	alerts := a.detector.Detect(bars)
	stats := analytics.Describe(bars)

	a.metrics.RecordAlerts(symbol, len(alerts))
	a.metrics.RecordLatency("analyze", time.Since(start).Seconds())
	a.logger.Info("analysis complete",
		xlogger.String("symbol", symbol),
		xlogger.String("source", source),
		xlogger.Int("bars", len(bars)),
		xlogger.Int("alerts", len(alerts)))

	return &models.Analysis{
		Symbol:   symbol,
		Source:   source,
		Days:     days,
		Bars:     bars,
		Alerts:   alerts,
		Stats:    stats,
		Attempts: attempts,
	}, nil
}
