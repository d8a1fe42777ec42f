package repository

import (
	"context"
	"errors"

	"TrendGuard/internal/domain/models"
)

// ErrNoData is the only failure the acquisition layer surfaces. Every
// provider-level problem (missing credential, network failure, empty or
// malformed response, unresolvable symbol) is downgraded to it once the
// attempt list is exhausted.
var ErrNoData = errors.New("no data available for symbol")

// BarSource fetches a daily-bar table for one symbol. Implementations must
// not panic across this boundary; any provider or network problem comes back
// as an error the orchestrator can fall through.
type BarSource interface {
	Name() string
	// Ready reports whether the source has the configuration it needs to
	// attempt a fetch at all (e.g. an API credential).
	Ready() bool
	DailyBars(ctx context.Context, symbol string, days int) ([]models.Bar, error)
}

type Metrics interface {
	RecordFetch(source, outcome string)
	RecordCache(result string)
	RecordLatency(op string, seconds float64)
	RecordAlerts(symbol string, count int)
}
