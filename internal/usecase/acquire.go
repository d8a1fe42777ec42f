package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"TrendGuard/internal/domain/models"
	drepo "TrendGuard/internal/domain/repository"
	icache "TrendGuard/internal/service/cache"
	xlogger "TrendGuard/pkg/logger"
)

// Preference selects which sources the acquirer may attempt.
type Preference string

const (
	PreferAuto      Preference = "auto"
	PreferPolygon   Preference = "polygon"
	PreferCoinGecko Preference = "coingecko"
)

// Acquirer tries bar sources strictly in order and returns the first table
// any of them yields. One pass through a short fixed list is the only
// resilience mechanism: no retries, no backoff. Successful results are
// memoized per (source, symbol, days) for a fixed TTL.
type Acquirer struct {
	sources []drepo.BarSource
	memo    *icache.TTLCache
	second  icache.BytesCache // optional shared level, may be nil
	ttl     time.Duration
	metrics drepo.Metrics
	logger  *xlogger.Logger
}

func NewAcquirer(sources []drepo.BarSource, memo *icache.TTLCache, second icache.BytesCache, ttl time.Duration, metrics drepo.Metrics, logger *xlogger.Logger) *Acquirer {
	return &Acquirer{
		sources: sources,
		memo:    memo,
		second:  second,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// order resolves the attempt order for a preference. Auto keeps the
// configured order but skips sources missing their credentials; a named
// preference pins exactly one source with no fallback.
func (a *Acquirer) order(pref Preference) []drepo.BarSource {
	if pref == PreferAuto || pref == "" {
		out := make([]drepo.BarSource, 0, len(a.sources))
		for _, s := range a.sources {
			if s.Ready() {
				out = append(out, s)
			}
		}
		return out
	}
	for _, s := range a.sources {
		if Preference(s.Name()) == pref {
			return []drepo.BarSource{s}
		}
	}
	return nil
}

// Acquire returns the first table any attempted source yields, tagged with
// that source's name, plus the per-source attempt log. Exhausting every
// source is a normal, representable outcome: ErrNoData.
func (a *Acquirer) Acquire(ctx context.Context, symbol string, days int, pref Preference) ([]models.Bar, string, []models.SourceAttempt, error) {
	var attempts []models.SourceAttempt

	for _, s := range a.order(pref) {
		bars, err := a.fetchMemoized(ctx, s, symbol, days)
		if err != nil {
			attempts = append(attempts, models.SourceAttempt{Source: s.Name(), Reason: err.Error()})
			a.logger.Warn("source unavailable",
				xlogger.String("source", s.Name()),
				xlogger.String("symbol", symbol),
				xlogger.Error(err))
			continue
		}
		attempts = append(attempts, models.SourceAttempt{Source: s.Name(), OK: true})
		return bars, s.Name(), attempts, nil
	}

	return nil, "", attempts, drepo.ErrNoData
}

func memoKey(source, symbol string, days int) string {
	return fmt.Sprintf("%s:%s:%d", source, strings.ToUpper(strings.TrimSpace(symbol)), days)
}

// fetchMemoized serves from the TTL memo when fresh, otherwise fetches under
// the key's fill lock so concurrent requests for an absent or expired key
// dispatch at most one network call.
func (a *Acquirer) fetchMemoized(ctx context.Context, s drepo.BarSource, symbol string, days int) ([]models.Bar, error) {
	key := memoKey(s.Name(), symbol, days)

	lock := a.memo.KeyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if v, ok := a.memo.Get(key); ok {
		if bars, ok := v.([]models.Bar); ok {
			a.metrics.RecordCache("hit")
			return bars, nil
		}
	}
	if bars, ok := a.fromSecondLevel(key); ok {
		a.metrics.RecordCache("hit")
		a.memo.Set(key, bars, a.ttl)
		return bars, nil
	}
	a.metrics.RecordCache("miss")

	start := time.Now()
	bars, err := s.DailyBars(ctx, symbol, days)
	a.metrics.RecordLatency("fetch_"+s.Name(), time.Since(start).Seconds())
	if err != nil {
		a.metrics.RecordFetch(s.Name(), "error")
		return nil, err
	}
	a.metrics.RecordFetch(s.Name(), "ok")

	a.memo.Set(key, bars, a.ttl)
	a.toSecondLevel(key, bars)
	return bars, nil
}

func (a *Acquirer) fromSecondLevel(key string) ([]models.Bar, bool) {
	if a.second == nil {
		return nil, false
	}
	b, ok, err := a.second.GetBytes(key)
	if err != nil || !ok {
		if err != nil {
			a.logger.Warn("second-level cache read failed", xlogger.Error(err))
		}
		return nil, false
	}
	var bars []models.Bar
	if err := json.Unmarshal(b, &bars); err != nil {
		return nil, false
	}
	return bars, true
}

func (a *Acquirer) toSecondLevel(key string, bars []models.Bar) {
	if a.second == nil {
		return
	}
	b, err := json.Marshal(bars)
	if err != nil {
		return
	}
	if err := a.second.SetBytes(key, b, a.ttl); err != nil {
		a.logger.Warn("second-level cache write failed", xlogger.Error(err))
	}
}
