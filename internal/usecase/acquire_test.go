package usecase

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"TrendGuard/internal/domain/models"
	drepo "TrendGuard/internal/domain/repository"
	icache "TrendGuard/internal/service/cache"
	xlogger "TrendGuard/pkg/logger"
)

type fakeSource struct {
	name  string
	ready bool
	bars  []models.Bar
	err   error
	delay time.Duration
	calls int32
}

func (f *fakeSource) Name() string { return f.name }
func (f *fakeSource) Ready() bool  { return f.ready }

func (f *fakeSource) DailyBars(_ context.Context, _ string, _ int) ([]models.Bar, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	return f.bars, f.err
}

type nopMetrics struct{}

func (nopMetrics) RecordFetch(string, string)    {}
func (nopMetrics) RecordCache(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}
func (nopMetrics) RecordAlerts(string, int)      {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	l, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func someBars(n int) []models.Bar {
	bars := make([]models.Bar, n)
	base := time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC)
	for i := range bars {
		bars[i] = models.Bar{Date: base.AddDate(0, 0, i), Open: 100, High: 101, Low: 99, Close: 100, Volume: 1000}
	}
	return bars
}

func newAcquirer(t *testing.T, ttl time.Duration, sources ...drepo.BarSource) *Acquirer {
	t.Helper()
	return NewAcquirer(sources, icache.NewTTLCache(), nil, ttl, nopMetrics{}, testLogger(t))
}

func TestAcquire_FallbackToSecondSource(t *testing.T) {
	poly := &fakeSource{name: "polygon", ready: true, err: errors.New("boom")}
	gecko := &fakeSource{name: "coingecko", ready: true, bars: someBars(5)}
	a := newAcquirer(t, time.Minute, poly, gecko)

	bars, source, attempts, err := a.Acquire(context.Background(), "BTC-USD", 7, PreferAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if source != "coingecko" {
		t.Fatalf("expected coingecko, got %s", source)
	}
	if len(bars) != 5 {
		t.Fatalf("expected 5 bars, got %d", len(bars))
	}
	if len(attempts) != 2 || attempts[0].OK || !attempts[1].OK {
		t.Fatalf("unexpected attempts %+v", attempts)
	}
}

func TestAcquire_AutoSkipsUnreadySource(t *testing.T) {
	poly := &fakeSource{name: "polygon", ready: false, bars: someBars(5)}
	gecko := &fakeSource{name: "coingecko", ready: true, err: errors.New("boom")}
	a := newAcquirer(t, time.Minute, poly, gecko)

	_, _, _, err := a.Acquire(context.Background(), "BTC-USD", 7, PreferAuto)
	if !errors.Is(err, drepo.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if atomic.LoadInt32(&poly.calls) != 0 {
		t.Error("source without credential must not be attempted in auto mode")
	}
	if atomic.LoadInt32(&gecko.calls) != 1 {
		t.Errorf("expected 1 coingecko call, got %d", gecko.calls)
	}
}

func TestAcquire_PinnedSourceNoFallback(t *testing.T) {
	poly := &fakeSource{name: "polygon", ready: true, err: errors.New("boom")}
	gecko := &fakeSource{name: "coingecko", ready: true, bars: someBars(5)}
	a := newAcquirer(t, time.Minute, poly, gecko)

	_, _, _, err := a.Acquire(context.Background(), "AAPL", 7, PreferPolygon)
	if !errors.Is(err, drepo.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	if atomic.LoadInt32(&gecko.calls) != 0 {
		t.Error("pinned preference must not fall back to another source")
	}
}

func TestAcquire_MemoizesWithinTTL(t *testing.T) {
	gecko := &fakeSource{name: "coingecko", ready: true, bars: someBars(5)}
	a := newAcquirer(t, time.Minute, gecko)

	for i := 0; i < 3; i++ {
		if _, _, _, err := a.Acquire(context.Background(), "BTC-USD", 7, PreferAuto); err != nil {
			t.Fatalf("acquire %d: %v", i, err)
		}
	}
	if got := atomic.LoadInt32(&gecko.calls); got != 1 {
		t.Fatalf("expected 1 underlying call within TTL, got %d", got)
	}
}

func TestAcquire_DistinctKeysNotShared(t *testing.T) {
	gecko := &fakeSource{name: "coingecko", ready: true, bars: someBars(5)}
	a := newAcquirer(t, time.Minute, gecko)

	if _, _, _, err := a.Acquire(context.Background(), "BTC-USD", 7, PreferAuto); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, _, _, err := a.Acquire(context.Background(), "BTC-USD", 14, PreferAuto); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if got := atomic.LoadInt32(&gecko.calls); got != 2 {
		t.Fatalf("expected 2 underlying calls for distinct windows, got %d", got)
	}
}

func TestAcquire_ExpiredEntryRefetches(t *testing.T) {
	gecko := &fakeSource{name: "coingecko", ready: true, bars: someBars(5)}
	a := newAcquirer(t, 10*time.Millisecond, gecko)

	if _, _, _, err := a.Acquire(context.Background(), "BTC-USD", 7, PreferAuto); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, _, _, err := a.Acquire(context.Background(), "BTC-USD", 7, PreferAuto); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if got := atomic.LoadInt32(&gecko.calls); got != 2 {
		t.Fatalf("expected refetch after TTL, got %d calls", got)
	}
}

func TestAcquire_ConcurrentSingleFill(t *testing.T) {
	gecko := &fakeSource{name: "coingecko", ready: true, bars: someBars(5), delay: 20 * time.Millisecond}
	a := newAcquirer(t, time.Minute, gecko)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, _, err := a.Acquire(context.Background(), "BTC-USD", 7, PreferAuto); err != nil {
				t.Errorf("acquire: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&gecko.calls); got != 1 {
		t.Fatalf("expected a single dispatch for concurrent requests, got %d", got)
	}
}

func TestAcquire_FailuresNotMemoized(t *testing.T) {
	gecko := &fakeSource{name: "coingecko", ready: true, err: errors.New("boom")}
	a := newAcquirer(t, time.Minute, gecko)

	for i := 0; i < 2; i++ {
		if _, _, _, err := a.Acquire(context.Background(), "BTC-USD", 7, PreferAuto); !errors.Is(err, drepo.ErrNoData) {
			t.Fatalf("expected ErrNoData, got %v", err)
		}
	}
	if got := atomic.LoadInt32(&gecko.calls); got != 2 {
		t.Fatalf("expected failures to bypass the memo, got %d calls", got)
	}
}
