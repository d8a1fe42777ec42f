package analytics

import (
	"math"
	"testing"

	"TrendGuard/internal/domain/models"
)

func TestChangeSeries(t *testing.T) {
	bars := []models.Bar{
		flatBar(0, 100, 1000),
		flatBar(1, 106, 4200),
	}
	price, volume := ChangeSeries(bars)
	if len(price) != 1 || len(volume) != 1 {
		t.Fatalf("expected 1 change each, got %d/%d", len(price), len(volume))
	}
	if math.Abs(price[0]-6.0) > 1e-9 {
		t.Errorf("expected price change 6.0, got %f", price[0])
	}
	if math.Abs(volume[0]-320.0) > 1e-9 {
		t.Errorf("expected volume change 320.0, got %f", volume[0])
	}
}

func TestChangeSeries_TooShort(t *testing.T) {
	price, volume := ChangeSeries([]models.Bar{flatBar(0, 100, 1000)})
	if price != nil || volume != nil {
		t.Fatal("expected nil series for single-row table")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Count != 8 {
		t.Fatalf("expected count 8, got %d", s.Count)
	}
	if math.Abs(s.Mean-5.0) > 1e-9 {
		t.Errorf("expected mean 5, got %f", s.Mean)
	}
	// sample std of this set is ~2.138
	if math.Abs(s.Std-2.138089935) > 1e-6 {
		t.Errorf("unexpected std %f", s.Std)
	}
	if s.Min != 2 || s.Max != 9 {
		t.Errorf("unexpected min/max %f/%f", s.Min, s.Max)
	}
}

func TestSummarize_SkipsNaN(t *testing.T) {
	s := Summarize([]float64{math.NaN(), 1, 3})
	if s.Count != 2 {
		t.Fatalf("expected count 2, got %d", s.Count)
	}
	if math.Abs(s.Mean-2.0) > 1e-9 {
		t.Errorf("expected mean 2, got %f", s.Mean)
	}
}

func TestDescribe(t *testing.T) {
	bars := []models.Bar{
		flatBar(0, 100, 1000),
		flatBar(1, 106, 4200),
		flatBar(2, 104, 4000),
	}
	stats := Describe(bars)
	for _, key := range []string{"close", "volume", "price_change_pct", "volume_change_pct"} {
		if _, ok := stats[key]; !ok {
			t.Errorf("missing series %q", key)
		}
	}
	if stats["close"].Count != 3 {
		t.Errorf("expected 3 closes, got %d", stats["close"].Count)
	}
	if stats["price_change_pct"].Count != 2 {
		t.Errorf("expected 2 price changes, got %d", stats["price_change_pct"].Count)
	}
}
