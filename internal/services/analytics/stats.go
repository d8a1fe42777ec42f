package analytics

import (
	"math"

	"TrendGuard/internal/domain/models"
)

// ChangeSeries computes day-over-day percentage changes for close and
// volume. Index 0 has no prior day, so both series have len(bars)-1
// entries. A zero base yields NaN in that slot.
func ChangeSeries(bars []models.Bar) (price, volume []float64) {
	if len(bars) < 2 {
		return nil, nil
	}
	price = make([]float64, 0, len(bars)-1)
	volume = make([]float64, 0, len(bars)-1)
	for i := 1; i < len(bars); i++ {
		price = append(price, pctChange(bars[i-1].Close, bars[i].Close))
		volume = append(volume, pctChange(bars[i-1].Volume, bars[i].Volume))
	}
	return price, volume
}

func pctChange(prev, cur float64) float64 {
	if prev == 0 {
		return math.NaN()
	}
	return (cur - prev) / prev * 100
}

// Describe returns descriptive statistics for the table and its derived
// change series, keyed by series name.
func Describe(bars []models.Bar) map[string]models.Summary {
	closes := make([]float64, len(bars))
	volumes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
		volumes[i] = b.Volume
	}
	priceChange, volumeChange := ChangeSeries(bars)

	return map[string]models.Summary{
		"close":             Summarize(closes),
		"volume":            Summarize(volumes),
		"price_change_pct":  Summarize(priceChange),
		"volume_change_pct": Summarize(volumeChange),
	}
}

// Summarize computes count, mean, sample standard deviation, min and max,
// skipping NaN entries.
func Summarize(xs []float64) models.Summary {
	var s models.Summary
	var sum float64
	s.Min = math.Inf(1)
	s.Max = math.Inf(-1)
	for _, x := range xs {
		if math.IsNaN(x) {
			continue
		}
		s.Count++
		sum += x
		if x < s.Min {
			s.Min = x
		}
		if x > s.Max {
			s.Max = x
		}
	}
	if s.Count == 0 {
		return models.Summary{}
	}
	s.Mean = sum / float64(s.Count)

	if s.Count > 1 {
		var ss float64
		for _, x := range xs {
			if math.IsNaN(x) {
				continue
			}
			d := x - s.Mean
			ss += d * d
		}
		s.Std = math.Sqrt(ss / float64(s.Count-1))
	}
	return s
}
