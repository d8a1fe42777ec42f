package analytics

import (
	"math"

	"TrendGuard/internal/domain/models"
)

// Thresholds are the detector tuning constants. They come from configuration,
// not hidden literals; the defaults are 5% price, 300% volume, and risk
// weights (7, 0.08).
type Thresholds struct {
	PriceChangePct   float64
	VolumeChangePct  float64
	RiskPriceWeight  float64
	RiskVolumeWeight float64
}

// Detector flags days where price and volume both spike sharply: the pump
// precondition of a pump & dump, never the dump itself.
type Detector struct {
	t Thresholds
}

func NewDetector(t Thresholds) *Detector {
	return &Detector{t: t}
}

// Detect runs a single pass over the table and returns alerts in ascending
// date order. Pure: the input is never mutated. Fewer than 3 bars is too
// little history for a meaningful day-over-day signal and yields no alerts.
func (d *Detector) Detect(bars []models.Bar) []models.Alert {
	if len(bars) < 3 {
		return nil
	}

	var alerts []models.Alert
	for i := 1; i < len(bars); i++ {
		prev := bars[i-1]
		if prev.Close == 0 || prev.Volume == 0 {
			// change undefined against a zero base
			continue
		}
		priceChange := (bars[i].Close - prev.Close) / prev.Close * 100
		volumeChange := (bars[i].Volume - prev.Volume) / prev.Volume * 100

		if priceChange > d.t.PriceChangePct && volumeChange > d.t.VolumeChangePct {
			alerts = append(alerts, models.Alert{
				Date:            bars[i].Date,
				PriceChangePct:  priceChange,
				VolumeChangePct: volumeChange,
				RiskScore:       d.riskScore(priceChange, volumeChange),
			})
		}
	}
	return alerts
}

// riskScore maps observed deviation to a 0..99 score. A linear function of
// the two changes, not a calibrated probability.
func (d *Detector) riskScore(priceChange, volumeChange float64) int {
	score := math.Round(math.Abs(priceChange)*d.t.RiskPriceWeight + math.Abs(volumeChange)*d.t.RiskVolumeWeight)
	if score > 99 {
		return 99
	}
	if score < 0 {
		return 0
	}
	return int(score)
}
