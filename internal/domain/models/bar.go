package models

import "time"

// Bar is one daily OHLCV row of the canonical table. Volume may be zero.
// When a source only reports closes, high/low are synthesized from
// neighbouring closes and are advisory, not a true intraday range.
type Bar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// Alert flags a single day where price and volume both spiked.
type Alert struct {
	Date            time.Time `json:"date"`
	PriceChangePct  float64   `json:"price_change_pct"`
	VolumeChangePct float64   `json:"volume_change_pct"`
	RiskScore       int       `json:"risk_score"`
}
