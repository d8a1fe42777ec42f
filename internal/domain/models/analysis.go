package models

// SourceAttempt records the outcome of one provider attempt during
// acquisition. Failed attempts carry the downgraded error text so the
// caller can show why a source was skipped.
type SourceAttempt struct {
	Source string `json:"source"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// Analysis is the full result of one analyze invocation. Request-scoped,
// never persisted.
type Analysis struct {
	Symbol   string             `json:"symbol"`
	Source   string             `json:"source"`
	Days     int                `json:"days"`
	Bars     []Bar              `json:"bars"`
	Alerts   []Alert            `json:"alerts"`
	Stats    map[string]Summary `json:"stats"`
	Attempts []SourceAttempt    `json:"attempts,omitempty"`
}

// Summary holds descriptive statistics for one derived series.
type Summary struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}
