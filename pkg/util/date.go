package util

import "time"

// DayWindow returns the [from, to] calendar-day strings for a lookback of
// `days` plus `pad` extra trailing days, formatted for date-keyed APIs.
// The pad compensates for providers excluding the partial current day.
func DayWindow(now time.Time, days, pad int) (string, string) {
	from := now.AddDate(0, 0, -(days + pad))
	return from.Format("2006-01-02"), now.Format("2006-01-02")
}

// DayOf truncates a timestamp to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
