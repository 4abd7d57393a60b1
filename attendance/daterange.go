package attendance

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date used for holiday and punch keys.
const DateLayout = "2006-01-02"

// ParseDate reads a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

// FormatDate renders the calendar date of t, ignoring its clock.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// civil keeps the calendar fields of t and moves it to midnight UTC.
func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ExpandRange lists every calendar date from `from` to `to`, both included.
// An inverted range yields nothing.
func ExpandRange(from, to time.Time) []time.Time {
	from, to = civil(from), civil(to)
	if from.After(to) {
		return nil
	}
	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}
