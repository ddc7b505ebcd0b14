package project

import "time"

// DayKey is the layout for daily-total keys, the local calendar date.
const DayKey = "2006-01-02"

// Project is a named tracked activity with cumulative and per-day totals.
type Project struct {
	// Total is the cumulative tracked time across all completed sessions,
	// in seconds.
	Total float64 `json:"total"`

	// Days maps a local calendar date (YYYY-MM-DD) to the seconds tracked
	// on that date. A completed session is attributed entirely to the day
	// its stop event occurs on; sessions are not split across midnight.
	Days *DayLog `json:"days"`

	// Start is the session start timestamp in epoch seconds. Meaningful
	// only while Active is true.
	Start float64 `json:"start"`

	// Active reports whether a tracking session is currently open.
	Active bool `json:"active"`
}

// New returns an idle project with no recorded time.
func New() *Project {
	return &Project{Days: NewDayLog()}
}

// DayFor returns the day-bucket key for t in t's location.
func DayFor(t time.Time) string {
	return t.Format(DayKey)
}
