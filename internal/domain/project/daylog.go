package project

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DayLog accumulates tracked seconds per calendar date. Like Document, key
// order is insertion order: the first day a project is tracked on stays
// first in the persisted form and in CSV exports.
type DayLog struct {
	dates   []string
	seconds map[string]float64
}

// NewDayLog returns an empty day log.
func NewDayLog() *DayLog {
	return &DayLog{seconds: make(map[string]float64)}
}

// Len returns the number of recorded days.
func (l *DayLog) Len() int {
	return len(l.dates)
}

// Dates returns recorded dates in insertion order.
func (l *DayLog) Dates() []string {
	out := make([]string, len(l.dates))
	copy(out, l.dates)
	return out
}

// Get returns the seconds recorded for a date, zero if absent.
func (l *DayLog) Get(date string) float64 {
	return l.seconds[date]
}

// Has reports whether the date has an entry.
func (l *DayLog) Has(date string) bool {
	_, ok := l.seconds[date]
	return ok
}

// Add accumulates seconds into a date bucket, creating it if absent, and
// returns the bucket's new value.
func (l *DayLog) Add(date string, seconds float64) float64 {
	if _, ok := l.seconds[date]; !ok {
		l.dates = append(l.dates, date)
	}
	l.seconds[date] += seconds
	return l.seconds[date]
}

// Sum returns the total seconds across all days.
func (l *DayLog) Sum() float64 {
	var total float64
	for _, v := range l.seconds {
		total += v
	}
	return total
}

// MarshalJSON encodes the log as a JSON object in insertion order.
func (l *DayLog) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, date := range l.dates {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(date)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(l.seconds[date])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of date to seconds, keeping key order.
func (l *DayLog) UnmarshalJSON(data []byte) error {
	l.dates = nil
	l.seconds = make(map[string]float64)

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		date, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var seconds float64
		if err := dec.Decode(&seconds); err != nil {
			return fmt.Errorf("decoding day %q: %w", date, err)
		}
		l.Add(date, seconds)
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}
