package tracker

import (
	"fmt"
	"strings"
)

type durationUnit struct {
	name    string
	seconds int64
}

var durationUnits = []durationUnit{
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// FormatDuration renders seconds as spoken-friendly text, e.g.
// "1 day 2 hours 5 seconds". Seconds are truncated to whole seconds and
// decomposed into days, hours, minutes and seconds. Zero-valued units are
// omitted and unit names are singular when the value is exactly 1. A zero
// duration renders as the empty string; callers must handle it.
func FormatDuration(seconds float64) string {
	remaining := int64(seconds)
	if remaining < 0 {
		remaining = 0
	}

	var parts []string
	for _, unit := range durationUnits {
		value := remaining / unit.seconds
		remaining %= unit.seconds
		if value == 0 {
			continue
		}
		name := unit.name
		if value != 1 {
			name += "s"
		}
		parts = append(parts, fmt.Sprintf("%d %s", value, name))
	}
	return strings.Join(parts, " ")
}
