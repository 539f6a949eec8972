// Package timeutil converts between day-relative second offsets and
// human-readable time-of-day and duration strings.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
)

// SecondsPerDay is the upper bound of a day-relative offset. An offset of
// exactly 86400 formats as "24:00".
const SecondsPerDay = 86400

// FormatTimeOfDay renders a day-relative second offset as "HH:MM".
// The input is clamped to [0, 86400] before formatting; seconds below a
// full minute are truncated.
func FormatTimeOfDay(sec int) string {
	if sec < 0 {
		sec = 0
	}
	if sec > SecondsPerDay {
		sec = SecondsPerDay
	}
	return fmt.Sprintf("%02d:%02d", sec/3600, (sec%3600)/60)
}

// ParseTimeOfDay converts an "HH:MM" string back to a second offset.
// It performs no range validation; callers validate separately.
func ParseTimeOfDay(s string) int {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0
	}
	hr, _ := strconv.Atoi(parts[0])
	mn, _ := strconv.Atoi(parts[1])
	return hr*3600 + mn*60
}

// FormatDuration renders a duration in seconds as "N hour[s] M minute[s]".
// A zero duration renders as "0 minute". Each component pluralizes on its
// own magnitude.
func FormatDuration(sec int) string {
	hour := sec / 3600
	minute := (sec % 3600) / 60
	var b strings.Builder
	if hour > 0 {
		b.WriteString(strconv.Itoa(hour))
		b.WriteString(" hour")
		if hour > 1 {
			b.WriteString("s")
		}
		if minute > 0 {
			b.WriteString(" ")
		}
	} else if minute == 0 {
		return "0 minute"
	}
	if minute > 0 {
		b.WriteString(strconv.Itoa(minute))
		b.WriteString(" minute")
		if minute > 1 {
			b.WriteString("s")
		}
	}
	return b.String()
}
