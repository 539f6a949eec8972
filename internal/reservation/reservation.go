// Package reservation holds the domain model for court reservation
// requests: fallback preferences, submittable drafts, and the booking
// records the server derives from them.
package reservation

import (
	"fmt"
	"strconv"
	"time"

	"github.com/courtline/courtline/internal/timeutil"
)

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// DateUnset is the sentinel a rebooked draft carries until the user picks a
// new date.
const DateUnset = "0000-00-00"

// Booking lengths are restricted to half-hour steps between 30 minutes and
// 4 hours.
const (
	MinDurationSec  = 1800
	MaxDurationSec  = 14400
	DurationStepSec = 1800
)

// ServiceLocation is the fixed service timezone. All date comparisons
// happen in UTC+8 regardless of where the client runs.
var ServiceLocation = time.FixedZone("UTC+8", 8*3600)

// Preference is one fallback booking option: a start time, a length, and
// an ordered allowlist of acceptable court names. An empty allowlist means
// any court is acceptable.
type Preference struct {
	StartTimeSec        int
	DurationSec         int
	CourtNamePreference []string
}

// DefaultPreference returns the seed value for a freshly added preference:
// 16:00 start, two hours, no court restriction.
func DefaultPreference() Preference {
	return Preference{
		StartTimeSec:        57600,
		DurationSec:         7200,
		CourtNamePreference: []string{},
	}
}

// End returns the day-relative end offset of the booking and whether it
// crosses midnight into the next day. Bookings past midnight are legal and
// only need a "+1 day" marker on display.
func (p Preference) End() (sec int, nextDay bool) {
	end := p.StartTimeSec + p.DurationSec
	if end >= timeutil.SecondsPerDay {
		return end - timeutil.SecondsPerDay, true
	}
	return end, false
}

// TimeRange renders the preference's time window, with a "+1" suffix when
// the end time lands on the next day.
func (p Preference) TimeRange() string {
	end, nextDay := p.End()
	s := timeutil.FormatTimeOfDay(p.StartTimeSec) + "-" + timeutil.FormatTimeOfDay(end)
	if nextDay {
		s += "+1"
	}
	return s
}

// AddCourtName returns a copy of p with name appended to the allowlist.
// Empty names and exact duplicates are ignored.
func AddCourtName(p Preference, name string) Preference {
	if name == "" {
		return p
	}
	for _, v := range p.CourtNamePreference {
		if v == name {
			return p
		}
	}
	names := make([]string, 0, len(p.CourtNamePreference)+1)
	names = append(names, p.CourtNamePreference...)
	names = append(names, name)
	p.CourtNamePreference = names
	return p
}

// RemoveCourtName returns a copy of p with the first exact match of name
// removed. Absent names are a no-op.
func RemoveCourtName(p Preference, name string) Preference {
	for i, v := range p.CourtNamePreference {
		if v == name {
			names := make([]string, 0, len(p.CourtNamePreference)-1)
			names = append(names, p.CourtNamePreference[:i]...)
			names = append(names, p.CourtNamePreference[i+1:]...)
			p.CourtNamePreference = names
			return p
		}
	}
	return p
}

// Draft is a reservation request under composition. Preferences are
// alternatives for a single booking, attempted in listed order; the server
// stops at the first one it can satisfy.
type Draft struct {
	Date        string
	Site        int
	Preferences []Preference
	Priority    int
}

// FieldError reports the first draft validation failure found.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks that the draft is submittable: a parseable date no
// earlier than today in the service timezone, a cataloged site, and at
// least one in-range preference. The first violation wins; errors are not
// aggregated.
func (d Draft) Validate(now time.Time) *FieldError {
	date, err := time.ParseInLocation(DateLayout, d.Date, ServiceLocation)
	if err != nil {
		return &FieldError{Field: "Date", Reason: "invalid date"}
	}
	local := now.In(ServiceLocation)
	y, m, day := local.Date()
	todayStart := time.Date(y, m, day, 0, 0, 0, 0, ServiceLocation)
	if date.Before(todayStart) {
		return &FieldError{Field: "Date", Reason: "date is in the past"}
	}
	if !ValidSite(d.Site) {
		return &FieldError{Field: "Site", Reason: "unknown site " + strconv.Itoa(d.Site)}
	}
	if d.Priority < 0 {
		return &FieldError{Field: "Priority", Reason: "priority must be non-negative"}
	}
	if len(d.Preferences) == 0 {
		return &FieldError{Field: "Preferences", Reason: "at least one preference is required"}
	}
	for i, p := range d.Preferences {
		prefix := "Preferences[" + strconv.Itoa(i) + "]"
		if p.StartTimeSec < 0 || p.StartTimeSec >= timeutil.SecondsPerDay {
			return &FieldError{Field: prefix + ".StartTimeSec", Reason: "start time out of range"}
		}
		if p.DurationSec < MinDurationSec || p.DurationSec > MaxDurationSec || p.DurationSec%DurationStepSec != 0 {
			return &FieldError{Field: prefix + ".DurationSec", Reason: "duration must be a half-hour step between 30 minutes and 4 hours"}
		}
	}
	return nil
}

// PriorityLabel maps a priority value to its display label. Lower values
// book first. Values past the canonical range are all "Low" variants
// tagged with their number.
func PriorityLabel(priority int) string {
	switch priority {
	case 0:
		return "Critical"
	case 1:
		return "High"
	case 2:
		return "Moderate"
	case 3:
		return "Normal"
	}
	return fmt.Sprintf("Low (%d)", priority)
}
