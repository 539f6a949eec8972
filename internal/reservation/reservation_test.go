package reservation

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, time.June, 10, 12, 0, 0, 0, ServiceLocation)

func validDraft() Draft {
	return Draft{
		Date:        "2025-06-11",
		Site:        82,
		Priority:    3,
		Preferences: []Preference{DefaultPreference()},
	}
}

func TestDraftValidateOK(t *testing.T) {
	d := validDraft()
	if err := d.Validate(testNow); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}

	// Today itself is allowed.
	d.Date = "2025-06-10"
	if err := d.Validate(testNow); err != nil {
		t.Fatalf("today should validate, got %v", err)
	}
}

func TestDraftValidateFirstViolation(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Draft)
		wantField string
	}{
		{"garbage date", func(d *Draft) { d.Date = "not-a-date" }, "Date"},
		{"unset sentinel", func(d *Draft) { d.Date = DateUnset }, "Date"},
		{"past date", func(d *Draft) { d.Date = "2025-06-09" }, "Date"},
		{"unknown site", func(d *Draft) { d.Site = 999 }, "Site"},
		{"negative priority", func(d *Draft) { d.Priority = -1 }, "Priority"},
		{"no preferences", func(d *Draft) { d.Preferences = nil }, "Preferences"},
		{"start out of range", func(d *Draft) { d.Preferences[0].StartTimeSec = 86400 }, "Preferences[0].StartTimeSec"},
		{"negative start", func(d *Draft) { d.Preferences[0].StartTimeSec = -1 }, "Preferences[0].StartTimeSec"},
		{"duration too short", func(d *Draft) { d.Preferences[0].DurationSec = 900 }, "Preferences[0].DurationSec"},
		{"duration too long", func(d *Draft) { d.Preferences[0].DurationSec = 14401 }, "Preferences[0].DurationSec"},
		{"off-step duration", func(d *Draft) { d.Preferences[0].DurationSec = 2000 }, "Preferences[0].DurationSec"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := validDraft()
			tc.mutate(&d)
			err := d.Validate(testNow)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if err.Field != tc.wantField {
				t.Errorf("error field = %q, want %q", err.Field, tc.wantField)
			}
		})
	}
}

func TestPreferenceEnd(t *testing.T) {
	p := Preference{StartTimeSec: 57600, DurationSec: 7200}
	end, nextDay := p.End()
	if end != 64800 || nextDay {
		t.Errorf("End() = %d, %v; want 64800, false", end, nextDay)
	}

	// 23:00 + 2h crosses midnight.
	p = Preference{StartTimeSec: 82800, DurationSec: 7200}
	end, nextDay = p.End()
	if end != 3600 || !nextDay {
		t.Errorf("End() = %d, %v; want 3600, true", end, nextDay)
	}
	if got := p.TimeRange(); got != "23:00-01:00+1" {
		t.Errorf("TimeRange() = %q", got)
	}
}

func TestCourtNameHelpers(t *testing.T) {
	p := DefaultPreference()
	p = AddCourtName(p, "场地1")
	p = AddCourtName(p, "场地2")
	// Duplicates and empty names are ignored.
	p = AddCourtName(p, "场地1")
	p = AddCourtName(p, "")
	if len(p.CourtNamePreference) != 2 {
		t.Fatalf("want 2 court names, got %v", p.CourtNamePreference)
	}
	if p.CourtNamePreference[0] != "场地1" || p.CourtNamePreference[1] != "场地2" {
		t.Errorf("order not preserved: %v", p.CourtNamePreference)
	}

	p = RemoveCourtName(p, "场地1")
	if len(p.CourtNamePreference) != 1 || p.CourtNamePreference[0] != "场地2" {
		t.Errorf("after removal: %v", p.CourtNamePreference)
	}
	p = RemoveCourtName(p, "missing")
	if len(p.CourtNamePreference) != 1 {
		t.Errorf("removing absent name should be a no-op: %v", p.CourtNamePreference)
	}
}

func TestPriorityLabel(t *testing.T) {
	cases := []struct {
		priority int
		want     string
	}{
		{0, "Critical"},
		{1, "High"},
		{2, "Moderate"},
		{3, "Normal"},
		{4, "Low (4)"},
		{17, "Low (17)"},
	}
	for _, tc := range cases {
		if got := PriorityLabel(tc.priority); got != tc.want {
			t.Errorf("PriorityLabel(%d) = %q, want %q", tc.priority, got, tc.want)
		}
	}
}

func TestStatusTransitions(t *testing.T) {
	if (Status{Code: Pending}).Terminal() {
		t.Error("pending must not be terminal")
	}
	for _, code := range []StatusCode{Success, NeedsPayment, 3, 99} {
		if !(Status{Code: code}).Terminal() {
			t.Errorf("code %d should be terminal", code)
		}
	}
	if !(StatusCode(7)).Failed() {
		t.Error("unknown code should read as failed")
	}
	if (Record{Status: Status{Code: Success}}).Cancellable() {
		t.Error("only pending records are cancellable")
	}
	if !(Record{Status: Status{Code: Pending}}).Cancellable() {
		t.Error("pending record should be cancellable")
	}
}

func TestStatusLabels(t *testing.T) {
	if got := Pending.Label(); got != "Pending" {
		t.Errorf("Pending label = %q", got)
	}
	if got := StatusCode(42).Label(); got != "Failed" {
		t.Errorf("unknown code label = %q", got)
	}
}

func TestSiteCatalog(t *testing.T) {
	if !ValidSite(82) {
		t.Error("site 82 should be valid")
	}
	if ValidSite(7) {
		t.Error("site 7 should not be valid")
	}
	if got := SiteName(82); got != "创新港主楼网球场" {
		t.Errorf("SiteName(82) = %q", got)
	}
	if got := SiteName(7); got != "Unknown Court" {
		t.Errorf("SiteName(7) = %q", got)
	}
}
