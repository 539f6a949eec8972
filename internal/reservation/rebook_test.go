package reservation

import (
	"reflect"
	"testing"
)

func TestRebookRoundTrip(t *testing.T) {
	d := Draft{
		Date:     "2025-01-01",
		Site:     82,
		Priority: 3,
		Preferences: []Preference{
			{StartTimeSec: 57600, DurationSec: 7200, CourtNamePreference: []string{"场地1", "场地2"}},
			{StartTimeSec: 28800, DurationSec: 3600, CourtNamePreference: []string{}},
		},
	}

	got := DecodeRebook(EncodeRebook(d))

	if got.Date != DateUnset {
		t.Errorf("rebook must reset date: got %q, want %q", got.Date, DateUnset)
	}
	if got.Site != d.Site || got.Priority != d.Priority {
		t.Errorf("site/priority not preserved: %+v", got)
	}
	if !reflect.DeepEqual(got.Preferences, d.Preferences) {
		t.Errorf("preferences not preserved:\n got %+v\nwant %+v", got.Preferences, d.Preferences)
	}
}

func TestDecodeRebookMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"%zz",            // broken escaping
		"not-json",       // unparseable payload
		"%7B%22Date%22:", // truncated object
	} {
		if got := DecodeRebook(in); !reflect.DeepEqual(got, Draft{}) {
			t.Errorf("DecodeRebook(%q) = %+v, want zero draft", in, got)
		}
	}
}
