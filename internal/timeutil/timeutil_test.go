package timeutil

import "testing"

func TestFormatTimeOfDay(t *testing.T) {
	cases := []struct {
		sec  int
		want string
	}{
		{0, "00:00"},
		{57600, "16:00"},
		{5400, "01:30"},
		{86340, "23:59"},
		{86400, "24:00"},
		{-100, "00:00"},
		{90000, "24:00"},
	}
	for _, tc := range cases {
		if got := FormatTimeOfDay(tc.sec); got != tc.want {
			t.Errorf("FormatTimeOfDay(%d) = %q, want %q", tc.sec, got, tc.want)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"16:00", 57600},
		{"01:30", 5400},
		{"24:00", 86400},
	}
	for _, tc := range cases {
		if got := ParseTimeOfDay(tc.in); got != tc.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestTimeOfDayRoundTrip(t *testing.T) {
	for sec := 0; sec <= SecondsPerDay; sec += 60 {
		if got := ParseTimeOfDay(FormatTimeOfDay(sec)); got != sec {
			t.Fatalf("round trip failed for %d: got %d", sec, got)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		sec  int
		want string
	}{
		{0, "0 minute"},
		{60, "1 minute"},
		{1800, "30 minutes"},
		{3600, "1 hour"},
		{5400, "1 hour 30 minutes"},
		{7200, "2 hours"},
		{3660, "1 hour 1 minute"},
		{14400, "4 hours"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.sec); got != tc.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tc.sec, got, tc.want)
		}
	}
}
