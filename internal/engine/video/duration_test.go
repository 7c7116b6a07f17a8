package video

import "testing"

func TestSecondsToISO8601(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{754, "PT12M34S"},
		{0, "PT0S"},
		{59, "PT59S"},
		{60, "PT1M"},
		{3600, "PT1H"},
		{3723, "PT1H2M3S"},
		{-5, ""},
	}
	for _, tt := range tests {
		if got := SecondsToISO8601(tt.in); got != tt.want {
			t.Errorf("SecondsToISO8601(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PT12M34S", "12:34"},
		{"PT1H2M3S", "1:02:03"},
		{"PT45S", "0:45"},
		{"PT1H", "1:00:00"},
		{"P1DT1S", "24:00:01"},
		{"PT0S", "0:00"},
		{"12:34", "12:34"},
		{"", ""},
		{"PT", "PT"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDurationRoundTrip(t *testing.T) {
	for _, sec := range []int{0, 1, 59, 61, 754, 3599, 3600, 86399} {
		iso := SecondsToISO8601(sec)
		got, ok := ParseISO8601Duration(iso)
		if !ok || got != sec {
			t.Errorf("ParseISO8601Duration(%q) = %d, %v; want %d", iso, got, ok, sec)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2016-01-01 01:43:02", "2016-01-01T01:43:02Z"},
		{"2016-01-01 01:43:02 -0500", "2016-01-01T06:43:02Z"},
		{"2018-07-31T14:28:58Z", "2018-07-31T14:28:58Z"},
		{"2018-07-31T16:28:58+02:00", "2018-07-31T14:28:58Z"},
		{"yesterday", "yesterday"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
