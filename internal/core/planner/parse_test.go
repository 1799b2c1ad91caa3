package planner

import "testing"

func TestParseDurationMinutes(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"45 minutes", 45},
		{"45 min", 45},
		{"45m", 45},
		{"1h 30m", 90},
		{"2 hours", 120},
		{"2 hrs", 120},
		{"1.5 hours", 90},
		{"90", 90},
		{"  30 Minutes ", 30},
		{"", 0},
		{"overnight", 0}, // malformed degrades to 0, never an error
		{"TBD", 0},
	}
	for _, c := range cases {
		if got := ParseDurationMinutes(c.in); got != c.want {
			t.Errorf("ParseDurationMinutes(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParsePriceAmount(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"$25", 25},
		{"$10.50", 10.5},
		{"MVR 150.50", 150.5},
		{"25 USD", 25},
		{"free", 0},
		{"", 0},
	}
	for _, c := range cases {
		if got := ParsePriceAmount(c.in); got != c.want {
			t.Errorf("ParsePriceAmount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{45, "45m"},
		{60, "1h"},
		{330, "5h 30m"},
		{0, "0m"},
	}
	for _, c := range cases {
		if got := FormatDuration(c.in); got != c.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Malé", "male"},
		{"Maafushi Island", "maafushiisland"},
		{"maafushi-island", "maafushiisland"},
		{"North Male' Atoll", "northmaleatoll"},
	}
	for _, c := range cases {
		if got := NormalizeName(c.in); got != c.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
