package planner

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	hoursPattern   = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*h(?:ou)?rs?\b|(\d+(?:\.\d+)?)\s*h\b`)
	minutesPattern = regexp.MustCompile(`(\d+)\s*m(?:in(?:ute)?s?)?\b`)
	numberPattern  = regexp.MustCompile(`\d+(?:\.\d+)?`)

	// Catalog names come from free-text sources with inconsistent casing,
	// hyphenation and accents ("Malé" vs "male" vs "North Male' Atoll").
	nameFolder = strings.NewReplacer(
		"é", "e", "è", "e", "ê", "e",
		"á", "a", "à", "a", "â", "a",
		"í", "i", "ó", "o", "ú", "u",
		"'", "", "’", "", ".", "",
		"-", "", " ", "", "\t", "",
	)
)

// NormalizeName canonicalizes a location name for matching: lowercase,
// accent-folded, with whitespace, hyphens and apostrophes removed.
func NormalizeName(name string) string {
	return nameFolder.Replace(strings.ToLower(strings.TrimSpace(name)))
}

// ParseDurationMinutes extracts a minute count from an operator's display
// string ("1h 30m", "45 minutes", "2 hours"). A bare number is read as
// minutes. Malformed input degrades to 0 rather than failing the plan:
// one bad catalog row must not block unrelated routes.
func ParseDurationMinutes(display string) int {
	s := strings.ToLower(strings.TrimSpace(display))
	if s == "" {
		return 0
	}

	total := 0
	matched := false

	if m := hoursPattern.FindStringSubmatch(s); m != nil {
		val := m[1]
		if val == "" {
			val = m[2]
		}
		if h, err := strconv.ParseFloat(val, 64); err == nil {
			total += int(math.Round(h * 60))
			matched = true
		}
	}
	if m := minutesPattern.FindStringSubmatch(s); m != nil {
		if mins, err := strconv.Atoi(m[1]); err == nil {
			total += mins
			matched = true
		}
	}
	if !matched {
		if n := numberPattern.FindString(s); n != "" {
			if mins, err := strconv.ParseFloat(n, 64); err == nil {
				total = int(math.Round(mins))
			}
		}
	}
	return total
}

// ParsePriceAmount extracts a numeric amount from a price display string
// ("$25", "MVR 150.50", "25 USD"). Malformed input degrades to 0.
func ParsePriceAmount(display string) float64 {
	n := numberPattern.FindString(display)
	if n == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(n, 64)
	if err != nil {
		return 0
	}
	return amount
}

// FormatDuration renders a minute count for display: "45m", "2h", "5h 30m".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}

// FormatPrice renders an amount as a dollar display string.
func FormatPrice(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// FormatDistance renders kilometers for display.
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}
