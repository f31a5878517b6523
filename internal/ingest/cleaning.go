package ingest

import (
	"strconv"
	"strings"
)

// ParseRating parses rating strings like "4.1/5", "NEW", "-", or "" into a
// rating and an ok flag. Zero/negative and unrateable values report !ok.
func ParseRating(raw string) (float64, bool) {
	text := strings.TrimSpace(raw)
	if text == "" || text == "NEW" || text == "-" {
		return 0, false
	}
	if idx := strings.Index(text, "/"); idx >= 0 {
		text = text[:idx]
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// ParseCostForTwo parses approximate cost strings into integer currency
// units, tolerating thousands separators: "1,200" -> 1200.
func ParseCostForTwo(raw string) (int, bool) {
	text := strings.TrimSpace(raw)
	if text == "" || strings.EqualFold(text, "nan") {
		return 0, false
	}
	var digits strings.Builder
	for _, ch := range text {
		if ch >= '0' && ch <= '9' {
			digits.WriteRune(ch)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	value, err := strconv.Atoi(digits.String())
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

// ParseBool normalizes Yes/No style fields. Unknown values report !ok.
func ParseBool(raw string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "y", "true", "t":
		return true, true
	case "no", "n", "false", "f":
		return false, true
	default:
		return false, false
	}
}

// ParseVotes parses a vote count, treating blanks and junk as zero.
func ParseVotes(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value < 0 {
		return 0
	}
	return value
}

// NormalizeCuisines splits a comma-separated cuisine field, trimming and
// de-duplicating case-insensitively while keeping the original casing.
func NormalizeCuisines(raw string) []string {
	parts := strings.Split(raw, ",")
	seen := make(map[string]struct{}, len(parts))
	var out []string
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	return out
}
