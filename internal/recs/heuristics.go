package recs

import (
	"regexp"
	"strconv"
	"strings"
)

// Heuristic fallback parser. Keyword tables and patterns deliberately stay
// simple: the goal is a usable intent when the provider is unavailable,
// not full natural-language coverage.

const (
	cheapMaxPrice     = 500
	midRangeMaxPrice  = 1500
	expensiveMaxPrice = 3000
)

var (
	priceRangeRe = regexp.MustCompile(`(\d{3,})\s*(?:-|to)\s*(\d{3,})`)
	underPriceRe = regexp.MustCompile(`(?:under|below|less than|upto|up to|within|max)\s*(?:rs\.?|inr)?\s*(\d{2,})`)
	ratingRe     = regexp.MustCompile(`(\d\.\d|\d)\s*(?:\+|\s*stars?|\s*rating)?`)
)

// HeuristicParse extracts an Intent from query using substring vocabulary
// matches and simple number patterns. It always succeeds.
func HeuristicParse(query string, locations, cuisines []string) Intent {
	var out Intent
	lower := strings.ToLower(query)

	if loc, ok := matchSubstring(lower, locations); ok {
		out.Location = strptr(loc)
	}
	for _, known := range cuisines {
		needle := strings.ToLower(strings.TrimSpace(known))
		if needle != "" && strings.Contains(lower, needle) {
			out.Cuisines = appendUnique(out.Cuisines, known)
		}
	}

	if m := priceRangeRe.FindStringSubmatch(lower); m != nil {
		if low, err := strconv.Atoi(m[1]); err == nil {
			out.MinPrice = intptr(low)
		}
		if high, err := strconv.Atoi(m[2]); err == nil {
			out.MaxPrice = intptr(high)
		}
	} else if m := underPriceRe.FindStringSubmatch(lower); m != nil {
		if max, err := strconv.Atoi(m[1]); err == nil {
			out.MaxPrice = intptr(max)
		}
	} else {
		switch {
		case containsAny(lower, "cheap", "budget", "affordable", "inexpensive"):
			out.MaxPrice = intptr(cheapMaxPrice)
		case containsAny(lower, "mid range", "mid-range", "moderate", "reasonable"):
			out.MaxPrice = intptr(midRangeMaxPrice)
		case containsAny(lower, "expensive", "fine dining", "upscale", "premium", "luxury"):
			out.MaxPrice = intptr(expensiveMaxPrice)
		}
	}

	if containsAny(lower, "rated", "rating", "stars", "star") {
		if m := ratingRe.FindStringSubmatch(lower); m != nil {
			if rating, err := strconv.ParseFloat(m[1], 64); err == nil && rating >= 0 && rating <= 5 {
				out.MinRating = floatptr(rating)
			}
		}
	}

	if containsAny(lower, "delivery", "deliver", "online order", "order online", "order in") {
		out.OnlineOrder = true
	}
	if containsAny(lower, "date", "book", "reserve", "reservation", "table booking") {
		out.TableBooking = true
	}
	if containsAny(lower, "buffet", "unlimited", "all you can eat") {
		out.Buffet = true
	}
	if containsAny(lower, "cafe", "coffee", "café") {
		out.Cafe = true
	}

	return out
}

// matchSubstring finds the longest vocabulary entry contained in text.
// Longest-first avoids "Koramangala 5th Block" losing to "Koramangala".
func matchSubstring(text string, vocab []string) (string, bool) {
	best := ""
	for _, known := range vocab {
		needle := strings.ToLower(strings.TrimSpace(known))
		if needle == "" || !strings.Contains(text, needle) {
			continue
		}
		if len(known) > len(best) {
			best = known
		}
	}
	return best, best != ""
}

func containsAny(text string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
