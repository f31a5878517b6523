package catalog

import "strings"

// Record is the read-only view of one restaurant plus its precomputed
// features. Derived fields (PriceBucket, RatingBucket, PopularityScore,
// HasBuffet, IsCafe, SearchText) are pure functions of the raw fields and are
// recomputed at write time, never edited independently.
type Record struct {
	ID               int64
	Name             string
	Location         string
	RestType         string
	ListedInType     string
	Cuisines         []string
	Rating           float64
	Votes            int
	ApproxCostForTwo int
	OnlineOrder      bool
	BookTable        bool

	PriceBucket     int
	RatingBucket    int
	PopularityScore float64
	HasBuffet       bool
	IsCafe          bool
	SearchText      string
}

// HasCuisine reports whether the record lists the given cuisine,
// case-insensitively.
func (r Record) HasCuisine(cuisine string) bool {
	want := strings.ToLower(strings.TrimSpace(cuisine))
	if want == "" {
		return false
	}
	for _, c := range r.Cuisines {
		if strings.ToLower(strings.TrimSpace(c)) == want {
			return true
		}
	}
	return false
}

// SplitCuisines parses a stored comma-separated cuisine string into a list.
func SplitCuisines(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// JoinCuisines renders a cuisine list for storage.
func JoinCuisines(cuisines []string) string {
	return strings.Join(cuisines, ", ")
}
