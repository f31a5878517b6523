package catalog

import (
	"math"
	"strings"
)

// Price and rating bucket thresholds (currency units for two, rating out of 5).
const (
	LowPriceMax     = 500
	MidPriceMax     = 1500
	RatingMediumMin = 3.0
	RatingHighMin   = 4.0
)

// Bucket values: 0 unknown, 1 low, 2 medium, 3 high.
const (
	BucketUnknown = 0
	BucketLow     = 1
	BucketMedium  = 2
	BucketHigh    = 3
)

// PriceBucket maps an approximate cost for two onto a coarse bucket.
func PriceBucket(approxCostForTwo int) int {
	switch {
	case approxCostForTwo <= 0:
		return BucketUnknown
	case approxCostForTwo <= LowPriceMax:
		return BucketLow
	case approxCostForTwo <= MidPriceMax:
		return BucketMedium
	default:
		return BucketHigh
	}
}

// RatingBucket maps a rating onto a coarse bucket.
func RatingBucket(rating float64) int {
	switch {
	case rating <= 0:
		return BucketUnknown
	case rating < RatingMediumMin:
		return BucketLow
	case rating < RatingHighMin:
		return BucketMedium
	default:
		return BucketHigh
	}
}

// PopularityScore combines rating and votes: rating * log10(1 + votes).
func PopularityScore(rating float64, votes int) float64 {
	if rating <= 0 && votes <= 0 {
		return 0
	}
	r := math.Max(rating, 0)
	v := math.Max(float64(votes), 0)
	return r * math.Log10(1+v)
}

// InferBuffet detects buffet-oriented restaurants from type labels.
func InferBuffet(restType, listedInType string) bool {
	return hasKeyword(restType, "buffet") || hasKeyword(listedInType, "buffet")
}

// InferCafe detects cafe-style restaurants from type labels.
func InferCafe(restType, listedInType string) bool {
	return hasKeyword(restType, "cafe") || hasKeyword(listedInType, "cafe")
}

func hasKeyword(value, keyword string) bool {
	return strings.Contains(strings.ToLower(value), keyword)
}

// SearchText composes a unified free-text search blob from display fields.
func SearchText(name, location, listedInType, restType, cuisines string) string {
	parts := []string{name, location, listedInType, restType, cuisines}
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " | ")
}

// ComputeFeatures fills the derived fields of a record from its raw fields.
func ComputeFeatures(r *Record) {
	r.PriceBucket = PriceBucket(r.ApproxCostForTwo)
	r.RatingBucket = RatingBucket(r.Rating)
	r.PopularityScore = PopularityScore(r.Rating, r.Votes)
	r.HasBuffet = InferBuffet(r.RestType, r.ListedInType)
	r.IsCafe = InferCafe(r.RestType, r.ListedInType)
	r.SearchText = SearchText(r.Name, r.Location, r.ListedInType, r.RestType, JoinCuisines(r.Cuisines))
}
