package catalog

import (
	"math"
	"testing"
)

func TestPriceBucket(t *testing.T) {
	cases := []struct {
		cost int
		want int
	}{
		{0, BucketUnknown},
		{-10, BucketUnknown},
		{300, BucketLow},
		{500, BucketLow},
		{501, BucketMedium},
		{1500, BucketMedium},
		{1501, BucketHigh},
		{5000, BucketHigh},
	}
	for _, tc := range cases {
		if got := PriceBucket(tc.cost); got != tc.want {
			t.Errorf("PriceBucket(%d) = %d, want %d", tc.cost, got, tc.want)
		}
	}
}

func TestRatingBucket(t *testing.T) {
	cases := []struct {
		rating float64
		want   int
	}{
		{0, BucketUnknown},
		{2.9, BucketLow},
		{3.0, BucketMedium},
		{3.9, BucketMedium},
		{4.0, BucketHigh},
		{4.9, BucketHigh},
	}
	for _, tc := range cases {
		if got := RatingBucket(tc.rating); got != tc.want {
			t.Errorf("RatingBucket(%v) = %d, want %d", tc.rating, got, tc.want)
		}
	}
}

func TestPopularityScore(t *testing.T) {
	if got := PopularityScore(4.0, 0); got != 0 {
		t.Fatalf("PopularityScore(4.0, 0) = %v, want 0", got)
	}
	want := 4.0 * math.Log10(1+999)
	if got := PopularityScore(4.0, 999); math.Abs(got-want) > 1e-9 {
		t.Fatalf("PopularityScore(4.0, 999) = %v, want %v", got, want)
	}
	if PopularityScore(4.5, 100) <= PopularityScore(4.5, 10) {
		t.Fatalf("more votes must not lower popularity")
	}
}

func TestComputeFeaturesDerivesEverything(t *testing.T) {
	rec := Record{
		Name:             "Truffles",
		Location:         "Koramangala",
		RestType:         "Casual Dining, Cafe",
		ListedInType:     "Buffet",
		Cuisines:         []string{"American", "Burger"},
		Rating:           4.7,
		Votes:            9000,
		ApproxCostForTwo: 900,
	}
	ComputeFeatures(&rec)

	if rec.PriceBucket != BucketMedium {
		t.Errorf("PriceBucket = %d, want %d", rec.PriceBucket, BucketMedium)
	}
	if rec.RatingBucket != BucketHigh {
		t.Errorf("RatingBucket = %d, want %d", rec.RatingBucket, BucketHigh)
	}
	if rec.PopularityScore <= 0 {
		t.Errorf("PopularityScore = %v, want > 0", rec.PopularityScore)
	}
	if !rec.HasBuffet {
		t.Errorf("HasBuffet = false, want true via listed_in type")
	}
	if !rec.IsCafe {
		t.Errorf("IsCafe = false, want true via rest type")
	}
	if rec.SearchText == "" {
		t.Errorf("SearchText is empty")
	}
}

func TestHasCuisineIsExactCaseInsensitive(t *testing.T) {
	rec := Record{Cuisines: []string{"North Indian", "Chinese"}}
	if !rec.HasCuisine("north indian") {
		t.Fatalf("expected match for differing case")
	}
	if rec.HasCuisine("Indian") {
		t.Fatalf("substring must not match")
	}
}
