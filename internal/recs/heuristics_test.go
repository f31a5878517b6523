package recs

import (
	"reflect"
	"testing"
)

var (
	testLocations = []string{"Bellandur", "Koramangala", "Koramangala 5th Block"}
	testCuisines  = []string{"North Indian", "Chinese", "Cafe"}
)

func TestHeuristicParsePriceKeywords(t *testing.T) {
	cases := []struct {
		query string
		want  int
	}{
		{"cheap places nearby", cheapMaxPrice},
		{"something budget friendly", cheapMaxPrice},
		{"a mid range dinner", midRangeMaxPrice},
		{"something reasonable", midRangeMaxPrice},
		{"fine dining for an anniversary", expensiveMaxPrice},
		{"expensive rooftop place", expensiveMaxPrice},
	}
	for _, tc := range cases {
		got := HeuristicParse(tc.query, testLocations, testCuisines)
		if got.MaxPrice == nil || *got.MaxPrice != tc.want {
			t.Errorf("HeuristicParse(%q).MaxPrice = %v, want %d", tc.query, got.MaxPrice, tc.want)
		}
	}
}

func TestHeuristicParsePriceRange(t *testing.T) {
	got := HeuristicParse("dinner for 1000-1500 in Bellandur", testLocations, testCuisines)
	if got.MinPrice == nil || *got.MinPrice != 1000 {
		t.Fatalf("MinPrice = %v, want 1000", got.MinPrice)
	}
	if got.MaxPrice == nil || *got.MaxPrice != 1500 {
		t.Fatalf("MaxPrice = %v, want 1500", got.MaxPrice)
	}

	got = HeuristicParse("anything from 500 to 800", testLocations, testCuisines)
	if got.MinPrice == nil || *got.MinPrice != 500 || got.MaxPrice == nil || *got.MaxPrice != 800 {
		t.Fatalf("range 500 to 800 parsed as (%v, %v)", got.MinPrice, got.MaxPrice)
	}
}

func TestHeuristicParseUnderPrice(t *testing.T) {
	got := HeuristicParse("dinner under 600", testLocations, testCuisines)
	if got.MaxPrice == nil || *got.MaxPrice != 600 {
		t.Fatalf("MaxPrice = %v, want 600", got.MaxPrice)
	}
	if got.MinPrice != nil {
		t.Fatalf("MinPrice = %v, want nil", got.MinPrice)
	}
}

func TestHeuristicParseRating(t *testing.T) {
	got := HeuristicParse("places rated 4.5 or better", testLocations, testCuisines)
	if got.MinRating == nil || *got.MinRating != 4.5 {
		t.Fatalf("MinRating = %v, want 4.5", got.MinRating)
	}

	got = HeuristicParse("4 star rating spots", testLocations, testCuisines)
	if got.MinRating == nil || *got.MinRating != 4 {
		t.Fatalf("MinRating = %v, want 4", got.MinRating)
	}

	got = HeuristicParse("dinner for 800", testLocations, testCuisines)
	if got.MinRating != nil {
		t.Fatalf("numbers without rating keywords must not set MinRating, got %v", got.MinRating)
	}
}

func TestHeuristicParseVocabulary(t *testing.T) {
	got := HeuristicParse("chinese food in koramangala 5th block", testLocations, testCuisines)
	if got.Location == nil || *got.Location != "Koramangala 5th Block" {
		t.Fatalf("Location = %v, want the longest vocabulary match", got.Location)
	}
	if len(got.Cuisines) != 1 || got.Cuisines[0] != "Chinese" {
		t.Fatalf("Cuisines = %v, want [Chinese]", got.Cuisines)
	}
}

func TestHeuristicParseExtras(t *testing.T) {
	got := HeuristicParse("buffet with home delivery, need to book a table", testLocations, testCuisines)
	if !got.Buffet || !got.OnlineOrder || !got.TableBooking {
		t.Fatalf("extras not detected: %+v", got)
	}

	got = HeuristicParse("a cafe for coffee", testLocations, testCuisines)
	if !got.Cafe {
		t.Fatalf("cafe not detected")
	}
}

func TestHeuristicParseIsIdempotent(t *testing.T) {
	query := "cheap chinese buffet in Bellandur rated 4+"
	first := HeuristicParse(query, testLocations, testCuisines)
	second := HeuristicParse(query, testLocations, testCuisines)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("heuristic parse not stable: %+v vs %+v", first, second)
	}
}
