package ingest

import "testing"

func TestParseRating(t *testing.T) {
	cases := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"4.1/5", 4.1, true},
		{"4.1 /5", 4.1, true},
		{"3.8", 3.8, true},
		{"NEW", 0, false},
		{"-", 0, false},
		{"", 0, false},
		{"junk", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseRating(tc.raw)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParseRating(%q) = (%v, %v), want (%v, %v)", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestParseCostForTwo(t *testing.T) {
	cases := []struct {
		raw    string
		want   int
		wantOK bool
	}{
		{"800", 800, true},
		{"1,200", 1200, true},
		{" 1,500 ", 1500, true},
		{"", 0, false},
		{"NaN", 0, false},
		{"free", 0, false},
	}
	for _, tc := range cases {
		got, ok := ParseCostForTwo(tc.raw)
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("ParseCostForTwo(%q) = (%d, %v), want (%d, %v)", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestParseBool(t *testing.T) {
	if v, ok := ParseBool("Yes"); !ok || !v {
		t.Fatalf("ParseBool(Yes) = (%v, %v)", v, ok)
	}
	if v, ok := ParseBool(" no "); !ok || v {
		t.Fatalf("ParseBool(no) = (%v, %v)", v, ok)
	}
	if _, ok := ParseBool("maybe"); ok {
		t.Fatalf("ParseBool(maybe) must not parse")
	}
}

func TestNormalizeCuisines(t *testing.T) {
	got := NormalizeCuisines("North Indian, chinese, North indian, , Chinese")
	if len(got) != 2 {
		t.Fatalf("expected 2 cuisines, got %v", got)
	}
	if got[0] != "North Indian" || got[1] != "chinese" {
		t.Fatalf("expected first-seen casing preserved, got %v", got)
	}
}
