package recs

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseEmptyQuerySkipsProvider(t *testing.T) {
	client := &fakeLLM{response: json.RawMessage(`{}`)}
	parser := NewParser(client, testTimeout)

	got := parser.Parse(context.Background(), "   ", testLocations, testCuisines)
	if !got.Empty() {
		t.Fatalf("expected empty intent, got %+v", got)
	}
	if client.calls != 0 {
		t.Fatalf("provider must not be called for empty query, got %d calls", client.calls)
	}
}

func TestParseUsesProviderResponse(t *testing.T) {
	client := &fakeLLM{response: json.RawMessage(`{
		"location": "bellandur",
		"cuisines": ["CHINESE"],
		"max_price": 1500
	}`)}
	parser := NewParser(client, testTimeout)

	got := parser.Parse(context.Background(), "best cafe in Bellandur for 1000-1500", testLocations, testCuisines)
	if got.Location == nil || *got.Location != "Bellandur" {
		t.Fatalf("Location = %v, want canonical Bellandur", got.Location)
	}
	if len(got.Cuisines) != 1 || got.Cuisines[0] != "Chinese" {
		t.Fatalf("Cuisines = %v, want canonical [Chinese]", got.Cuisines)
	}
	if got.MaxPrice == nil || *got.MaxPrice != 1500 {
		t.Fatalf("MaxPrice = %v, want 1500", got.MaxPrice)
	}
	if !strings.Contains(client.lastUser, "KNOWN_LOCATIONS") {
		t.Fatalf("prompt must carry the vocabulary, got %q", client.lastUser)
	}
}

func TestParseDropsUnknownVocabularyValues(t *testing.T) {
	client := &fakeLLM{response: json.RawMessage(`{
		"location": "Atlantis",
		"cuisines": ["Chinese", "Martian"],
		"min_rating": 4.0
	}`)}
	parser := NewParser(client, testTimeout)

	got := parser.Parse(context.Background(), "martian food in atlantis", testLocations, testCuisines)
	if got.Location != nil {
		t.Fatalf("unknown location must be dropped, got %v", *got.Location)
	}
	if len(got.Cuisines) != 1 || got.Cuisines[0] != "Chinese" {
		t.Fatalf("Cuisines = %v, want only the known value", got.Cuisines)
	}
	if got.MinRating == nil || *got.MinRating != 4.0 {
		t.Fatalf("valid fields must survive, MinRating = %v", got.MinRating)
	}
}

func TestParseFallsBackOnProviderError(t *testing.T) {
	client := &fakeLLM{err: errors.New("boom")}
	parser := NewParser(client, testTimeout)

	got := parser.Parse(context.Background(), "cheap chinese in Bellandur", testLocations, testCuisines)
	if got.Location == nil || *got.Location != "Bellandur" {
		t.Fatalf("heuristic fallback missing location: %+v", got)
	}
	if got.MaxPrice == nil || *got.MaxPrice != cheapMaxPrice {
		t.Fatalf("heuristic fallback missing price: %+v", got)
	}
}

func TestParseFallsBackOnSchemaViolation(t *testing.T) {
	client := &fakeLLM{response: json.RawMessage(`{"max_price": "plenty", "surprise": true}`)}
	parser := NewParser(client, testTimeout)

	got := parser.Parse(context.Background(), "cheap food in Bellandur", testLocations, testCuisines)
	if got.MaxPrice == nil || *got.MaxPrice != cheapMaxPrice {
		t.Fatalf("expected heuristic result after schema violation, got %+v", got)
	}
}

func TestParseFallsBackOnTimeout(t *testing.T) {
	parser := NewParser(slowLLM{}, testTimeout)

	got := parser.Parse(context.Background(), "cheap food in Bellandur", testLocations, testCuisines)
	if got.MaxPrice == nil || *got.MaxPrice != cheapMaxPrice {
		t.Fatalf("expected heuristic result after timeout, got %+v", got)
	}
}

func TestParseIsIdempotentWithFixedProvider(t *testing.T) {
	client := &fakeLLM{response: json.RawMessage(`{"location": "Bellandur", "max_price": 1500}`)}
	parser := NewParser(client, testTimeout)

	query := "best cafe in Bellandur for 1000-1500"
	first := parser.Parse(context.Background(), query, testLocations, testCuisines)
	second := parser.Parse(context.Background(), query, testLocations, testCuisines)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("parse not stable: %+v vs %+v", first, second)
	}
}
