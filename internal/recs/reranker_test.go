package recs

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"dinewise-backend/internal/catalog"
)

func baselineCandidates() []Candidate {
	return []Candidate{
		{Record: catalog.Record{ID: 1, Name: "Empire"}, BaselineScore: 0.9},
		{Record: catalog.Record{ID: 2, Name: "Truffles"}, BaselineScore: 0.8},
		{Record: catalog.Record{ID: 3, Name: "Third Wave"}, BaselineScore: 0.7},
	}
}

func TestRerankReordersByProviderScore(t *testing.T) {
	client := &fakeLLM{response: json.RawMessage(`{"ranking": [
		{"id": 3, "score": 9.5, "reason": "quiet spot with great coffee"},
		{"id": 1, "score": 7.0, "reason": "popular and affordable"},
		{"id": 2, "score": 4.0, "reason": "pricier than requested"}
	]}`)}
	rr := NewReranker(client, 10, testTimeout)

	got := rr.Rerank(context.Background(), baselineCandidates(), Intent{}, "coffee place")
	want := []string{"Third Wave", "Empire", "Truffles"}
	if !reflect.DeepEqual(candidateNames(got), want) {
		t.Fatalf("order = %v, want %v", candidateNames(got), want)
	}
	if got[0].Reason == "" {
		t.Fatalf("reason missing on reranked candidate")
	}
}

func TestRerankDiscardsForeignIdentifiers(t *testing.T) {
	client := &fakeLLM{response: json.RawMessage(`{"ranking": [
		{"id": 999, "score": 10, "reason": "does not exist"},
		{"id": 2, "score": 8.0, "reason": "solid pick"}
	]}`)}
	rr := NewReranker(client, 10, testTimeout)

	got := rr.Rerank(context.Background(), baselineCandidates(), Intent{}, "")
	if len(got) != 3 {
		t.Fatalf("candidate count changed: %d", len(got))
	}
	for _, c := range got {
		if c.Record.ID == 999 {
			t.Fatalf("foreign identifier leaked into results")
		}
	}
	// Scored candidate first, the unscored rest keep baseline order.
	want := []string{"Truffles", "Empire", "Third Wave"}
	if !reflect.DeepEqual(candidateNames(got), want) {
		t.Fatalf("order = %v, want %v", candidateNames(got), want)
	}
	if got[1].Reason != "" || got[2].Reason != "" {
		t.Fatalf("unscored candidates must carry no reason")
	}
}

func TestRerankPassthroughOnProviderError(t *testing.T) {
	rr := NewReranker(&fakeLLM{err: errors.New("boom")}, 10, testTimeout)

	in := baselineCandidates()
	got := rr.Rerank(context.Background(), in, Intent{}, "")
	if !reflect.DeepEqual(candidateNames(got), candidateNames(in)) {
		t.Fatalf("passthrough must preserve baseline order, got %v", candidateNames(got))
	}
}

func TestRerankPassthroughOnTimeout(t *testing.T) {
	rr := NewReranker(slowLLM{}, 10, testTimeout)

	in := baselineCandidates()
	got := rr.Rerank(context.Background(), in, Intent{}, "")
	if !reflect.DeepEqual(candidateNames(got), candidateNames(in)) {
		t.Fatalf("passthrough must preserve baseline order, got %v", candidateNames(got))
	}
}

func TestRerankPassthroughOnSchemaViolation(t *testing.T) {
	client := &fakeLLM{response: json.RawMessage(`{"ranking": [{"id": "one", "score": 99}]}`)}
	rr := NewReranker(client, 10, testTimeout)

	in := baselineCandidates()
	got := rr.Rerank(context.Background(), in, Intent{}, "")
	if !reflect.DeepEqual(candidateNames(got), candidateNames(in)) {
		t.Fatalf("passthrough must preserve baseline order, got %v", candidateNames(got))
	}
}

func TestRerankOnlySendsTopM(t *testing.T) {
	client := &fakeLLM{response: json.RawMessage(`{"ranking": [{"id": 2, "score": 9, "reason": "best of the head"}]}`)}
	rr := NewReranker(client, 2, testTimeout)

	got := rr.Rerank(context.Background(), baselineCandidates(), Intent{}, "")
	if len(got) != 3 {
		t.Fatalf("candidate count changed: %d", len(got))
	}
	// Third candidate sits past the cutoff and must stay last.
	if got[2].Record.ID != 3 {
		t.Fatalf("tail candidate moved: %v", candidateNames(got))
	}
	if strings.Contains(client.lastUser, "Third Wave") {
		t.Fatalf("candidate past the cutoff was sent to the provider")
	}
}
