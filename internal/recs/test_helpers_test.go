package recs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dinewise-backend/internal/catalog"
	"dinewise-backend/internal/shared/config"
)

// fakeLLM returns a canned response or error and records the exchange.
type fakeLLM struct {
	response json.RawMessage
	err      error
	calls    int
	lastSys  string
	lastUser string
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string) (json.RawMessage, error) {
	_ = ctx
	f.calls++
	f.lastSys = system
	f.lastUser = user
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

// slowLLM blocks until the context is cancelled.
type slowLLM struct{}

func (slowLLM) Complete(ctx context.Context, system, user string) (json.RawMessage, error) {
	_ = system
	_ = user
	<-ctx.Done()
	return nil, ctx.Err()
}

func testEngineConfig() config.EngineConfig {
	return config.EngineConfig{
		DefaultLimit:  10,
		MaxCandidates: 50,
		RerankTopM:    10,
		EmptyRetry:    true,
		Weights:       config.DefaultWeights(),
	}
}

// seedCatalog loads the three reference records used across the engine
// tests: two in Bellandur at different price points, one cafe elsewhere.
func seedCatalog(t *testing.T) *catalog.MemoryRepo {
	t.Helper()
	repo := catalog.NewMemoryRepo()
	_, err := repo.InsertBatch(context.Background(), []catalog.Record{
		{Name: "Empire", Location: "Bellandur", Cuisines: []string{"North Indian", "Chinese"}, Rating: 4.2, Votes: 12000, ApproxCostForTwo: 400, OnlineOrder: true},
		{Name: "Truffles", Location: "Bellandur", Cuisines: []string{"American", "Burger"}, Rating: 4.8, Votes: 14000, ApproxCostForTwo: 1200, BookTable: true},
		{Name: "Third Wave", Location: "Koramangala", Cuisines: []string{"Cafe", "Beverages"}, RestType: "Cafe", Rating: 3.9, Votes: 800, ApproxCostForTwo: 300},
	})
	if err != nil {
		t.Fatalf("seed catalog: %v", err)
	}
	return repo
}

func candidateNames(cands []Candidate) []string {
	out := make([]string, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.Record.Name)
	}
	return out
}

const testTimeout = 200 * time.Millisecond
