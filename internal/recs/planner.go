package recs

import (
	"context"
	"fmt"

	"dinewise-backend/internal/catalog"
	"dinewise-backend/internal/shared/metrics"
)

// Planner turns an Intent into hard catalog constraints and fetches the
// candidate set. Constraints are a strict conjunction; an empty result is
// returned as-is and relaxation is decided upstream.
type Planner struct {
	Catalog       catalog.Repo
	MaxCandidates int
}

func NewPlanner(repo catalog.Repo, maxCandidates int) *Planner {
	if maxCandidates <= 0 {
		maxCandidates = 50
	}
	return &Planner{Catalog: repo, MaxCandidates: maxCandidates}
}

// Retrieve fetches at most MaxCandidates records matching the intent,
// ordered by popularity descending then id ascending.
func (p *Planner) Retrieve(ctx context.Context, in Intent) ([]catalog.Record, error) {
	records, err := p.Catalog.Fetch(ctx, in.Constraints(), p.MaxCandidates)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	metrics.RetrievalCandidates.Observe(float64(len(records)))
	return records, nil
}
