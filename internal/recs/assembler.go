package recs

import (
	"context"

	"dinewise-backend/internal/shared/telemetry"
)

// Result is the assembled answer for one request.
type Result struct {
	Candidates []Candidate
	Intent     Intent
	NoMatch    bool
	// Relaxed marks results produced after dropping a constraint; hard
	// constraint guarantees only hold when it is false.
	Relaxed           bool
	DroppedConstraint string
}

// Assembler owns final ordering, truncation and the single relaxed retry.
type Assembler struct {
	Planner      *Planner
	Scorer       *Scorer
	DefaultLimit int
	EmptyRetry   bool
}

func NewAssembler(planner *Planner, scorer *Scorer, defaultLimit int, emptyRetry bool) *Assembler {
	if defaultLimit <= 0 {
		defaultLimit = 10
	}
	return &Assembler{Planner: planner, Scorer: scorer, DefaultLimit: defaultLimit, EmptyRetry: emptyRetry}
}

// Assemble truncates ranked candidates to limit. When the candidate set is
// empty and retries are enabled it drops one constraint and re-runs
// retrieval exactly once; the retried result is baseline-ordered and
// flagged as relaxed.
func (a *Assembler) Assemble(ctx context.Context, ranked []Candidate, in Intent, limit int) (Result, error) {
	if limit <= 0 {
		limit = a.DefaultLimit
	}

	if len(ranked) == 0 && a.EmptyRetry {
		relaxed, dropped, ok := relaxIntent(in)
		if ok {
			telemetry.Info("assemble.relaxed_retry", map[string]any{"dropped": dropped})
			records, err := a.Planner.Retrieve(ctx, relaxed)
			if err != nil {
				return Result{}, err
			}
			retried := a.Scorer.Rank(records, relaxed)
			return Result{
				Candidates:        truncate(retried, limit),
				NoMatch:           true,
				Relaxed:           true,
				DroppedConstraint: dropped,
			}, nil
		}
	}

	return Result{
		Candidates: truncate(ranked, limit),
		NoMatch:    len(ranked) == 0,
	}, nil
}

// relaxIntent drops the first constraint group present in precedence order,
// location last. It reports false when nothing is left to drop.
func relaxIntent(in Intent) (Intent, string, bool) {
	out := in
	switch {
	case in.OnlineOrder || in.TableBooking || in.Buffet || in.Cafe:
		out.OnlineOrder = false
		out.TableBooking = false
		out.Buffet = false
		out.Cafe = false
		return out, "extras", true
	case len(in.Cuisines) > 0:
		out.Cuisines = nil
		return out, "cuisine", true
	case in.MinRating != nil || in.MaxRating != nil:
		out.MinRating = nil
		out.MaxRating = nil
		return out, "rating", true
	case in.MinPrice != nil || in.MaxPrice != nil:
		out.MinPrice = nil
		out.MaxPrice = nil
		return out, "price", true
	case in.Location != nil:
		out.Location = nil
		return out, "location", true
	}
	return in, "", false
}

func truncate(cands []Candidate, limit int) []Candidate {
	if len(cands) > limit {
		return cands[:limit]
	}
	return cands
}
