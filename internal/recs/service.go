package recs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dinewise-backend/internal/catalog"
	"dinewise-backend/internal/llm"
	"dinewise-backend/internal/shared/config"
	"dinewise-backend/internal/shared/metrics"
	"dinewise-backend/internal/shared/telemetry"
)

// Service runs the full recommendation pipeline: parse, retrieve, score,
// rerank, assemble. It holds no per-request state and is safe for
// concurrent use.
type Service struct {
	Catalog   catalog.Repo
	Parser    *Parser
	Planner   *Planner
	Scorer    *Scorer
	Reranker  *Reranker
	Assembler *Assembler
}

// NewService wires the pipeline from injected dependencies. A nil client
// disables both provider calls; the heuristic and baseline paths still run.
func NewService(repo catalog.Repo, client llm.Client, cfg config.EngineConfig, timeout time.Duration) *Service {
	planner := NewPlanner(repo, cfg.MaxCandidates)
	scorer := NewScorer(cfg.Weights)
	return &Service{
		Catalog:   repo,
		Parser:    NewParser(client, timeout),
		Planner:   planner,
		Scorer:    scorer,
		Reranker:  NewReranker(client, cfg.RerankTopM, timeout),
		Assembler: NewAssembler(planner, scorer, cfg.DefaultLimit, cfg.EmptyRetry),
	}
}

// Recommend handles one request end to end. It returns ErrInvalidRequest
// for malformed input and a storage error when the catalog is unreachable;
// provider failures never surface.
func (s *Service) Recommend(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		metrics.RecommendationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		return Result{}, err
	}

	in, query, err := s.resolveIntent(ctx, req)
	if err != nil {
		return Result{}, err
	}

	records, err := s.Planner.Retrieve(ctx, in)
	if err != nil {
		return Result{}, err
	}
	ranked := s.Scorer.Rank(records, in)
	if len(ranked) > 0 {
		ranked = s.Reranker.Rerank(ctx, ranked, in, query)
	}

	limit := s.Assembler.DefaultLimit
	if in.Limit != nil {
		limit = *in.Limit
	}
	result, err := s.Assembler.Assemble(ctx, ranked, in, limit)
	if err != nil {
		return Result{}, err
	}
	result.Intent = in

	outcome := metrics.OutcomeOK
	if result.NoMatch {
		outcome = metrics.OutcomeNoMatch
	}
	metrics.RecommendationsTotal.WithLabelValues(outcome).Inc()
	telemetry.Info("recommend.complete", map[string]any{
		"results":  len(result.Candidates),
		"no_match": result.NoMatch,
		"relaxed":  result.Relaxed,
	})
	return result, nil
}

// resolveIntent parses query_text when present and overlays the explicit
// filters on top of the parsed values.
func (s *Service) resolveIntent(ctx context.Context, req Request) (Intent, string, error) {
	explicit := req.Intent()
	query := strings.TrimSpace(req.QueryText)
	if query == "" {
		return explicit, "", nil
	}

	locations, err := s.Catalog.ListLocations(ctx)
	if err != nil {
		return Intent{}, "", fmt.Errorf("list locations: %w", err)
	}
	cuisines, err := s.Catalog.ListCuisines(ctx)
	if err != nil {
		return Intent{}, "", fmt.Errorf("list cuisines: %w", err)
	}

	parsed := s.Parser.Parse(ctx, query, locations, cuisines)
	return parsed.Merge(explicit), query, nil
}

// Locations lists the known location vocabulary.
func (s *Service) Locations(ctx context.Context) ([]string, error) {
	return s.Catalog.ListLocations(ctx)
}

// Cuisines lists the known cuisine vocabulary.
func (s *Service) Cuisines(ctx context.Context) ([]string, error) {
	return s.Catalog.ListCuisines(ctx)
}
