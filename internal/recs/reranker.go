package recs

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"dinewise-backend/internal/llm"
	"dinewise-backend/internal/shared/metrics"
	"dinewise-backend/internal/shared/telemetry"
)

// Reranker asks the provider to reorder the top-M baseline candidates and
// attach reasons. It only ever permutes the closed list it was given; on
// any failure the input ordering passes through untouched.
type Reranker struct {
	LLM     llm.Client
	TopM    int
	Timeout time.Duration
}

func NewReranker(client llm.Client, topM int, timeout time.Duration) *Reranker {
	if topM <= 0 {
		topM = 10
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Reranker{LLM: client, TopM: topM, Timeout: timeout}
}

type rerankResponse struct {
	Ranking []struct {
		ID     int64    `json:"id"`
		Score  *float64 `json:"score"`
		Reason string   `json:"reason"`
	} `json:"ranking"`
}

// Rerank reorders cands in place of the baseline ordering. Candidates past
// TopM keep their baseline positions after the reranked head.
func (r *Reranker) Rerank(ctx context.Context, cands []Candidate, in Intent, query string) []Candidate {
	if len(cands) == 0 || r.LLM == nil {
		return cands
	}

	head := cands
	var tail []Candidate
	if len(cands) > r.TopM {
		head = cands[:r.TopM]
		tail = cands[r.TopM:]
	}

	reranked, err := r.rerankOnce(ctx, head, in, query)
	if err != nil {
		metrics.LLMFallbacksTotal.WithLabelValues("rerank", fallbackReason(err)).Inc()
		telemetry.Warn("rerank.passthrough", map[string]any{"error": err.Error()})
		return cands
	}
	return append(reranked, tail...)
}

func (r *Reranker) rerankOnce(ctx context.Context, head []Candidate, in Intent, query string) ([]Candidate, error) {
	user, err := buildRerankUserPrompt(query, in, head)
	if err != nil {
		return nil, err
	}

	callCtx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	started := time.Now()
	raw, err := r.LLM.Complete(callCtx, rerankSystemPrompt, user)
	metrics.LLMCallDuration.WithLabelValues("rerank").Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, err
	}
	if err := validateAgainst(rerankSchema, raw); err != nil {
		return nil, err
	}

	var parsed rerankResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, err
	}
	return applyRanking(head, parsed), nil
}

// applyRanking merges the provider's scores onto the closed candidate list.
// Identifiers outside the list are discarded; candidates the provider
// skipped keep their baseline order at the end without a reason.
func applyRanking(head []Candidate, parsed rerankResponse) []Candidate {
	byID := make(map[int64]int, len(head))
	for i, c := range head {
		byID[c.Record.ID] = i
	}

	out := make([]Candidate, len(head))
	copy(out, head)

	dropped := 0
	for _, item := range parsed.Ranking {
		idx, ok := byID[item.ID]
		if !ok {
			dropped++
			continue
		}
		if item.Score != nil && out[idx].LLMScore == nil {
			score := clampScore(*item.Score)
			out[idx].LLMScore = &score
			out[idx].Reason = item.Reason
		}
	}
	if dropped > 0 {
		telemetry.Warn("rerank.foreign_ids", map[string]any{"dropped": dropped})
	}

	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].LLMScore, out[j].LLMScore
		switch {
		case si != nil && sj == nil:
			return true
		case si == nil && sj != nil:
			return false
		case si != nil && sj != nil && *si != *sj:
			return *si > *sj
		}
		if out[i].BaselineScore != out[j].BaselineScore {
			return out[i].BaselineScore > out[j].BaselineScore
		}
		return out[i].Record.ID < out[j].Record.ID
	})
	return out
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
