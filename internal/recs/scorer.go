package recs

import (
	"sort"
	"strings"

	"dinewise-backend/internal/catalog"
	"dinewise-backend/internal/shared/config"
)

// Scorer computes the deterministic baseline score. The weighted sum stays
// in [0,1] as long as the configured weights sum to 1.
type Scorer struct {
	Weights config.ScoreWeights
}

func NewScorer(w config.ScoreWeights) *Scorer {
	if w.Rating == 0 && w.Popularity == 0 && w.PriceFit == 0 && w.Cuisine == 0 {
		w = config.DefaultWeights()
	}
	return &Scorer{Weights: w}
}

const neutralFit = 0.5

// Score computes the baseline score for one record under the given intent.
func (s *Scorer) Score(rec catalog.Record, in Intent) float64 {
	w := s.Weights

	ratingTerm := clamp01(rec.Rating / 5.0)
	popularityTerm := clamp01(rec.PopularityScore / w.PopularityRef)
	priceTerm := s.priceFit(rec, in)
	cuisineTerm := cuisineMatch(rec, in.Cuisines)

	return w.Rating*ratingTerm + w.Popularity*popularityTerm + w.PriceFit*priceTerm + w.Cuisine*cuisineTerm
}

// Rank scores every record and returns candidates sorted by baseline score
// descending, ties broken by id ascending.
func (s *Scorer) Rank(records []catalog.Record, in Intent) []Candidate {
	cands := make([]Candidate, 0, len(records))
	for _, rec := range records {
		cands = append(cands, Candidate{Record: rec, BaselineScore: s.Score(rec, in)})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].BaselineScore != cands[j].BaselineScore {
			return cands[i].BaselineScore > cands[j].BaselineScore
		}
		return cands[i].Record.ID < cands[j].Record.ID
	})
	return cands
}

// priceFit measures closeness to the requested price point. Without a price
// signal, or for records with unknown cost, the term is neutral.
func (s *Scorer) priceFit(rec catalog.Record, in Intent) float64 {
	if rec.ApproxCostForTwo <= 0 {
		return neutralFit
	}
	var target float64
	switch {
	case in.MinPrice != nil && in.MaxPrice != nil:
		target = float64(*in.MinPrice+*in.MaxPrice) / 2
	case in.MaxPrice != nil:
		target = float64(*in.MaxPrice)
	case in.MinPrice != nil:
		target = float64(*in.MinPrice)
	default:
		return neutralFit
	}
	diff := float64(rec.ApproxCostForTwo) - target
	if diff < 0 {
		diff = -diff
	}
	return clamp01(1.0 - diff/s.Weights.PriceScale)
}

// cuisineMatch is the fraction of requested cuisines present on the record,
// neutral when no cuisines were requested.
func cuisineMatch(rec catalog.Record, requested []string) float64 {
	if len(requested) == 0 {
		return neutralFit
	}
	matched := 0
	for _, want := range requested {
		for _, have := range rec.Cuisines {
			if strings.EqualFold(strings.TrimSpace(want), strings.TrimSpace(have)) {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(requested))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
