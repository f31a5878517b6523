package recs

import "dinewise-backend/internal/catalog"

// Candidate is one catalog record moving through the ranking pipeline for a
// single request.
type Candidate struct {
	Record        catalog.Record
	BaselineScore float64
	LLMScore      *float64
	Reason        string
}
