package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Constraints is the hard-filter conjunction the retrieval planner builds
// from an intent. All set fields are AND-ed; boolean extras are
// require-true when set.
type Constraints struct {
	Location  *string
	Cuisines  []string
	MinRating *float64
	MaxRating *float64
	MinCost   *int
	MaxCost   *int

	OnlineOrder bool
	BookTable   bool
	Buffet      bool
	Cafe        bool
}

// Empty reports whether no constraint is set.
func (c Constraints) Empty() bool {
	return c.Location == nil && len(c.Cuisines) == 0 &&
		c.MinRating == nil && c.MaxRating == nil &&
		c.MinCost == nil && c.MaxCost == nil &&
		!c.OnlineOrder && !c.BookTable && !c.Buffet && !c.Cafe
}

// Repo is the read-only catalog accessor. Fetch returns at most limit
// records matching the constraint conjunction, ordered by popularity score
// descending then id ascending, from one consistent snapshot per call.
type Repo interface {
	Fetch(ctx context.Context, constraints Constraints, limit int) ([]Record, error)
	ListLocations(ctx context.Context) ([]string, error)
	ListCuisines(ctx context.Context) ([]string, error)
}

// Writer is the write side used by ingestion.
type Writer interface {
	InsertBatch(ctx context.Context, records []Record) (int, error)
}
