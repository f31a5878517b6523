package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory Repo/Writer used in dev mode and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	records []Record
}

// NewMemoryRepo constructs an empty in-memory catalog.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

// Fetch filters the catalog by the constraint conjunction and returns at most
// limit records, ordered by popularity descending then id ascending.
func (r *MemoryRepo) Fetch(ctx context.Context, constraints Constraints, limit int) ([]Record, error) {
	_ = ctx
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	matched := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		if matches(rec, constraints) {
			matched = append(matched, rec)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].PopularityScore != matched[j].PopularityScore {
			return matched[i].PopularityScore > matched[j].PopularityScore
		}
		return matched[i].ID < matched[j].ID
	})
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

func matches(rec Record, c Constraints) bool {
	if c.Location != nil {
		want := strings.ToLower(strings.TrimSpace(*c.Location))
		if strings.ToLower(strings.TrimSpace(rec.Location)) != want {
			return false
		}
	}
	if len(c.Cuisines) > 0 {
		found := false
		for _, cuisine := range c.Cuisines {
			if recContainsCuisine(rec, cuisine) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if c.MinRating != nil && rec.Rating < *c.MinRating {
		return false
	}
	if c.MaxRating != nil && rec.Rating > *c.MaxRating {
		return false
	}
	if c.MinCost != nil && rec.ApproxCostForTwo < *c.MinCost {
		return false
	}
	if c.MaxCost != nil && rec.ApproxCostForTwo > *c.MaxCost {
		return false
	}
	if c.OnlineOrder && !rec.OnlineOrder {
		return false
	}
	if c.BookTable && !rec.BookTable {
		return false
	}
	if c.Buffet && !rec.HasBuffet {
		return false
	}
	if c.Cafe && !rec.IsCafe {
		return false
	}
	return true
}

// recContainsCuisine mirrors the storage-layer substring match so memory and
// Postgres retrieval agree.
func recContainsCuisine(rec Record, cuisine string) bool {
	want := strings.ToLower(strings.TrimSpace(cuisine))
	if want == "" {
		return false
	}
	for _, c := range rec.Cuisines {
		if strings.Contains(strings.ToLower(c), want) {
			return true
		}
	}
	return false
}

// ListLocations returns the distinct non-empty locations, sorted.
func (r *MemoryRepo) ListLocations(ctx context.Context) ([]string, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]string)
	for _, rec := range r.records {
		loc := strings.TrimSpace(rec.Location)
		if loc == "" {
			continue
		}
		key := strings.ToLower(loc)
		if _, ok := seen[key]; !ok {
			seen[key] = loc
		}
	}
	return sortedValues(seen), nil
}

// ListCuisines returns the distinct cuisines across all records, sorted.
func (r *MemoryRepo) ListCuisines(ctx context.Context) ([]string, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]string)
	for _, rec := range r.records {
		for _, cuisine := range rec.Cuisines {
			trimmed := strings.TrimSpace(cuisine)
			if trimmed == "" {
				continue
			}
			key := strings.ToLower(trimmed)
			if _, ok := seen[key]; !ok {
				seen[key] = trimmed
			}
		}
	}
	return sortedValues(seen), nil
}

// InsertBatch assigns ids, recomputes derived features and stores the records.
func (r *MemoryRepo) InsertBatch(ctx context.Context, records []Record) (int, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range records {
		rec := records[i]
		ComputeFeatures(&rec)
		if rec.ID == 0 {
			rec.ID = r.nextID
			r.nextID++
		} else if rec.ID >= r.nextID {
			r.nextID = rec.ID + 1
		}
		r.records = append(r.records, rec)
	}
	return len(records), nil
}

func sortedValues(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

var (
	_ Repo   = (*MemoryRepo)(nil)
	_ Writer = (*MemoryRepo)(nil)
)
