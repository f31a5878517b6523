package catalog

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"dinewise-backend/internal/shared/telemetry"
)

const (
	vocabLocationsKey = "vocab:locations"
	vocabCuisinesKey  = "vocab:cuisines"
)

// VocabCache is a read-through Redis cache for the known-locations and
// known-cuisines vocabularies the intent parser consumes. Cache failures
// degrade silently to the underlying repo.
type VocabCache struct {
	Repo   Repo
	Client *redis.Client
	TTL    time.Duration
}

// NewVocabCache wraps repo with a Redis-backed vocabulary cache.
func NewVocabCache(repo Repo, client *redis.Client, ttl time.Duration) *VocabCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &VocabCache{Repo: repo, Client: client, TTL: ttl}
}

// Fetch delegates to the underlying repo; candidate rows are never cached.
func (c *VocabCache) Fetch(ctx context.Context, constraints Constraints, limit int) ([]Record, error) {
	return c.Repo.Fetch(ctx, constraints, limit)
}

// ListLocations returns the cached location vocabulary, filling on miss.
func (c *VocabCache) ListLocations(ctx context.Context) ([]string, error) {
	return c.cachedList(ctx, vocabLocationsKey, c.Repo.ListLocations)
}

// ListCuisines returns the cached cuisine vocabulary, filling on miss.
func (c *VocabCache) ListCuisines(ctx context.Context) ([]string, error) {
	return c.cachedList(ctx, vocabCuisinesKey, c.Repo.ListCuisines)
}

func (c *VocabCache) cachedList(ctx context.Context, key string, load func(context.Context) ([]string, error)) ([]string, error) {
	if c.Client != nil {
		raw, err := c.Client.Get(ctx, key).Result()
		if err == nil {
			var out []string
			if jsonErr := json.Unmarshal([]byte(raw), &out); jsonErr == nil {
				return out, nil
			}
		} else if err != redis.Nil {
			telemetry.Warn("vocab.cache_read_failed", map[string]any{"key": key, "error": err.Error()})
		}
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if c.Client != nil {
		if data, jsonErr := json.Marshal(out); jsonErr == nil {
			if err := c.Client.Set(ctx, key, data, c.TTL).Err(); err != nil {
				telemetry.Warn("vocab.cache_write_failed", map[string]any{"key": key, "error": err.Error()})
			}
		}
	}
	return out, nil
}

var _ Repo = (*VocabCache)(nil)
