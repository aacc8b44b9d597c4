// Package cache provides a Redis-backed cache for leaderboard reads. The
// engine works without it; a nil cache disables caching entirely.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/architect/kidlearn/internal/progress/models"
	"github.com/redis/go-redis/v9"
)

const (
	genKey = "kidlearn:leaderboard:gen"
	ttl    = 30 * time.Second
)

// LeaderboardCache stores computed leaderboard pages keyed by a generation
// counter. Progress writes bump the generation, so stale pages are never
// served; abandoned generations fall out via TTL.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

func (c *LeaderboardCache) key(gen int64, limit int) string {
	return fmt.Sprintf("kidlearn:leaderboard:%d:%d", gen, limit)
}

// Get returns the cached leaderboard for limit, or nil on a miss. Cache
// failures are reported as misses; the caller recomputes from the store.
func (c *LeaderboardCache) Get(ctx context.Context, limit int) []models.LeaderboardEntry {
	if c == nil || c.client == nil {
		return nil
	}

	gen, err := c.client.Get(ctx, genKey).Int64()
	if err != nil {
		return nil
	}

	data, err := c.client.Get(ctx, c.key(gen, limit)).Bytes()
	if err != nil {
		return nil
	}

	var entries []models.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

// Set stores a computed leaderboard page under the current generation.
func (c *LeaderboardCache) Set(ctx context.Context, limit int, entries []models.LeaderboardEntry) {
	if c == nil || c.client == nil {
		return
	}

	gen, err := c.client.Get(ctx, genKey).Int64()
	if err != nil {
		gen = 0
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, c.key(gen, limit), data, ttl).Err()
}

// Invalidate bumps the generation so subsequent reads miss. Called after
// every progress write.
func (c *LeaderboardCache) Invalidate(ctx context.Context) {
	if c == nil || c.client == nil {
		return
	}
	_ = c.client.Incr(ctx, genKey).Err()
}
