package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Gobusters/ectologger"

	"github.com/Ramsey-B/protea/pkg/metrics"
	"github.com/Ramsey-B/protea/pkg/stats"
)

const statsKey = "protea:dashboard:stats"

// StatsCache caches the dashboard aggregates in Redis so a fleet of replicas
// serves the same view without each recomputing it. The cache is best-effort:
// any Redis failure falls through to the snapshot's own aggregates.
type StatsCache struct {
	client *Client
	ttl    time.Duration
	logger ectologger.Logger
}

// NewStatsCache creates a dashboard stats cache with the given TTL
func NewStatsCache(client *Client, ttl time.Duration, logger ectologger.Logger) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get returns the cached aggregates, or nil on miss or error
func (c *StatsCache) Get(ctx context.Context) *stats.DashboardStats {
	raw, err := c.client.Get(ctx, statsKey)
	if err != nil {
		if !IsNil(err) {
			c.logger.WithContext(ctx).WithError(err).Warn("stats cache read failed")
		}
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil
	}

	var cached stats.DashboardStats
	if err := json.Unmarshal([]byte(raw), &cached); err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("stats cache entry corrupt")
		metrics.StatsCacheTotal.WithLabelValues("miss").Inc()
		return nil
	}

	metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
	return &cached
}

// Set stores the aggregates
func (c *StatsCache) Set(ctx context.Context, s stats.DashboardStats) {
	data, err := json.Marshal(s)
	if err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("failed to marshal stats for cache")
		return
	}
	if err := c.client.Set(ctx, statsKey, data, c.ttl); err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("stats cache write failed")
	}
}

// Invalidate drops the cached aggregates, called after every snapshot refresh
func (c *StatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, statsKey); err != nil {
		c.logger.WithContext(ctx).WithError(err).Warn("stats cache invalidation failed")
	}
}
