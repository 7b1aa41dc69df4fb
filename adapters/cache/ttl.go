// Package cache provides an in-memory TTL cache for fetched seasons so
// repeated analyses of the same pitcher skip the upstream fetch.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"pitchlens/domain/pitch"
	"pitchlens/ports"
)

// DefaultSeasonTTL keeps a season fresh for an hour, long enough for an
// analysis session, short enough to pick up games as they post.
const DefaultSeasonTTL = time.Hour

type entry struct {
	events  []pitch.PitchEvent
	expires time.Time
}

// SeasonCache wraps a SeasonSource with a read-through TTL cache.
type SeasonCache struct {
	source ports.SeasonSource
	ttl    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]entry
}

// NewSeasonCache wraps source with the given TTL; ttl <= 0 uses the default.
func NewSeasonCache(source ports.SeasonSource, ttl time.Duration) *SeasonCache {
	if ttl <= 0 {
		ttl = DefaultSeasonTTL
	}
	return &SeasonCache{
		source:  source,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// FetchSeason returns the cached season when fresh, otherwise delegates to
// the wrapped source and caches the result. Fetch errors are never cached.
func (c *SeasonCache) FetchSeason(ctx context.Context, pitcherID, season int) ([]pitch.PitchEvent, error) {
	key := cacheKey(pitcherID, season)

	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.now().Before(e.expires) {
		return e.events, nil
	}

	events, err := c.source.FetchSeason(ctx, pitcherID, season)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = entry{events: events, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return events, nil
}

// Invalidate drops one pitcher-season from the cache.
func (c *SeasonCache) Invalidate(pitcherID, season int) {
	c.mu.Lock()
	delete(c.entries, cacheKey(pitcherID, season))
	c.mu.Unlock()
}

// Len reports the number of cached seasons, expired entries included.
func (c *SeasonCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func cacheKey(pitcherID, season int) string {
	return fmt.Sprintf("%d:%d", pitcherID, season)
}
