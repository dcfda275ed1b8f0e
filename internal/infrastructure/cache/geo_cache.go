package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mynet/sales/internal/application/geo"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type geoEntry struct {
	loc       geo.Location
	expiresAt time.Time
}

// InMemoryGeoCache keeps geolocation results in process memory. Expired
// entries are dropped when read.
type InMemoryGeoCache struct {
	mu      sync.Mutex
	clock   shared.Clock
	entries map[string]geoEntry
}

// NewInMemoryGeoCache creates an empty cache
func NewInMemoryGeoCache(clock shared.Clock) *InMemoryGeoCache {
	if clock == nil {
		clock = shared.SystemClock{}
	}
	return &InMemoryGeoCache{
		clock:   clock,
		entries: make(map[string]geoEntry),
	}
}

// Get returns the cached location unless it has expired
func (c *InMemoryGeoCache) Get(_ context.Context, ip string) (*geo.Location, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[ip]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, ip)
		return nil, false
	}
	loc := e.loc
	return &loc, true
}

// Set stores loc for ttl
func (c *InMemoryGeoCache) Set(_ context.Context, ip string, loc *geo.Location, ttl time.Duration) {
	if loc == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[ip] = geoEntry{loc: *loc, expiresAt: c.clock.Now().Add(ttl)}
}

// Len returns the number of stored entries, expired ones included
func (c *InMemoryGeoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// RedisGeoCache shares geolocation results between instances. Redis
// errors are logged and treated as cache misses.
type RedisGeoCache struct {
	client    redis.UniversalClient
	keyPrefix string
	logger    *zap.Logger
}

// NewRedisGeoCache creates a cache on an existing client
func NewRedisGeoCache(client redis.UniversalClient, logger *zap.Logger) *RedisGeoCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisGeoCache{
		client:    client,
		keyPrefix: "sales:geo:",
		logger:    logger,
	}
}

// Get returns the cached location
func (c *RedisGeoCache) Get(ctx context.Context, ip string) (*geo.Location, bool) {
	raw, err := c.client.Get(ctx, c.keyPrefix+ip).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("geo cache read failed", zap.String("ip", ip), zap.Error(err))
		}
		return nil, false
	}
	var loc geo.Location
	if err := json.Unmarshal(raw, &loc); err != nil {
		c.logger.Warn("corrupt geo cache entry", zap.String("ip", ip), zap.Error(err))
		return nil, false
	}
	return &loc, true
}

// Set stores loc with the given expiry
func (c *RedisGeoCache) Set(ctx context.Context, ip string, loc *geo.Location, ttl time.Duration) {
	if loc == nil {
		return
	}
	raw, err := json.Marshal(loc)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.keyPrefix+ip, raw, ttl).Err(); err != nil {
		c.logger.Warn("geo cache write failed", zap.String("ip", ip), zap.Error(err))
	}
}

var (
	_ geo.Cache = (*InMemoryGeoCache)(nil)
	_ geo.Cache = (*RedisGeoCache)(nil)
)
