package cache

import (
	"github.com/mynet/sales/internal/application/geo"
	"github.com/mynet/sales/internal/domain/shared"
	"github.com/mynet/sales/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewGeoCache picks the configured geolocation cache backend. The redis
// backend falls back to memory when no client is available.
func NewGeoCache(cfg config.GeoConfig, client redis.UniversalClient, clock shared.Clock, logger *zap.Logger) geo.Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.CacheBackend == "redis" {
		if client != nil {
			logger.Info("using Redis geolocation cache")
			return NewRedisGeoCache(client, logger)
		}
		logger.Warn("Redis unavailable, falling back to in-memory geolocation cache")
	}
	return NewInMemoryGeoCache(clock)
}
