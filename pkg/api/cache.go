package api

import (
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/travigo/gtfs-extract/pkg/redis_client"
)

// NewResultCache keeps serialized extractions in redis. Connect must have been called.
func NewResultCache(expiration time.Duration) *cache.Cache[string] {
	redisStore := redisstore.NewRedis(redis_client.Client, store.WithExpiration(expiration))

	return cache.New[string](redisStore)
}
