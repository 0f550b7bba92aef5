package config

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	gocacheStore "github.com/eko/gocache/store/go_cache/v4"
	redisStore "github.com/eko/gocache/store/redis/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// RequestCountCache counts claim requests per client IP inside a rolling
// one hour window. It never holds offer or code state.
var RequestCountCache *cache.Cache[int64]

func initCache() {
	if Config.RedisUrl != "" {
		RequestCountCache = cache.New[int64](
			redisStore.NewRedis(
				redis.NewClient(
					&redis.Options{
						Addr: Config.RedisUrl,
					},
				),
			),
		)
		fmt.Println("using redis")
	} else {
		RequestCountCache = cache.New[int64](
			gocacheStore.NewGoCache(
				gocache.New(
					time.Hour,
					2*time.Hour),
			),
		)
		fmt.Println("using gocache")
	}
}

// IncrRequestCount bumps the counter for key and returns the new value.
func IncrRequestCount(key string) int64 {
	count, err := RequestCountCache.Get(context.Background(), key)
	if err != nil {
		count = 0
	}
	count++
	_ = RequestCountCache.Set(context.Background(), key, count, store.WithExpiration(time.Hour))
	return count
}

func ClearRequestCount() error {
	return RequestCountCache.Clear(context.Background())
}
