package utils

import (
	"eventhub/config"
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// Redis returns the shared client, used for OTP storage with TTL and the
// notification pub/sub fan-out.
func Redis() *redis.Client {
	redisOnce.Do(func() {
		opts, err := redis.ParseURL(config.ConfigDefault("REDIS_URL", "redis://localhost:6379"))
		if err != nil {
			opts = &redis.Options{Addr: config.ConfigDefault("REDIS_ADDR", "localhost:6379")}
		}
		redisClient = redis.NewClient(opts)
	})
	return redisClient
}
