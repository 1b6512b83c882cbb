package config

import (
	"os"

	"github.com/redis/go-redis/v9"
)

// InitRedis builds the client used by the HTTP rate limiter. The limiter
// fails open when redis is unreachable, so connection problems here are not
// fatal at startup.
func InitRedis() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
}
