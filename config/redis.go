package config

import (
	"context"
	"log"
	"os"
	"sync"

	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
)

// InitRedis connects to the response cache. Returns nil when REDIS_ADD is
// unset; handlers treat a nil client as caching disabled.
func InitRedis() *redis.Client {
	if os.Getenv("REDIS_ADD") == "" {
		log.Println("REDIS_ADD not set, property cache disabled")
		return nil
	}
	redisOnce.Do(func() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     os.Getenv("REDIS_ADD"),
			Password: os.Getenv("REDIS_PASS"),
			DB:       0,
		})

		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Connected to Redis")
	})
	return redisClient
}
