package initializers

import (
	"context"
	"log"
	"os"

	"github.com/redis/go-redis/v9"
)

// Cache is nil when REDIS_ADDR is unset; callers fall back to the
// database.
var Cache *redis.Client

func ConnectToCache() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, product cache disabled.")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Println("Redis unreachable, product cache disabled:", err)
		return
	}
	Cache = client
}
