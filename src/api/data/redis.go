package data

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const chatRatePrefix = "chatrate:"

func MustRedis(url string) *redis.Client {
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	return redis.NewClient(opt)
}

// AllowChat enforces one chatbot request per user per window. The first
// caller inside a window wins; everyone else waits for the TTL. A redis
// outage fails open so chat keeps working without rate limiting.
func AllowChat(ctx context.Context, rdb *redis.Client, userID string, window time.Duration) bool {
	ok, err := rdb.SetNX(ctx, chatRatePrefix+userID, time.Now().Unix(), window).Result()
	if err != nil {
		log.Printf("redis rate limit error for %s: %v", userID, err)
		return true
	}
	return ok
}

// ChatRetryAfter reports how long until the user may chat again.
func ChatRetryAfter(ctx context.Context, rdb *redis.Client, userID string) time.Duration {
	ttl, err := rdb.TTL(ctx, chatRatePrefix+userID).Result()
	if err != nil || ttl < 0 {
		return 0
	}
	return ttl
}
