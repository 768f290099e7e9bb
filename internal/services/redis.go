package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// RevokeToken marks a token id as logged out until its natural expiry
func RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if RedisClient == nil {
		return nil
	}
	key := fmt.Sprintf("session:revoked:%s", jti)
	return RedisClient.Set(ctx, key, "1", ttl).Err()
}

// IsTokenRevoked reports whether a token id has been logged out
func IsTokenRevoked(ctx context.Context, jti string) bool {
	if RedisClient == nil {
		return false
	}
	key := fmt.Sprintf("session:revoked:%s", jti)
	n, err := RedisClient.Exists(ctx, key).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// CacheBookingStatus stores the latest booking status for quick dashboard reads
func CacheBookingStatus(ctx context.Context, bookingID uint, status string) error {
	if RedisClient == nil {
		return nil
	}
	key := fmt.Sprintf("booking:status:%d", bookingID)
	return RedisClient.Set(ctx, key, status, time.Hour).Err()
}

// GetCachedBookingStatus retrieves a cached booking status
func GetCachedBookingStatus(ctx context.Context, bookingID uint) (string, error) {
	if RedisClient == nil {
		return "", redis.Nil
	}
	key := fmt.Sprintf("booking:status:%d", bookingID)
	return RedisClient.Get(ctx, key).Result()
}

// PublishBookingUpdate publishes a booking lifecycle event to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, bookingID uint, status string, data map[string]interface{}) error {
	if RedisClient == nil {
		return nil
	}

	updateData := map[string]interface{}{
		"bookingId": bookingID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "booking:updates", jsonData).Err()
}
