package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// InitRedis initializes the Redis connection and basic configuration
func InitRedis(Addr string, DB int) (*RedisClient, error) {
	rc := NewRedisClient(Addr, DB)

	// Test connection
	if err := rc.client.Ping(rc.ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	log.Println("Successfully connected to Redis")
	return rc, nil
}

// CloseRedis gracefully closes the Redis connection
func CloseRedis(rc *RedisClient) error {
	if err := rc.client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %v", err)
	}
	return nil
}

// IncrementarJanela bumps a fixed-window counter (used by the rate limit
// middleware) and returns the count inside the current window.
func (rc *RedisClient) IncrementarJanela(chave string, janela time.Duration) (int64, error) {
	key := FormatRateLimitKey(chave)
	count, err := rc.client.Incr(rc.ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("error incrementing rate limit key %s: %v", key, err)
	}
	if count == 1 {
		if err := rc.client.Expire(rc.ctx, key, janela).Err(); err != nil {
			return count, fmt.Errorf("error setting TTL on rate limit key %s: %v", key, err)
		}
	}
	return count, nil
}

// SalvarRanking caches the serialized ranking payload.
// TTL: 1 minute
func (rc *RedisClient) SalvarRanking(nome string, dados interface{}) error {
	data, err := json.Marshal(dados)
	if err != nil {
		return fmt.Errorf("error marshaling ranking data: %v", err)
	}
	return rc.client.Set(rc.ctx, FormatRankingKey(nome), data, time.Minute).Err()
}

// ObterRanking reads a cached ranking payload into destino. Returns
// redis.Nil when the cache is cold.
func (rc *RedisClient) ObterRanking(nome string, destino interface{}) error {
	data, err := rc.client.Get(rc.ctx, FormatRankingKey(nome)).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, destino)
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
