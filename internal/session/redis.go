package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"symptom-checker/internal/config"
	"symptom-checker/pkg"
)

const redisKeyPrefix = "symptoms:session:"

// RedisStore keeps pending outcomes as JSON strings with the session TTL.
type RedisStore struct {
	Client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed store.
func NewRedis(cfg config.RedisConfig, ttl time.Duration) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	return NewRedisStore(rdb, ttl)
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{Client: client, ttl: ttl}
}

// Ping tests the Redis connection.
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	if s.Client != nil {
		return s.Client.Close()
	}
	return nil
}

func (s *RedisStore) Put(ctx context.Context, sessionID string, outcome pkg.Outcome) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("encode outcome: %w", err)
	}
	return s.Client.Set(ctx, redisKeyPrefix+sessionID, data, s.ttl).Err()
}

func (s *RedisStore) TakeAndClear(ctx context.Context, sessionID string) (pkg.Outcome, bool, error) {
	data, err := s.Client.GetDel(ctx, redisKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return pkg.Outcome{}, false, nil
	}
	if err != nil {
		return pkg.Outcome{}, false, err
	}
	var outcome pkg.Outcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return pkg.Outcome{}, false, fmt.Errorf("decode outcome: %w", err)
	}
	return outcome, true, nil
}
