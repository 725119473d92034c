package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisOptions configures the Redis connection.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStorage implements Store on Redis string keys. Each slug is its own key
// holding the target URL, with no expiry.
type RedisStorage struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStorage connects to Redis and verifies the connection with a PING.
func NewRedisStorage(ctx context.Context, opts RedisOptions, logger *zap.Logger) (*RedisStorage, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	logger.Info("Connected to redis", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return &RedisStorage{client: client, logger: logger}, nil
}

// Get returns the target URL stored under slug.
func (s *RedisStorage) Get(ctx context.Context, slug string) (string, error) {
	targetURL, err := s.client.Get(ctx, slug).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get: %w", err)
	}
	return targetURL, nil
}

// PutIfAbsent stores the mapping with SETNX so two writers can never both
// claim the same slug.
func (s *RedisStorage) PutIfAbsent(ctx context.Context, slug, targetURL string) error {
	stored, err := s.client.SetNX(ctx, slug, targetURL, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !stored {
		s.logger.Warn("Attempt to overwrite existing slug", zap.String("slug", slug))
		return ErrSlugExists
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}
