package storage

import (
	"context"
	"fmt"

	"go-slug-shortener/config"

	"go.uber.org/zap"
)

// New opens the store backend selected by cfg.StoreBackend.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.StoreBackend {
	case config.BackendMemory, "":
		return NewInMemoryStorage(cfg.MemoryCapacity, logger), nil
	case config.BackendRedis:
		store, err := NewRedisStorage(ctx, RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendSQLite:
		store, err := NewSQLiteStorage(ctx, cfg.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendPostgres:
		store, err := NewPostgresStorage(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
