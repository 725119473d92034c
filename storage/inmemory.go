package storage

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// InMemoryStorage implements the Store interface using an in-memory map.
type InMemoryStorage struct {
	slugs    map[string]string
	mu       sync.RWMutex
	capacity int
	logger   *zap.Logger
}

// Note: URL validation is performed above the storage layer; the store keeps
// whatever string it is given.

// NewInMemoryStorage creates and returns a new InMemoryStorage instance
func NewInMemoryStorage(capacity int, logger *zap.Logger) *InMemoryStorage {
	if capacity <= 0 {
		capacity = 1000 // Default capacity if an invalid value is provided
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryStorage{
		slugs:    make(map[string]string),
		capacity: capacity,
		logger:   logger,
	}
}

// Get retrieves the target URL for a given slug.
func (s *InMemoryStorage) Get(ctx context.Context, slug string) (string, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("Get operation cancelled", zap.String("slug", slug))
		return "", ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		if targetURL, exists := s.slugs[slug]; exists {
			return targetURL, nil
		}
		return "", ErrNotFound
	}
}

// PutIfAbsent adds a new slug mapping unless the slug is already taken.
func (s *InMemoryStorage) PutIfAbsent(ctx context.Context, slug, targetURL string) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("Put operation cancelled", zap.String("slug", slug))
		return ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.slugs[slug]; exists {
			s.logger.Warn("Attempt to overwrite existing slug", zap.String("slug", slug))
			return ErrSlugExists
		}
		if len(s.slugs) >= s.capacity {
			s.logger.Error("Storage capacity reached. Cannot store slug", zap.String("slug", slug))
			return ErrStorageCapacityReached
		}

		s.slugs[slug] = targetURL
		s.logger.Debug("Slug stored",
			zap.String("slug", slug),
			zap.String("targetURL", targetURL))
		return nil
	}
}

// Close is a no-op; the map is released with the storage value.
func (s *InMemoryStorage) Close() error {
	return nil
}
