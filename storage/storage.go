// Package storage provides the mapping store interface, its backends, and
// common errors for slug storage operations.
package storage

import (
	"context"
	"errors"
)

// Common errors returned by storage operations.
var (
	ErrNotFound               = errors.New("slug not found")
	ErrSlugExists             = errors.New("slug already exists")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
)

// Store is a key-value store of slug to target URL mappings.
type Store interface {
	// Get returns the target URL stored under slug, or ErrNotFound.
	Get(ctx context.Context, slug string) (string, error)

	// PutIfAbsent stores targetURL under slug unless the slug is already
	// taken, in which case it returns ErrSlugExists and leaves the existing
	// mapping untouched.
	PutIfAbsent(ctx context.Context, slug, targetURL string) error

	// Close releases the backend's resources.
	Close() error
}
