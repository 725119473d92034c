package services

import (
	"context"
	"errors"
	"fmt"

	"go-slug-shortener/metrics"
	"go-slug-shortener/storage"
	"go-slug-shortener/types"

	"go.uber.org/zap"
)

func handleStorageError(err error) error {
	switch {
	case errors.Is(err, storage.ErrStorageCapacityReached):
		return ErrStorageCapacityReached
	case errors.Is(err, storage.ErrNotFound):
		return ErrNotFound
	default:
		return err
	}
}

var (
	ErrSlugSpaceExhausted     = errors.New("no free slug found within the attempt limit")
	ErrStorageCapacityReached = errors.New("storage capacity reached")
	ErrNotFound               = errors.New("short link not found")
)

// SlugGenerator produces random slug candidates.
type SlugGenerator interface {
	Generate() (string, error)
}

type ShortenerService interface {
	CreateShortLink(ctx context.Context, targetURL string) (types.Mapping, error)
	GetMapping(ctx context.Context, slug string) (types.Mapping, error)
}

type shortenerService struct {
	store       storage.Store
	generator   SlugGenerator
	maxAttempts int
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewShortenerService wires a service over store. maxAttempts below one is
// treated as one; metrics and logger may be nil.
func NewShortenerService(store storage.Store, generator SlugGenerator, maxAttempts int, m *metrics.Metrics, logger *zap.Logger) ShortenerService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &shortenerService{
		store:       store,
		generator:   generator,
		maxAttempts: maxAttempts,
		metrics:     m,
		logger:      logger,
	}
}

// CreateShortLink stores targetURL under a fresh slug. targetURL must
// already be validated.
func (s *shortenerService) CreateShortLink(ctx context.Context, targetURL string) (types.Mapping, error) {
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		slug, err := s.generator.Generate()
		if err != nil {
			return types.Mapping{}, fmt.Errorf("generate slug: %w", err)
		}

		_, err = s.store.Get(ctx, slug)
		if err == nil {
			s.collision(slug, attempt)
			continue
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return types.Mapping{}, handleStorageError(err)
		}

		err = s.store.PutIfAbsent(ctx, slug, targetURL)
		if errors.Is(err, storage.ErrSlugExists) {
			// Another request claimed the slug between the probe and the write.
			s.collision(slug, attempt)
			continue
		}
		if err != nil {
			return types.Mapping{}, handleStorageError(err)
		}

		s.metrics.IncLinksCreated()
		s.logger.Info("Short link created", zap.String("slug", slug), zap.Int("attempts", attempt))
		return types.Mapping{Slug: slug, TargetURL: targetURL}, nil
	}

	s.logger.Error("Slug allocation exhausted", zap.Int("max_attempts", s.maxAttempts))
	return types.Mapping{}, ErrSlugSpaceExhausted
}

func (s *shortenerService) collision(slug string, attempt int) {
	s.metrics.IncSlugCollisions()
	s.logger.Debug("Slug collision", zap.String("slug", slug), zap.Int("attempt", attempt))
}

func (s *shortenerService) GetMapping(ctx context.Context, slug string) (types.Mapping, error) {
	targetURL, err := s.store.Get(ctx, slug)
	if err != nil {
		return types.Mapping{}, handleStorageError(err)
	}
	return types.Mapping{Slug: slug, TargetURL: targetURL}, nil
}
