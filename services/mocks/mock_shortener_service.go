package mocks

import (
	"context"

	"go-slug-shortener/types"

	"github.com/stretchr/testify/mock"
)

// MockShortenerService is a mock ShortenerService interface
type MockShortenerService struct {
	mock.Mock
}

func (m *MockShortenerService) CreateShortLink(ctx context.Context, targetURL string) (types.Mapping, error) {
	args := m.Called(ctx, targetURL)
	return args.Get(0).(types.Mapping), args.Error(1)
}

func (m *MockShortenerService) GetMapping(ctx context.Context, slug string) (types.Mapping, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(types.Mapping), args.Error(1)
}
