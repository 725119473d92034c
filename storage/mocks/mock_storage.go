package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock Store interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Get(ctx context.Context, slug string) (string, error) {
	args := m.Called(ctx, slug)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) PutIfAbsent(ctx context.Context, slug, targetURL string) error {
	args := m.Called(ctx, slug, targetURL)
	return args.Error(0)
}

func (m *MockStorage) Close() error {
	args := m.Called()
	return args.Error(0)
}
