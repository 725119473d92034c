package mocks

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockShortenerHandler is a mock implementation of ShortenerHandlerInterface
type MockShortenerHandler struct {
	mock.Mock
}

func (m *MockShortenerHandler) CreateShortLink(c *gin.Context) {
	m.Called(c)
}

func (m *MockShortenerHandler) RedirectSlug(c *gin.Context) {
	m.Called(c)
}

func (m *MockShortenerHandler) ServeForm(c *gin.Context) {
	m.Called(c)
}

func (m *MockShortenerHandler) HealthCheck(c *gin.Context) {
	m.Called(c)
}
