// Package handlers provides HTTP request handlers for the URL shortener service.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go-slug-shortener/config"
	"go-slug-shortener/services"
	"go-slug-shortener/types"
	"go-slug-shortener/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	invalidURL          = "Invalid URL"
	invalidURLProtocol  = "Invalid URL protocol"
	errorTimeout        = "Request timed out"
	storageCapacityFull = "Storage capacity reached"
	slugSpaceExhausted  = "Unable to allocate short link"
	internalServerError = "Internal server error"
	urlNotFound         = "URL not found"
	urlNotFoundOrBad    = "URL not found or invalid"
)

// ShortenerHandlerInterface defines the methods that a shortener handler should implement.
type ShortenerHandlerInterface interface {
	CreateShortLink(c *gin.Context)
	RedirectSlug(c *gin.Context)
	ServeForm(c *gin.Context)
	HealthCheck(c *gin.Context)
}

// ShortenerHandler holds the dependencies for the HTTP endpoints.
type ShortenerHandler struct {
	service   services.ShortenerService
	validator *validation.URLValidator
	config    *config.Config
	logger    *zap.Logger
}

// NewShortenerHandler creates and returns a new ShortenerHandler.
// It fails if any dependency is missing or ctx is already done.
func NewShortenerHandler(ctx context.Context, service services.ShortenerService, cfg *config.Config, logger *zap.Logger) (ShortenerHandlerInterface, error) {
	if service == nil {
		return nil, errors.New("service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	handler := &ShortenerHandler{
		service:   service,
		validator: validation.New(),
		config:    cfg,
		logger:    logger,
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	return handler, nil
}

// handleError maps a service error to a status code and JSON error body.
func (h *ShortenerHandler) handleError(c *gin.Context, err error) {
	var statusCode int
	var errorMessage string

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		statusCode = http.StatusRequestTimeout
		errorMessage = errorTimeout
	case errors.Is(err, services.ErrSlugSpaceExhausted):
		statusCode = http.StatusServiceUnavailable
		errorMessage = slugSpaceExhausted
	case errors.Is(err, services.ErrStorageCapacityReached):
		statusCode = http.StatusInsufficientStorage
		errorMessage = storageCapacityFull
	default:
		h.logger.Error("Unexpected error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errorMessage = internalServerError
	}

	c.JSON(statusCode, types.ErrorResponse{Error: errorMessage})
}

// CreateShortLink validates the submitted URL, allocates a slug for it and
// responds with the full short link.
func (h *ShortenerHandler) CreateShortLink(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	var input types.ShortenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Debug("Error decoding request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: invalidURL})
		return
	}

	target, err := h.validator.Validate(input.URL)
	if err != nil {
		h.logger.Debug("Rejected URL", zap.String("url", input.URL), zap.Error(err))
		message := invalidURL
		if errors.Is(err, validation.ErrInvalidProtocol) {
			message = invalidURLProtocol
		}
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: message})
		return
	}

	mapping, err := h.service.CreateShortLink(ctx, target.String())
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.ShortenResponse{URL: h.baseURL(c) + "/" + mapping.Slug})
}

// baseURL is the configured public host, or the one the request came in on.
func (h *ShortenerHandler) baseURL(c *gin.Context) string {
	if h.config.HostURL != "" {
		return strings.TrimRight(h.config.HostURL, "/")
	}

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return scheme + "://" + c.Request.Host
}
