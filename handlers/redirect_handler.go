package handlers

import (
	"context"
	"errors"
	"net/http"

	"go-slug-shortener/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RedirectSlug resolves a slug and redirects to its target URL.
// The stored URL is validated again before use so that bad legacy data
// never turns into an open redirect.
func (h *ShortenerHandler) RedirectSlug(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.config.RequestTimeout)
	defer cancel()

	slug := c.Param("slug")

	mapping, err := h.service.GetMapping(ctx, slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.logger.Debug("Slug not found", zap.String("slug", slug))
			c.JSON(http.StatusNotFound, urlNotFound)
			return
		}
		h.handleError(c, err)
		return
	}

	target, err := h.validator.Validate(mapping.TargetURL)
	if err != nil {
		h.logger.Warn("Stored URL failed validation",
			zap.String("slug", slug),
			zap.String("target_url", mapping.TargetURL),
			zap.Error(err),
		)
		c.JSON(http.StatusNotFound, urlNotFoundOrBad)
		return
	}

	h.logger.Info("Redirecting",
		zap.String("slug", slug),
		zap.String("target_url", target.String()),
		zap.String("ip", c.ClientIP()),
		zap.String("user_agent", c.Request.UserAgent()),
	)
	c.Redirect(http.StatusFound, target.String())
}
