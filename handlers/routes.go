package handlers

import (
	"go-slug-shortener/metrics"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RegisterRoutes sets up the middleware chain and all routes of the shortener.
// The operational paths are longer than any slug, so they never shadow one.
func RegisterRoutes(r *gin.Engine, handler ShortenerHandlerInterface, m *metrics.Metrics, logger *zap.Logger) {
	r.Use(
		RequestIDMiddleware(),
		CORSMiddleware(),
		RequestLoggerMiddleware(logger),
		MetricsMiddleware(m),
	)

	r.GET("/", handler.ServeForm)
	r.POST("/", handler.CreateShortLink)

	r.GET("/healthz", handler.HealthCheck)
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	r.GET("/:slug", handler.RedirectSlug)
}
