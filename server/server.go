// Package server assembles the shortener and runs its HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go-slug-shortener/config"
	"go-slug-shortener/handlers"
	"go-slug-shortener/metrics"
	"go-slug-shortener/services"
	"go-slug-shortener/slug"
	"go-slug-shortener/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Run opens the configured store, serves HTTP on cfg.ServerAddress and shuts
// down gracefully once ctx is cancelled.
func Run(ctx context.Context, logger *zap.Logger, cfg *config.Config) error {
	store, err := storage.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open store", zap.String("backend", cfg.StoreBackend), zap.Error(err))
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}()

	m := metrics.New()
	router, err := NewRouter(ctx, cfg, store, m, logger)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.ServerAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ServerAddress, err)
	}

	srv := setupServer(cfg, router)
	errCh := make(chan error, 1)
	go startServer(srv, listener, logger, errCh)

	return waitForShutdown(ctx, srv, cfg, logger, errCh)
}

// NewRouter wires the service and handlers over store into a gin engine.
func NewRouter(ctx context.Context, cfg *config.Config, store storage.Store, m *metrics.Metrics, logger *zap.Logger) (*gin.Engine, error) {
	handler, err := setupShortenerHandler(ctx, cfg, store, m, logger)
	if err != nil {
		return nil, err
	}
	return setupRouter(handler, m, logger), nil
}

func setupShortenerHandler(ctx context.Context, cfg *config.Config, store storage.Store, m *metrics.Metrics, logger *zap.Logger) (handlers.ShortenerHandlerInterface, error) {
	handlerCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
	defer cancel()

	generator := slug.NewGenerator(cfg.SlugLength)
	service := services.NewShortenerService(store, generator, cfg.MaxSlugAttempts, m, logger)

	handler, err := handlers.NewShortenerHandler(handlerCtx, service, cfg, logger)
	if err != nil {
		logger.Error("Failed to create shortener handler", zap.Error(err))
		return nil, err
	}

	logger.Debug("Shortener handler created successfully", zap.Int("slug_length", generator.Length()))
	return handler, nil
}

func setupRouter(handler handlers.ShortenerHandlerInterface, m *metrics.Metrics, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	handlers.RegisterRoutes(router, handler, m, logger)
	return router
}

func setupServer(cfg *config.Config, router *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           router,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}
}

func startServer(srv *http.Server, listener net.Listener, logger *zap.Logger, errCh chan<- error) {
	logger.Info("Starting server", zap.String("address", listener.Addr().String()))
	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", zap.Error(err))
		errCh <- err
		return
	}
	logger.Debug("Server stopped")
}

func waitForShutdown(ctx context.Context, srv *http.Server, cfg *config.Config, logger *zap.Logger, errCh <-chan error) error {
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutdown requested. Initiating server shutdown...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return err
	}

	logger.Info("Server gracefully stopped")
	return nil
}
