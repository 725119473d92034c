package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-slug-shortener/config"
	"go-slug-shortener/logging"
	"go-slug-shortener/server"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "shortener",
		Usage: "serve short links that redirect to long URLs",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (overrides SERVER_ADDRESS)"},
			&cli.StringFlag{Name: "host-url", Usage: "public base URL of short links (overrides HOST_URL)"},
			&cli.StringFlag{Name: "store", Usage: "store backend: memory, redis, sqlite or postgres (overrides STORE_BACKEND)"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error (overrides LOG_LEVEL)"},
		},
		Action: run,
	}
}

// loadConfig reads the environment and applies any flags the user passed.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if c.IsSet("addr") {
		cfg.ServerAddress = c.String("addr")
	}
	if c.IsSet("host-url") {
		cfg.HostURL = c.String("host-url")
	}
	if c.IsSet("store") {
		cfg.StoreBackend = c.String("store")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting URL Shortener application...",
		zap.String("address", cfg.ServerAddress),
		zap.String("store", cfg.StoreBackend),
	)
	if err := server.Run(ctx, logger, cfg); err != nil {
		logger.Error("Application error", zap.Error(err))
		return err
	}
	logger.Info("URL Shortener application stopped.")
	return nil
}
