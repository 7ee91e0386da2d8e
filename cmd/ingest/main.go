package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/finrefdata/secsync/internal/api"
	"github.com/finrefdata/secsync/internal/config"
	"github.com/finrefdata/secsync/internal/database"
	"github.com/finrefdata/secsync/internal/ingest"
	"github.com/finrefdata/secsync/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/ingest.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting ingest",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create API client
	client := api.NewClient(
		cfg.API.BaseURL,
		cfg.API.Token,
		api.WithLogger(logger),
		api.WithTimeout(cfg.API.Timeout),
		api.WithRetries(cfg.API.MaxRetries, cfg.API.RetryDelay),
	)

	// Only run after a trading day: yesterday must be the most recent
	// completed session.
	yesterday := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)

	lastTradingDay, err := client.GetLastTradingDay(ctx)
	if err != nil {
		logger.Error("failed to fetch trading calendar", "error", err)
		os.Exit(1)
	}
	if !lastTradingDay.Equal(yesterday) {
		logger.Info("yesterday was not a trading day, nothing to do",
			"yesterday", yesterday.Format("2006-01-02"),
			"last_trading_day", lastTradingDay.Format("2006-01-02"),
		)
		return
	}

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	pipeline := ingest.NewPipeline(cfg.Ingest, pool, client, logger)

	if err := pipeline.Run(ctx, yesterday); err != nil {
		logger.Error("ingestion run failed", "error", err)
		os.Exit(1)
	}
}
