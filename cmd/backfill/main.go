// Command backfill performs the one-time historical catch-up: it registers
// metadata for every video in the channel's catalog and records a first
// statistics snapshot. Takes no arguments.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"ytstats/internal/collector"
	"ytstats/internal/config"
	"ytstats/internal/db"
	"ytstats/internal/db/repository"
	"ytstats/internal/metrics"
	"ytstats/internal/workflow"
	"ytstats/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "backfill: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "backfill: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	log := logger.Log

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}
	if err := cfg.ValidateYouTube(); err != nil {
		log.Error("invalid configuration", zap.Error(err))
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Error("failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close(pool)

	col, err := collector.New(ctx, cfg.YouTube.APIKey, cfg.YouTube.DailyQuotaLimit, cfg.YouTube.BatchSize, log)
	if err != nil {
		log.Error("failed to initialize YouTube client", zap.Error(err))
		os.Exit(1)
	}

	runner := workflow.NewRunner(
		col,
		repository.NewChannelRepository(pool),
		repository.NewVideoMetadataRepository(pool),
		repository.NewVideoSnapshotRepository(pool),
		repository.NewScrapedSnapshotRepository(pool),
		nil,
		metrics.NewRun(cfg.Metrics.PushgatewayURL, cfg.Metrics.JobName),
		workflow.Config{ChannelID: cfg.YouTube.ChannelID},
		log,
	)

	if err := runner.Backfill(ctx); err != nil {
		log.Error("backfill failed", zap.Error(err))
		os.Exit(1)
	}

	log.Info("backfill finished")
}
