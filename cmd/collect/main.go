// Command collect runs one timer-driven collection pass.
//
// Usage:
//
//	collect -mode daily    daily snapshot of every video via the Data API
//	collect -mode recent   high-frequency scrape of recent uploads
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"ytstats/internal/collector"
	"ytstats/internal/config"
	"ytstats/internal/db"
	"ytstats/internal/db/repository"
	"ytstats/internal/metrics"
	"ytstats/internal/scraper"
	"ytstats/internal/workflow"
	"ytstats/pkg/logger"
)

func main() {
	var mode string
	flag.StringVar(&mode, "mode", "", "collection mode: daily or recent (required)")
	flag.Parse()

	if mode != "daily" && mode != "recent" {
		fmt.Fprintln(os.Stderr, "collect: -mode must be 'daily' or 'recent'")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "collect: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "collect: init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck
	log := logger.Log

	if err := cfg.Validate(); err != nil {
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

	channels := repository.NewChannelRepository(pool)
	videos := repository.NewVideoMetadataRepository(pool)
	snapshots := repository.NewVideoSnapshotRepository(pool)
	scraped := repository.NewScrapedSnapshotRepository(pool)
	run := metrics.NewRun(cfg.Metrics.PushgatewayURL, cfg.Metrics.JobName)

	wcfg := workflow.Config{
		ChannelID:  cfg.YouTube.ChannelID,
		RecentDays: cfg.Scrape.RecentDays,
		ScrapeCap:  cfg.Scrape.MaxPerRun,
	}

	log.Info("collection starting", zap.String("mode", mode))

	switch mode {
	case "daily":
		if err := cfg.ValidateYouTube(); err != nil {
			log.Error("invalid configuration", zap.Error(err))
			os.Exit(1)
		}
		col, cerr := collector.New(ctx, cfg.YouTube.APIKey, cfg.YouTube.DailyQuotaLimit, cfg.YouTube.BatchSize, log)
		if cerr != nil {
			log.Error("failed to initialize YouTube client", zap.Error(cerr))
			os.Exit(1)
		}
		runner := workflow.NewRunner(col, channels, videos, snapshots, scraped, nil, run, wcfg, log)
		err = runner.Daily(ctx)

	case "recent":
		scr := scraper.New(cfg.Scrape.DelayMin, cfg.Scrape.DelayMax, log)
		runner := workflow.NewRunner(nil, channels, videos, snapshots, scraped, scr, run, wcfg, log)
		err = runner.Recent(ctx)
	}

	if err != nil {
		log.Error("collection failed", zap.String("mode", mode), zap.Error(err))
		os.Exit(1)
	}

	log.Info("collection finished", zap.String("mode", mode))
}
