// Package scraper fetches best-effort live counters for single videos
// through yt-dlp, the opaque third-party extractor.
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"os/exec"
	"time"

	"go.uber.org/zap"

	"ytstats/internal/db/models"
)

// ErrNoViewCount is returned when the extractor result carries no view
// count. A reading without views is treated as a failed scrape.
var ErrNoViewCount = errors.New("view count unavailable")

// CmdRunner abstracts subprocess execution so scrapes test hermetically.
type CmdRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// ytDlpInfo is the subset of yt-dlp's dump-json output the scraper reads.
type ytDlpInfo struct {
	ViewCount *int64 `json:"view_count"`
	LikeCount *int64 `json:"like_count"`
}

// Scraper rate-limits extractor calls with a randomized delay between
// consecutive fetches. It holds no state beyond the in-run call count.
type Scraper struct {
	runner    CmdRunner
	logger    *zap.Logger
	delayMin  time.Duration
	delayMax  time.Duration
	callCount int
	sleep     func(time.Duration)
}

// New creates a Scraper shelling out to yt-dlp.
func New(delayMin, delayMax time.Duration, logger *zap.Logger) *Scraper {
	return newScraper(execRunner{}, delayMin, delayMax, logger)
}

func newScraper(runner CmdRunner, delayMin, delayMax time.Duration, logger *zap.Logger) *Scraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scraper{
		runner:   runner,
		logger:   logger,
		delayMin: delayMin,
		delayMax: delayMax,
		sleep:    time.Sleep,
	}
}

// LiveStats fetches current counters for one video. Every call after the
// first waits a random delay within the configured bounds first.
func (s *Scraper) LiveStats(ctx context.Context, videoID string) (*models.ScrapedSnapshot, error) {
	if s.callCount > 0 {
		s.sleep(s.randomDelay())
	}
	s.callCount++

	url := "https://www.youtube.com/watch?v=" + videoID
	output, err := s.runner.Run(ctx, "yt-dlp",
		"--dump-json",
		"--no-warnings",
		"--skip-download",
		url,
	)
	if err != nil {
		return nil, fmt.Errorf("yt-dlp %s: %w", videoID, err)
	}

	var info ytDlpInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("parse yt-dlp output for %s: %w", videoID, err)
	}

	if info.ViewCount == nil {
		return nil, fmt.Errorf("%s: %w", videoID, ErrNoViewCount)
	}

	return models.NewScrapedSnapshot(videoID, *info.ViewCount, info.LikeCount, time.Now()), nil
}

func (s *Scraper) randomDelay() time.Duration {
	if s.delayMax <= s.delayMin {
		return s.delayMin
	}
	return s.delayMin + time.Duration(rand.Int63n(int64(s.delayMax-s.delayMin)))
}
