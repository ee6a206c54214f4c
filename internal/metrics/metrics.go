// Package metrics publishes per-run counters to a Prometheus Pushgateway,
// the serving path for short-lived batch jobs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Run collects the counters of one collection run on a private registry.
type Run struct {
	registry *prometheus.Registry
	pushURL  string
	job      string

	VideosFound      prometheus.Gauge
	NewVideos        prometheus.Gauge
	SnapshotsWritten prometheus.Gauge
	ScrapesFailed    prometheus.Gauge
	QuotaUsed        prometheus.Gauge
}

// NewRun creates run metrics targeting the given Pushgateway. An empty
// pushURL makes Push a no-op.
func NewRun(pushURL, job string) *Run {
	registry := prometheus.NewRegistry()

	r := &Run{
		registry: registry,
		pushURL:  pushURL,
		job:      job,
		VideosFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ytstats_videos_found",
			Help: "Videos enumerated from the uploads catalog this run.",
		}),
		NewVideos: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ytstats_videos_new",
			Help: "Videos first seen this run.",
		}),
		SnapshotsWritten: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ytstats_snapshots_written",
			Help: "Snapshot rows written this run.",
		}),
		ScrapesFailed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ytstats_scrapes_failed",
			Help: "Per-video scrape failures this run.",
		}),
		QuotaUsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "ytstats_quota_used",
			Help: "API quota units consumed this run.",
		}),
	}

	registry.MustRegister(r.VideosFound, r.NewVideos, r.SnapshotsWritten, r.ScrapesFailed, r.QuotaUsed)
	return r
}

// Push sends the run's metrics to the Pushgateway, if one is configured.
func (r *Run) Push() error {
	if r.pushURL == "" {
		return nil
	}
	return push.New(r.pushURL, r.job).Gatherer(r.registry).Push()
}
