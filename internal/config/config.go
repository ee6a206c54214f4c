// Package config provides configuration management for the collector.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	YouTube  YouTubeConfig
	Database DatabaseConfig
	Scrape   ScrapeConfig
	Metrics  MetricsConfig
	Logging  LoggingConfig
}

// YouTubeConfig contains Data API credentials and collection parameters.
type YouTubeConfig struct {
	APIKey          string
	ChannelID       string
	DailyQuotaLimit int
	BatchSize       int
}

// DatabaseConfig contains the connection settings for the snapshot store.
type DatabaseConfig struct {
	URL string
}

// ScrapeConfig contains parameters for the high-frequency scrape path.
type ScrapeConfig struct {
	DelayMin   time.Duration
	DelayMax   time.Duration
	MaxPerRun  int
	RecentDays int
}

// MetricsConfig contains the optional Pushgateway target for run metrics.
type MetricsConfig struct {
	PushgatewayURL string
	JobName        string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("YTSTATS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings every mode depends on. It runs before any
// network activity so misconfiguration exits without remote calls.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return errors.New("database.url is not set")
	}
	return nil
}

// ValidateYouTube checks the settings the Data API modes additionally need.
func (c *Config) ValidateYouTube() error {
	if c.YouTube.APIKey == "" {
		return errors.New("youtube.apikey is not set")
	}
	if c.YouTube.ChannelID == "" {
		return errors.New("youtube.channelid is not set")
	}
	return nil
}

func setDefaults() {
	// YouTube Data API. Credentials default to empty so the keys are
	// registered and env-only deployments reach Unmarshal.
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.channelid", "")
	viper.SetDefault("youtube.dailyquotalimit", 10000)
	viper.SetDefault("youtube.batchsize", 50) // videos.list accepts at most 50 ids

	// Database
	viper.SetDefault("database.url", "")

	// Scraping
	viper.SetDefault("scrape.delaymin", 3*time.Second)
	viper.SetDefault("scrape.delaymax", 5*time.Second)
	viper.SetDefault("scrape.maxperrun", 50)
	viper.SetDefault("scrape.recentdays", 7)

	// Metrics
	viper.SetDefault("metrics.pushgatewayurl", "")
	viper.SetDefault("metrics.jobname", "ytstats_collect")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}
