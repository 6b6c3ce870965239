package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Default seed list, used only when both persisted collections are empty
var defaultSeeds = []string{
	"https://www.wikipedia.org",
	"https://www.bbc.com",
	"https://www.nytimes.com",
	"https://www.theguardian.com",
	"https://www.reuters.com",
}

// Config holds all runtime configuration parameters
type Config struct {
	SeedURLs         []string `json:"seed_urls"`
	MaxCrawlsPerRun  int      `json:"max_crawls_per_run"`
	RequestTimeoutMs int      `json:"request_timeout_ms"`
	RateLimitDelayMs int      `json:"rate_limit_delay_ms"`
	UserAgent        string   `json:"user_agent"`
	StorageBackend   string   `json:"storage_backend"`
	IndexPath        string   `json:"index_path"`
	QueuePath        string   `json:"queue_path"`
	DBPath           string   `json:"db_path"`
	MetricsPath      string   `json:"metrics_path"`
}

// LoadConfig reads and validates configuration from a JSON file.
// A missing file yields the default configuration rather than an error.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	file, err := os.Open(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open config file: %w", err)
		}
	} else {
		defer file.Close()
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for unspecified fields
func applyDefaults(cfg *Config) {
	if len(cfg.SeedURLs) == 0 {
		cfg.SeedURLs = append([]string(nil), defaultSeeds...)
	}
	if cfg.MaxCrawlsPerRun == 0 {
		cfg.MaxCrawlsPerRun = 50
	}
	if cfg.RequestTimeoutMs == 0 {
		cfg.RequestTimeoutMs = 10000
	}
	if cfg.RateLimitDelayMs == 0 {
		cfg.RateLimitDelayMs = 1000
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "BLUOMSearchBot/2.0 (+https://github.com/bluom-search)"
	}
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = "json"
	}
	if cfg.IndexPath == "" {
		cfg.IndexPath = "index.json"
	}
	if cfg.QueuePath == "" {
		cfg.QueuePath = "queue.json"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "crawler.db"
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "metrics.json"
	}
}

// validate checks that required fields are present and values are sensible
func validate(cfg *Config) error {
	if cfg.MaxCrawlsPerRun < 1 {
		return fmt.Errorf("max_crawls_per_run must be >= 1")
	}
	if cfg.RequestTimeoutMs < 1000 {
		return fmt.Errorf("request_timeout_ms must be >= 1000")
	}
	if cfg.RateLimitDelayMs < 0 {
		return fmt.Errorf("rate_limit_delay_ms must be >= 0")
	}
	if cfg.StorageBackend != "json" && cfg.StorageBackend != "sqlite" {
		return fmt.Errorf("storage_backend must be \"json\" or \"sqlite\"")
	}
	return nil
}
