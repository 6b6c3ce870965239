package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BLUOMtech/BLUOMsearch/internal/config"
	"github.com/BLUOMtech/BLUOMsearch/internal/crawler"
	"github.com/BLUOMtech/BLUOMsearch/internal/metrics"
	"github.com/BLUOMtech/BLUOMsearch/internal/storage"
	"github.com/BLUOMtech/BLUOMsearch/internal/version"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.json", "path to configuration file")
	flag.Parse()

	// Configure logging
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	logrus.Infof("BLUOMsearch crawler v%s starting...", version.Version)

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	logrus.Infof("Configuration loaded: backend=%s, budget=%d, seeds=%d",
		cfg.StorageBackend, cfg.MaxCrawlsPerRun, len(cfg.SeedURLs))

	// Initialize storage
	store, err := newStore(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize storage: %v", err)
	}
	defer store.Close()

	// Initialize fetcher and metrics tracker
	fetcher := crawler.NewCollyFetcher(cfg.UserAgent, time.Duration(cfg.RequestTimeoutMs)*time.Millisecond)
	tracker := metrics.NewTracker()

	c := crawler.NewCrawler(cfg, store, fetcher, tracker)

	// Cancel the run between candidates on SIGINT/SIGTERM; state is still
	// persisted before exit
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	summary, runErr := c.Run(ctx)

	tracker.SetCollectionSizes(summary.IndexSize, summary.FrontierSize)
	logrus.Info("Final stats: " + tracker.LogProgress())

	// Write metrics to file (best effort)
	if err := tracker.WriteToFile(cfg.MetricsPath, summary.Reason); err != nil {
		logrus.Errorf("Failed to write metrics: %v", err)
	} else {
		logrus.Infof("Metrics written to %s", cfg.MetricsPath)
	}

	if runErr != nil {
		logrus.Errorf("Crawl run failed: %v", runErr)
		// os.Exit skips the deferred Close; release the store first
		if err := store.Close(); err != nil {
			logrus.Errorf("Failed to close storage: %v", err)
		}
		os.Exit(1)
	}

	logrus.Infof("Run complete. Index: %d sites. Queue: %d sites.",
		summary.IndexSize, summary.FrontierSize)
}

// newStore builds the configured state store backend
func newStore(cfg *config.Config) (storage.Store, error) {
	if cfg.StorageBackend == "sqlite" {
		return storage.NewSQLiteStore(cfg.DBPath)
	}
	return storage.NewJSONStore(cfg.IndexPath, cfg.QueuePath), nil
}
