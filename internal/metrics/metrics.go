package metrics

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/BLUOMtech/BLUOMsearch/internal/storage"
)

// Tracker holds and manages crawl run metrics
type Tracker struct {
	mu   sync.Mutex
	data storage.RunMetrics
}

// NewTracker creates a new metrics tracker
func NewTracker() *Tracker {
	return &Tracker{
		data: storage.RunMetrics{
			StartTime: time.Now(),
		},
	}
}

// IncrementDomainsCrawled increments the successfully crawled counter
func (t *Tracker) IncrementDomainsCrawled() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.DomainsCrawled++
}

// IncrementDomainsFailed increments the failed fetch counter
func (t *Tracker) IncrementDomainsFailed() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.DomainsFailed++
}

// IncrementDomainsSkipped increments the already-indexed skip counter
func (t *Tracker) IncrementDomainsSkipped() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.DomainsSkipped++
}

// AddLinksDiscovered adds newly discovered domains to the discovery counter
func (t *Tracker) AddLinksDiscovered(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.LinksDiscovered += n
}

// SetCollectionSizes records the final index and frontier sizes
func (t *Tracker) SetCollectionSizes(indexSize, frontierSize int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data.IndexSize = indexSize
	t.data.FrontierSize = frontierSize
}

// GetSnapshot returns a copy of current metrics
func (t *Tracker) GetSnapshot() storage.RunMetrics {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.data
}

// WriteToFile exports metrics to a JSON file
func (t *Tracker) WriteToFile(path, reason string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Finalize metrics
	t.data.EndTime = time.Now()
	t.data.TerminationReason = reason

	// Marshal to JSON
	jsonData, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}

	// Write to file
	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}

	return nil
}

// LogProgress prints current metrics to console (for the terminal summary)
func (t *Tracker) LogProgress() string {
	t.mu.Lock()
	defer t.mu.Unlock()

	return fmt.Sprintf("Domains: %d crawled, %d failed, %d skipped | Discovered: %d | Index: %d | Frontier: %d",
		t.data.DomainsCrawled,
		t.data.DomainsFailed,
		t.data.DomainsSkipped,
		t.data.LinksDiscovered,
		t.data.IndexSize,
		t.data.FrontierSize,
	)
}
