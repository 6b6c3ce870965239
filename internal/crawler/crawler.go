// Package crawler implements the frontier/index state machine: URL
// normalization, authority accumulation, priority-ordered frontier selection
// and the bounded per-run crawl loop.
package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/BLUOMtech/BLUOMsearch/internal/config"
	"github.com/BLUOMtech/BLUOMsearch/internal/metrics"
	"github.com/BLUOMtech/BLUOMsearch/internal/storage"
	"github.com/sirupsen/logrus"
)

// Truncation limits for extracted metadata
const (
	maxTitleLength       = 100
	maxDescriptionLength = 250
)

// CandidateOutcome is the explicit result of processing one frontier candidate
type CandidateOutcome int

const (
	// OutcomeSkipped means the candidate was already indexed and only removed
	// from the frontier; it does not consume budget
	OutcomeSkipped CandidateOutcome = iota
	// OutcomeCrawled means the candidate was fetched and indexed
	OutcomeCrawled
	// OutcomeFailed means the fetch or parse failed and the candidate was
	// dropped from the frontier
	OutcomeFailed
	// OutcomeCanceled means the run was interrupted before the candidate was
	// attempted; it stays in the frontier
	OutcomeCanceled
)

// Termination reasons reported in the run summary
const (
	ReasonFrontierExhausted = "frontier_exhausted"
	ReasonBudgetReached     = "budget_reached"
	ReasonCanceled          = "canceled"
)

// Summary reports the outcome of one bounded crawl run
type Summary struct {
	Crawled         int
	Failed          int
	Skipped         int
	LinksDiscovered int
	IndexSize       int
	FrontierSize    int
	Reason          string
}

// Crawler orchestrates one bounded crawl run over the persisted index and
// frontier collections
type Crawler struct {
	cfg     *config.Config
	store   storage.Store
	fetcher Fetcher
	tracker *metrics.Tracker
}

// NewCrawler creates a crawler instance; tracker may be nil
func NewCrawler(cfg *config.Config, store storage.Store, fetcher Fetcher, tracker *metrics.Tracker) *Crawler {
	return &Crawler{
		cfg:     cfg,
		store:   store,
		fetcher: fetcher,
		tracker: tracker,
	}
}

// Run executes one crawl run: load state, seed if empty, crawl frontier
// candidates in authority order up to the per-run budget, merge discovered
// links and persist the final snapshot. Per-candidate failures never abort the
// run; a failed persist does.
func (c *Crawler) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	rawIndex, rawFrontier, err := c.store.Load()
	if err != nil {
		return summary, fmt.Errorf("failed to load state: %w", err)
	}

	index := buildIndex(rawIndex)
	frontier := NewFrontier(rawFrontier)

	// Seed the frontier only on a completely fresh start, so an empty or
	// missing persisted frontier never stalls the crawler permanently
	if index.Len() == 0 && frontier.Len() == 0 {
		c.seed(frontier)
	}

	candidates := frontier.Sorted()
	logrus.Infof("Starting incremental crawl. Queue size: %d", frontier.Len())

	attempts := 0
	summary.Reason = ReasonFrontierExhausted

	for _, candidate := range candidates {
		if attempts >= c.cfg.MaxCrawlsPerRun {
			summary.Reason = ReasonBudgetReached
			break
		}
		if ctx.Err() != nil {
			summary.Reason = ReasonCanceled
			break
		}

		outcome := c.processCandidate(ctx, candidate, index, frontier, attempts, &summary)
		switch outcome {
		case OutcomeSkipped:
			summary.Skipped++
			if c.tracker != nil {
				c.tracker.IncrementDomainsSkipped()
			}
		case OutcomeCrawled:
			attempts++
			summary.Crawled++
			if c.tracker != nil {
				c.tracker.IncrementDomainsCrawled()
			}
		case OutcomeFailed:
			attempts++
			summary.Failed++
			if c.tracker != nil {
				c.tracker.IncrementDomainsFailed()
			}
		case OutcomeCanceled:
			summary.Reason = ReasonCanceled
		}
		if outcome == OutcomeCanceled {
			break
		}
	}

	if err := c.store.Persist(index.Entries(), frontier.Snapshot()); err != nil {
		return summary, fmt.Errorf("failed to persist crawl state: %w", err)
	}

	summary.IndexSize = index.Len()
	summary.FrontierSize = frontier.Len()
	return summary, nil
}

// buildIndex converts persisted index records into the normalized-key mapping.
// Records whose URL no longer normalizes are dropped.
func buildIndex(records []storage.IndexEntry) *Index {
	index := NewIndex()
	for _, record := range records {
		key, err := Normalize(record.URL, "")
		if err != nil {
			logrus.Warnf("Dropping index record with unusable URL %q: %v", record.URL, err)
			continue
		}
		record.URL = key
		index.Put(key, record)
	}
	return index
}

// seed initializes the frontier from the configured seed URLs
func (c *Crawler) seed(frontier *Frontier) {
	for _, seed := range c.cfg.SeedURLs {
		key, err := Normalize(seed, "")
		if err != nil {
			logrus.Warnf("Skipping unusable seed URL %q: %v", seed, err)
			continue
		}
		frontier.Add(key)
	}
	logrus.Infof("Frontier seeded with %d domains", frontier.Len())
}

// processCandidate handles one frontier candidate: skip if already indexed,
// otherwise rate-limit, fetch once, and on success index the page and merge
// its outbound links. Failed candidates are dropped, not requeued.
func (c *Crawler) processCandidate(ctx context.Context, candidate Candidate, index *Index, frontier *Frontier, attempts int, summary *Summary) CandidateOutcome {
	if index.Contains(candidate.Key) {
		// Authority was already merged into the index entry
		frontier.Remove(candidate.Key)
		return OutcomeSkipped
	}

	// Courteous rate limiting toward external servers
	if err := c.pause(ctx); err != nil {
		return OutcomeCanceled
	}

	logrus.Infof("[%d/%d] Crawling: %s", attempts+1, c.cfg.MaxCrawlsPerRun, candidate.Key)

	page, err := c.fetcher.Fetch(ctx, candidate.Key)
	if err != nil {
		if ctx.Err() != nil {
			return OutcomeCanceled
		}
		logrus.Errorf("Error crawling %s: %v", candidate.Key, err)
		frontier.Remove(candidate.Key)
		return OutcomeFailed
	}

	title := page.Title
	if title == "" {
		title = candidate.Key
	}

	index.Put(candidate.Key, storage.IndexEntry{
		URL:         candidate.Key,
		Title:       truncate(title, maxTitleLength),
		Description: truncate(page.Description, maxDescriptionLength),
		Authority:   frontier.Authority(candidate.Key),
	})
	frontier.Remove(candidate.Key)

	discovered := c.mergeLinks(candidate.Key, page.Links, index, frontier)
	summary.LinksDiscovered += discovered
	if c.tracker != nil {
		c.tracker.AddLinksDiscovered(discovered)
	}

	return OutcomeCrawled
}

// mergeLinks folds a crawled page's outbound links into the index and
// frontier: an already-indexed target gets an authority bump, a queued target
// gets a bump, anything else becomes a new frontier entry. Repeated links to
// the same target each count as a separate reference. Returns the number of
// newly discovered domains.
func (c *Crawler) mergeLinks(sourceKey string, links []string, index *Index, frontier *Frontier) int {
	discovered := 0
	for _, link := range links {
		target, err := Normalize(link, sourceKey)
		if err != nil {
			continue
		}
		if target == sourceKey {
			continue
		}

		if index.Bump(target) {
			continue
		}
		if frontier.Bump(target) {
			continue
		}
		frontier.Add(target)
		discovered++
	}
	return discovered
}

// pause applies the configured inter-fetch delay, honoring cancellation
func (c *Crawler) pause(ctx context.Context) error {
	delay := time.Duration(c.cfg.RateLimitDelayMs) * time.Millisecond
	if delay <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// truncate bounds a metadata string to max characters, never splitting a rune
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max])
	}
	return s
}
