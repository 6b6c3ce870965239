package storage

import "time"

// IndexEntry is one crawled domain with its extracted metadata
type IndexEntry struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Authority   int    `json:"authority"`
}

// FrontierEntry is one discovered-but-uncrawled domain awaiting a crawl attempt
type FrontierEntry struct {
	Authority int `json:"authority"`
}

// RunMetrics tracks crawl statistics for export on exit
type RunMetrics struct {
	StartTime         time.Time `json:"start_time"`
	EndTime           time.Time `json:"end_time"`
	DomainsCrawled    int       `json:"domains_crawled"`
	DomainsFailed     int       `json:"domains_failed"`
	DomainsSkipped    int       `json:"domains_skipped"`
	LinksDiscovered   int       `json:"links_discovered"`
	IndexSize         int       `json:"index_size"`
	FrontierSize      int       `json:"frontier_size"`
	TerminationReason string    `json:"termination_reason"`
}
