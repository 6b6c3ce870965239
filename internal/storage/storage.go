// Package storage persists the crawler's two durable collections: the index of
// crawled domains and the frontier of discovered domains awaiting a crawl.
package storage

// Store loads and persists the index and frontier collections between runs
type Store interface {
	// Load returns the persisted index records and frontier map. Missing or
	// corrupt state degrades to empty collections rather than failing the run.
	Load() ([]IndexEntry, map[string]FrontierEntry, error)

	// Persist writes both collections as the new durable snapshot. A failed
	// persist must leave the previous snapshot recoverable.
	Persist(index []IndexEntry, frontier map[string]FrontierEntry) error

	// Close releases any resources held by the store
	Close() error
}
