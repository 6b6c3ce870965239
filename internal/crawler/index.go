package crawler

import (
	"sync"

	"github.com/BLUOMtech/BLUOMsearch/internal/storage"
)

// Index is the thread-safe map of already-crawled domains to their extracted
// metadata and accumulated authority
type Index struct {
	mu      sync.RWMutex
	entries map[string]storage.IndexEntry
}

// NewIndex creates an empty index
func NewIndex() *Index {
	return &Index{entries: make(map[string]storage.IndexEntry)}
}

// Put records a crawled domain. An entry is created exactly once, at the
// moment its page is successfully fetched and parsed.
func (idx *Index) Put(key string, entry storage.IndexEntry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.entries[key] = entry
}

// Bump increments the authority of an indexed domain.
// Returns false if the domain is not indexed.
func (idx *Index) Bump(key string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	entry, exists := idx.entries[key]
	if !exists {
		return false
	}
	entry.Authority++
	idx.entries[key] = entry
	return true
}

// Contains reports whether a domain has been crawled
func (idx *Index) Contains(key string) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	_, exists := idx.entries[key]
	return exists
}

// Get returns the entry for a domain
func (idx *Index) Get(key string) (storage.IndexEntry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	entry, exists := idx.entries[key]
	return entry, exists
}

// Len returns the number of indexed domains
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

// Entries returns a copy of all index records for persistence
func (idx *Index) Entries() []storage.IndexEntry {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	entries := make([]storage.IndexEntry, 0, len(idx.entries))
	for _, entry := range idx.entries {
		entries = append(entries, entry)
	}
	return entries
}
