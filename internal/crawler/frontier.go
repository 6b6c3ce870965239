package crawler

import (
	"sort"
	"sync"

	"github.com/BLUOMtech/BLUOMsearch/internal/storage"
)

// Candidate is a frontier entry selected for crawling
type Candidate struct {
	Key       string
	Authority int
}

// Frontier is the thread-safe set of discovered, not-yet-crawled domains,
// keyed by domain and ranked by accumulated inbound link authority
type Frontier struct {
	mu      sync.RWMutex
	entries map[string]storage.FrontierEntry
}

// NewFrontier creates a frontier from a persisted snapshot; a nil snapshot
// yields an empty frontier
func NewFrontier(entries map[string]storage.FrontierEntry) *Frontier {
	if entries == nil {
		entries = make(map[string]storage.FrontierEntry)
	}
	return &Frontier{entries: entries}
}

// Add inserts a newly discovered domain with authority 1.
// Returns false if the domain is already tracked.
func (f *Frontier) Add(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.entries[key]; exists {
		return false
	}
	f.entries[key] = storage.FrontierEntry{Authority: 1}
	return true
}

// Bump increments the authority of a tracked domain.
// Returns false if the domain is not in the frontier.
func (f *Frontier) Bump(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	entry, exists := f.entries[key]
	if !exists {
		return false
	}
	entry.Authority++
	f.entries[key] = entry
	return true
}

// Remove deletes a domain from the frontier
func (f *Frontier) Remove(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, key)
}

// Contains reports whether a domain is in the frontier
func (f *Frontier) Contains(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.entries[key]
	return exists
}

// Authority returns the current authority for a domain, or 0 if untracked
func (f *Frontier) Authority(key string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.entries[key].Authority
}

// Len returns the number of domains awaiting a crawl
func (f *Frontier) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.entries)
}

// Sorted returns all candidates ordered by authority descending. Higher
// authority domains are crawled first; ties have no specified order.
func (f *Frontier) Sorted() []Candidate {
	f.mu.RLock()
	defer f.mu.RUnlock()

	candidates := make([]Candidate, 0, len(f.entries))
	for key, entry := range f.entries {
		candidates = append(candidates, Candidate{Key: key, Authority: entry.Authority})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Authority > candidates[j].Authority
	})

	return candidates
}

// Snapshot returns a copy of the frontier for persistence
func (f *Frontier) Snapshot() map[string]storage.FrontierEntry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	snapshot := make(map[string]storage.FrontierEntry, len(f.entries))
	for key, entry := range f.entries {
		snapshot[key] = entry
	}
	return snapshot
}
