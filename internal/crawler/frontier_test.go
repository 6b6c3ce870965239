package crawler

import (
	"testing"

	"github.com/BLUOMtech/BLUOMsearch/internal/storage"
	"github.com/stretchr/testify/require"
)

func TestFrontierAddAndBump(t *testing.T) {
	t.Parallel()

	f := NewFrontier(nil)

	require.True(t, f.Add("https://example.com/"))
	require.Equal(t, 1, f.Authority("https://example.com/"))

	// A second Add is a no-op; discovery increments go through Bump
	require.False(t, f.Add("https://example.com/"))
	require.Equal(t, 1, f.Authority("https://example.com/"))

	require.True(t, f.Bump("https://example.com/"))
	require.Equal(t, 2, f.Authority("https://example.com/"))

	require.False(t, f.Bump("https://unknown.org/"))
}

func TestFrontierRemove(t *testing.T) {
	t.Parallel()

	f := NewFrontier(map[string]storage.FrontierEntry{
		"https://example.com/": {Authority: 3},
	})

	require.True(t, f.Contains("https://example.com/"))
	f.Remove("https://example.com/")
	require.False(t, f.Contains("https://example.com/"))
	require.Equal(t, 0, f.Len())
}

func TestFrontierSortedByAuthorityDescending(t *testing.T) {
	t.Parallel()

	f := NewFrontier(map[string]storage.FrontierEntry{
		"https://low.com/":  {Authority: 1},
		"https://high.com/": {Authority: 9},
		"https://mid.com/":  {Authority: 4},
	})

	candidates := f.Sorted()
	require.Len(t, candidates, 3)
	require.Equal(t, "https://high.com/", candidates[0].Key)
	require.Equal(t, 9, candidates[0].Authority)
	require.Equal(t, "https://mid.com/", candidates[1].Key)
	require.Equal(t, "https://low.com/", candidates[2].Key)
}

func TestFrontierSnapshotIsACopy(t *testing.T) {
	t.Parallel()

	f := NewFrontier(nil)
	f.Add("https://example.com/")

	snapshot := f.Snapshot()
	snapshot["https://injected.com/"] = storage.FrontierEntry{Authority: 5}

	require.False(t, f.Contains("https://injected.com/"))
	require.Equal(t, 1, f.Len())
}

func TestIndexPutBumpAndEntries(t *testing.T) {
	t.Parallel()

	idx := NewIndex()
	idx.Put("https://example.com/", storage.IndexEntry{
		URL:       "https://example.com/",
		Title:     "Example",
		Authority: 2,
	})

	require.True(t, idx.Contains("https://example.com/"))
	require.True(t, idx.Bump("https://example.com/"))
	require.False(t, idx.Bump("https://unknown.org/"))

	entry, ok := idx.Get("https://example.com/")
	require.True(t, ok)
	require.Equal(t, 3, entry.Authority)

	entries := idx.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, "Example", entries[0].Title)
}
