package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "crawler.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := newTestSQLiteStore(t)

	index := []IndexEntry{
		{URL: "https://example.com/", Title: "Example", Description: "An example", Authority: 3},
	}
	frontier := map[string]FrontierEntry{
		"https://queued.net/": {Authority: 2},
	}

	require.NoError(t, store.Persist(index, frontier))

	gotIndex, gotFrontier, err := store.Load()
	require.NoError(t, err)
	require.ElementsMatch(t, index, gotIndex)
	require.Equal(t, frontier, gotFrontier)
}

func TestSQLiteStoreLoadEmptyDatabase(t *testing.T) {
	t.Parallel()

	store := newTestSQLiteStore(t)

	index, frontier, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, index)
	require.NotNil(t, frontier)
	require.Empty(t, frontier)
}

func TestSQLiteStorePersistReplacesPreviousSnapshot(t *testing.T) {
	t.Parallel()

	store := newTestSQLiteStore(t)

	require.NoError(t, store.Persist(
		[]IndexEntry{{URL: "https://first.com/", Authority: 1}},
		map[string]FrontierEntry{"https://stale.com/": {Authority: 1}},
	))
	require.NoError(t, store.Persist(
		[]IndexEntry{{URL: "https://second.com/", Authority: 2}},
		nil,
	))

	index, frontier, err := store.Load()
	require.NoError(t, err)
	require.Len(t, index, 1)
	require.Equal(t, "https://second.com/", index[0].URL)
	require.Empty(t, frontier)
}
