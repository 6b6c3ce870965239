package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

// SQLiteStore persists the index and frontier in a SQLite database
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens or creates the database and initializes the schema
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates tables if they don't exist
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS index_entries (
		url TEXT PRIMARY KEY,
		title TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		authority INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS frontier (
		url TEXT PRIMARY KEY,
		authority INTEGER NOT NULL DEFAULT 1
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Load reads both collections. Query or scan failures degrade to empty
// collections so that bad rows never block a run.
func (s *SQLiteStore) Load() ([]IndexEntry, map[string]FrontierEntry, error) {
	index, err := s.loadIndex()
	if err != nil {
		logrus.Warnf("Failed to load index table, starting with empty index: %v", err)
		index = nil
	}

	frontier, err := s.loadFrontier()
	if err != nil {
		logrus.Warnf("Failed to load frontier table, starting with empty frontier: %v", err)
		frontier = make(map[string]FrontierEntry)
	}

	return index, frontier, nil
}

func (s *SQLiteStore) loadIndex() ([]IndexEntry, error) {
	rows, err := s.db.Query("SELECT url, title, description, authority FROM index_entries")
	if err != nil {
		return nil, fmt.Errorf("failed to query index: %w", err)
	}
	defer rows.Close()

	var index []IndexEntry
	for rows.Next() {
		var entry IndexEntry
		if err := rows.Scan(&entry.URL, &entry.Title, &entry.Description, &entry.Authority); err != nil {
			return nil, fmt.Errorf("failed to scan index entry: %w", err)
		}
		index = append(index, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating index entries: %w", err)
	}

	return index, nil
}

func (s *SQLiteStore) loadFrontier() (map[string]FrontierEntry, error) {
	rows, err := s.db.Query("SELECT url, authority FROM frontier")
	if err != nil {
		return nil, fmt.Errorf("failed to query frontier: %w", err)
	}
	defer rows.Close()

	frontier := make(map[string]FrontierEntry)
	for rows.Next() {
		var url string
		var authority int
		if err := rows.Scan(&url, &authority); err != nil {
			return nil, fmt.Errorf("failed to scan frontier entry: %w", err)
		}
		frontier[url] = FrontierEntry{Authority: authority}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating frontier entries: %w", err)
	}

	return frontier, nil
}

// Persist replaces both tables with the given snapshots in one transaction,
// so a failed persist rolls back to the previous snapshot.
func (s *SQLiteStore) Persist(index []IndexEntry, frontier map[string]FrontierEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM index_entries"); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM frontier"); err != nil {
		return fmt.Errorf("failed to clear frontier: %w", err)
	}

	for _, entry := range index {
		_, err := tx.Exec(`
			INSERT INTO index_entries (url, title, description, authority)
			VALUES (?, ?, ?, ?)
		`, entry.URL, entry.Title, entry.Description, entry.Authority)
		if err != nil {
			return fmt.Errorf("failed to insert index entry %s: %w", entry.URL, err)
		}
	}

	for url, entry := range frontier {
		_, err := tx.Exec("INSERT INTO frontier (url, authority) VALUES (?, ?)", url, entry.Authority)
		if err != nil {
			return fmt.Errorf("failed to insert frontier entry %s: %w", url, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
