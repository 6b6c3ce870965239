package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
)

// JSONStore persists the index and frontier as two JSON files
type JSONStore struct {
	indexPath string
	queuePath string
}

// NewJSONStore creates a store backed by the given file paths
func NewJSONStore(indexPath, queuePath string) *JSONStore {
	return &JSONStore{
		indexPath: indexPath,
		queuePath: queuePath,
	}
}

// Load reads both collections from disk. A missing or unparseable file
// degrades to an empty collection so that bad state never blocks a run.
func (s *JSONStore) Load() ([]IndexEntry, map[string]FrontierEntry, error) {
	var index []IndexEntry
	if err := loadJSON(s.indexPath, &index); err != nil {
		logrus.Warnf("Index file %s unusable, starting with empty index: %v", s.indexPath, err)
		index = nil
	}

	frontier := make(map[string]FrontierEntry)
	if err := loadJSON(s.queuePath, &frontier); err != nil {
		logrus.Warnf("Queue file %s unusable, starting with empty frontier: %v", s.queuePath, err)
		frontier = make(map[string]FrontierEntry)
	}
	if frontier == nil {
		frontier = make(map[string]FrontierEntry)
	}

	return index, frontier, nil
}

// Persist writes both collections, index first. Each file is written to a
// temporary sibling and renamed into place so a crash mid-write leaves the
// previous snapshot intact.
func (s *JSONStore) Persist(index []IndexEntry, frontier map[string]FrontierEntry) error {
	if index == nil {
		index = []IndexEntry{}
	}
	if frontier == nil {
		frontier = map[string]FrontierEntry{}
	}

	if err := saveJSON(s.indexPath, index); err != nil {
		return fmt.Errorf("failed to persist index: %w", err)
	}
	if err := saveJSON(s.queuePath, frontier); err != nil {
		return fmt.Errorf("failed to persist frontier: %w", err)
	}
	return nil
}

// Close is a no-op for the file-backed store
func (s *JSONStore) Close() error {
	return nil
}

func loadJSON(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist")
		}
		return fmt.Errorf("failed to read file: %w", err)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}
	return nil
}

func saveJSON(path string, data interface{}) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
