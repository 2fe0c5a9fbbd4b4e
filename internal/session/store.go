package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the session file kept in the data directory.
const FileName = "session.json"

// Store handles session state persistence.
type Store struct {
	path string
}

// NewStore creates a store that persists to the given data directory.
func NewStore(dataDir string) *Store {
	return &Store{
		path: filepath.Join(dataDir, FileName),
	}
}

// Load reads the session state from disk. A missing file yields the
// defaults; a corrupt one yields the defaults and an error.
func (s *Store) Load() (State, error) {
	state := Default()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return state, err
	}

	if err := json.Unmarshal(data, &state); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", s.path, err)
	}

	return state, nil
}

// Save writes the session state to disk.
func (s *Store) Save(state State) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, data, 0644)
}
