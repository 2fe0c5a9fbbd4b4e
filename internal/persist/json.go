package persist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore keeps the blob in a single JSON file.
type JSONStore struct {
	path string
	mu   sync.Mutex
}

// NewJSONStore creates a store that persists to path.
func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

func (s *JSONStore) Path() string { return s.path }

// Load reads the blob from disk.
func (s *JSONStore) Load() (*Blob, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return decodeJSON(data)
}

func decodeJSON(data []byte) (*Blob, error) {
	b := NewBlob()
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, err
	}
	for _, t := range []*Table{&b.LeftTable, &b.MiddleTable, &b.MainTable} {
		if *t == nil {
			*t = Table{}
		}
	}
	return &b, nil
}

// Save writes the blob through a temp file and rename.
func (s *JSONStore) Save(b Blob) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".labtracker-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Clear removes the file.
func (s *JSONStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *JSONStore) Close() error { return nil }
