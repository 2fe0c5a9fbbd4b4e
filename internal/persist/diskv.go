package persist

import (
	"encoding/json"
	"fmt"

	"github.com/peterbourgon/diskv/v3"

	"github.com/pfassina/labtracker/internal/cell"
)

const cursorsKey = "cursors"

var tableKeys = map[cell.Unit]string{
	cell.Left:   "leftTable",
	cell.Middle: "middleTable",
	cell.Main:   "mainTable",
}

type cursors struct {
	NextColorIndex  int `json:"nextColorIndex"`
	NextGroupNumber int `json:"nextGroupNumber"`
}

// DiskvStore keeps one file per unit table plus one for the cursors.
type DiskvStore struct {
	d    *diskv.Diskv
	path string
}

// NewDiskvStore creates a store rooted at dir.
func NewDiskvStore(dir string) *DiskvStore {
	return &DiskvStore{
		d: diskv.New(diskv.Options{
			BasePath:     dir,
			Transform:    func(string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		path: dir,
	}
}

func (s *DiskvStore) Path() string { return s.path }

func (s *DiskvStore) Load() (*Blob, error) {
	if !s.d.Has(cursorsKey) {
		return nil, nil
	}
	b := NewBlob()

	raw, err := s.d.Read(cursorsKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", cursorsKey, err)
	}
	var c cursors
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode %s: %w", cursorsKey, err)
	}
	b.NextColorIndex, b.NextGroupNumber = c.NextColorIndex, c.NextGroupNumber

	for _, u := range cell.Units {
		key := tableKeys[u]
		if !s.d.Has(key) {
			continue
		}
		raw, err := s.d.Read(key)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", key, err)
		}
		t := Table{}
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		b.SetTable(u, t)
	}
	return &b, nil
}

func (s *DiskvStore) Save(b Blob) error {
	for _, u := range cell.Units {
		t := b.Table(u)
		if t == nil {
			t = Table{}
		}
		raw, err := json.Marshal(t)
		if err != nil {
			return err
		}
		if err := s.d.Write(tableKeys[u], raw); err != nil {
			return fmt.Errorf("write %s: %w", tableKeys[u], err)
		}
	}
	// Cursors go last: their presence marks a complete save.
	raw, err := json.Marshal(cursors{b.NextColorIndex, b.NextGroupNumber})
	if err != nil {
		return err
	}
	return s.d.Write(cursorsKey, raw)
}

func (s *DiskvStore) Clear() error {
	return s.d.EraseAll()
}

func (s *DiskvStore) Close() error { return nil }
