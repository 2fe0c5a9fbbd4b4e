package persist

import (
	"fmt"
	"path/filepath"
)

// Kind selects a storage backend.
type Kind string

const (
	KindSQLite Kind = "sqlite"
	KindJSON   Kind = "json"
	KindDiskv  Kind = "diskv"
)

// Kinds lists the supported backends.
var Kinds = []Kind{KindSQLite, KindJSON, KindDiskv}

// ParseKind validates a backend name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q (want sqlite, json or diskv)", s)
}

// Backend stores the composite state. Load returns (nil, nil) when nothing
// has been stored yet.
type Backend interface {
	Load() (*Blob, error)
	Save(Blob) error
	Clear() error
	Close() error
	// Path is the file or directory the backend writes to.
	Path() string
}

// Hit is one cell matched by a label search.
type Hit struct {
	Key       string
	Text      string
	GroupName string
}

// Searcher is implemented by backends with their own label index.
type Searcher interface {
	Search(query string, limit int) ([]Hit, error)
}

// Open opens the backend of the given kind inside dir.
func Open(kind Kind, dir string) (Backend, error) {
	switch kind {
	case KindSQLite, "":
		return OpenSQLite(filepath.Join(dir, "labtracker.db"))
	case KindJSON:
		return NewJSONStore(filepath.Join(dir, "labtracker.json")), nil
	case KindDiskv:
		return NewDiskvStore(filepath.Join(dir, "cells")), nil
	}
	return nil, fmt.Errorf("unknown backend %q", kind)
}

// Require loads from b and returns ErrNoState when nothing is stored.
func Require(b Backend) (*Blob, error) {
	blob, err := b.Load()
	if err != nil {
		return nil, fmt.Errorf("load state from %s: %w", b.Path(), err)
	}
	if blob == nil {
		return nil, ErrNoState
	}
	return blob, nil
}
