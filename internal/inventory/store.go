package inventory

import (
	"sort"

	"github.com/pfassina/labtracker/internal/cell"
)

// Store holds the records of a single unit.
type Store struct {
	unit    cell.Unit
	records map[cell.Key]cell.Record
}

// NewStore creates an empty store for the given unit.
func NewStore(unit cell.Unit) *Store {
	return &Store{unit: unit, records: make(map[cell.Key]cell.Record)}
}

// Unit returns the unit this store belongs to.
func (s *Store) Unit() cell.Unit { return s.unit }

// Get returns the record at k, or the empty default when nothing is stored.
func (s *Store) Get(k cell.Key) cell.Record {
	if r, ok := s.records[k]; ok {
		return r
	}
	return cell.Empty()
}

// Lookup returns the record at k and whether one was stored.
func (s *Store) Lookup(k cell.Key) (cell.Record, bool) {
	r, ok := s.records[k]
	return r, ok
}

// Update merges p into the record at k, creating it if absent.
func (s *Store) Update(k cell.Key, p cell.Patch) {
	s.records[k] = p.Apply(s.Get(k))
}

// Put replaces the record at k.
func (s *Store) Put(k cell.Key, r cell.Record) {
	s.records[k] = r
}

// Delete removes the record at k.
func (s *Store) Delete(k cell.Key) {
	delete(s.records, k)
}

// Reset removes every record.
func (s *Store) Reset() {
	clear(s.records)
}

// Len returns the number of stored records.
func (s *Store) Len() int { return len(s.records) }

// Keys returns the stored keys in cell.Less order.
func (s *Store) Keys() []cell.Key {
	keys := make([]cell.Key, 0, len(s.records))
	for k := range s.records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return cell.Less(keys[i], keys[j]) })
	return keys
}

// Table returns a copy of the records keyed by their string form.
func (s *Store) Table() map[string]cell.Record {
	t := make(map[string]cell.Record, len(s.records))
	for k, r := range s.records {
		t[k.String()] = r
	}
	return t
}
