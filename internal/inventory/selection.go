package inventory

import "github.com/pfassina/labtracker/internal/cell"

// Selection is the per-session interaction state: selected keys, modes and
// the group picked for group-level actions. It does no validation.
type Selection struct {
	keys []cell.Key

	LinkMode  bool
	GroupMode bool
	Group     string
	Renaming  bool
	Editing   bool
}

// Keys returns the selected keys in the order they were added.
func (s *Selection) Keys() []cell.Key {
	return append([]cell.Key(nil), s.keys...)
}

func (s *Selection) Len() int { return len(s.keys) }

// Has reports whether k is selected.
func (s *Selection) Has(k cell.Key) bool {
	for _, cur := range s.keys {
		if cur == k {
			return true
		}
	}
	return false
}

// First returns the earliest selected key.
func (s *Selection) First() (cell.Key, bool) {
	if len(s.keys) == 0 {
		return cell.Key{}, false
	}
	return s.keys[0], true
}

// Add selects k; adding a selected key is a no-op.
func (s *Selection) Add(k cell.Key) {
	if !s.Has(k) {
		s.keys = append(s.keys, k)
	}
}

// Remove deselects k.
func (s *Selection) Remove(k cell.Key) {
	for i, cur := range s.keys {
		if cur == k {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			return
		}
	}
}

// Toggle flips k and reports whether it is now selected.
func (s *Selection) Toggle(k cell.Key) bool {
	if s.Has(k) {
		s.Remove(k)
		return false
	}
	s.Add(k)
	return true
}

// Replace makes keys the whole selection.
func (s *Selection) Replace(keys ...cell.Key) {
	s.keys = s.keys[:0]
	for _, k := range keys {
		s.Add(k)
	}
}

// Clear empties the key set, leaving modes alone.
func (s *Selection) Clear() {
	s.keys = nil
}

// Reset clears keys, modes and the selected group.
func (s *Selection) Reset() {
	*s = Selection{}
}
