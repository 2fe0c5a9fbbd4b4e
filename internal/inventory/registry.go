package inventory

import "github.com/pfassina/labtracker/internal/cell"

// Registry routes key lookups to the store of the key's unit.
type Registry struct {
	stores map[cell.Unit]*Store
}

// NewRegistry creates one empty store per unit.
func NewRegistry() *Registry {
	r := &Registry{stores: make(map[cell.Unit]*Store, len(cell.Units))}
	for _, u := range cell.Units {
		r.stores[u] = NewStore(u)
	}
	return r
}

// Store returns the store for u, or nil for an unknown unit.
func (r *Registry) Store(u cell.Unit) *Store {
	return r.stores[u]
}

func (r *Registry) Get(k cell.Key) cell.Record {
	if s := r.stores[k.Unit]; s != nil {
		return s.Get(k)
	}
	return cell.Empty()
}

func (r *Registry) Lookup(k cell.Key) (cell.Record, bool) {
	if s := r.stores[k.Unit]; s != nil {
		return s.Lookup(k)
	}
	return cell.Record{}, false
}

func (r *Registry) Update(k cell.Key, p cell.Patch) {
	if s := r.stores[k.Unit]; s != nil {
		s.Update(k, p)
	}
}

func (r *Registry) Put(k cell.Key, rec cell.Record) {
	if s := r.stores[k.Unit]; s != nil {
		s.Put(k, rec)
	}
}

func (r *Registry) Delete(k cell.Key) {
	if s := r.stores[k.Unit]; s != nil {
		s.Delete(k)
	}
}

// Reset clears every store.
func (r *Registry) Reset() {
	for _, s := range r.stores {
		s.Reset()
	}
}

// Each calls fn for every stored record, unit by unit in cell.Less order.
func (r *Registry) Each(fn func(cell.Key, cell.Record)) {
	for _, u := range cell.Units {
		s := r.stores[u]
		for _, k := range s.Keys() {
			fn(k, s.records[k])
		}
	}
}

// Members returns the keys of every linked cell carrying name.
func (r *Registry) Members(name string) []cell.Key {
	if name == "" {
		return nil
	}
	var keys []cell.Key
	r.Each(func(k cell.Key, rec cell.Record) {
		if rec.Linked && rec.GroupName == name {
			keys = append(keys, k)
		}
	})
	return keys
}

// Tagged returns the keys of every cell whose groupName is name, linked or
// not. Group-wide operations match on the name alone.
func (r *Registry) Tagged(name string) []cell.Key {
	if name == "" {
		return nil
	}
	var keys []cell.Key
	r.Each(func(k cell.Key, rec cell.Record) {
		if rec.GroupName == name {
			keys = append(keys, k)
		}
	})
	return keys
}
