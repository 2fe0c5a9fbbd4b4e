package inventory

import (
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/pfassina/labtracker/internal/cell"
	"github.com/pfassina/labtracker/internal/layout"
	"github.com/pfassina/labtracker/internal/persist"
)

// Saver receives the full state after every mutation.
type Saver interface {
	Save(persist.Blob) error
}

// Inventory is the process-wide state container: the three unit stores, the
// group allocator and the persistence hook. All methods are safe for
// concurrent use; each mutation reads, validates and writes under one lock.
type Inventory struct {
	mu     sync.Mutex
	reg    *Registry
	alloc  *Allocator
	lay    layout.Layout
	saver  Saver
	logger *log.Logger

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// Option configures an Inventory.
type Option func(*Inventory)

// WithSaver persists every mutation through s.
func WithSaver(s Saver) Option {
	return func(inv *Inventory) { inv.saver = s }
}

// WithLogger sets the logger used for persistence failures and seeding.
func WithLogger(l *log.Logger) Option {
	return func(inv *Inventory) { inv.logger = l }
}

// WithLayout makes seeding drop stored cells that lie outside lay.
func WithLayout(lay layout.Layout) Option {
	return func(inv *Inventory) { inv.lay = lay }
}

// WithPalette overrides the group palette.
func WithPalette(p []string) Option {
	return func(inv *Inventory) { inv.alloc = NewAllocator(p) }
}

// New creates an empty inventory.
func New(opts ...Option) *Inventory {
	inv := &Inventory{
		reg:   NewRegistry(),
		alloc: NewAllocator(nil),
		subs:  make(map[int]func(Change)),
	}
	for _, o := range opts {
		o(inv)
	}
	if inv.logger == nil {
		inv.logger = log.New(io.Discard)
	}
	return inv
}

// Subscribe registers fn to be called after every applied change. The
// returned func removes the subscription.
func (inv *Inventory) Subscribe(fn func(Change)) (cancel func()) {
	inv.subMu.Lock()
	id := inv.nextSub
	inv.nextSub++
	inv.subs[id] = fn
	inv.subMu.Unlock()
	return func() {
		inv.subMu.Lock()
		delete(inv.subs, id)
		inv.subMu.Unlock()
	}
}

func (inv *Inventory) notify(ch Change) {
	inv.subMu.Lock()
	fns := make([]func(Change), 0, len(inv.subs))
	for _, fn := range inv.subs {
		fns = append(fns, fn)
	}
	inv.subMu.Unlock()
	for _, fn := range fns {
		fn(ch)
	}
}

// Get returns the record at k or the empty default.
func (inv *Inventory) Get(k cell.Key) cell.Record {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.reg.Get(k)
}

// Each calls fn for every stored record. fn must not call back into inv.
func (inv *Inventory) Each(fn func(cell.Key, cell.Record)) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.reg.Each(fn)
}

// Records returns a copy of every stored record.
func (inv *Inventory) Records() map[cell.Key]cell.Record {
	out := make(map[cell.Key]cell.Record)
	inv.Each(func(k cell.Key, r cell.Record) { out[k] = r })
	return out
}

// Cursors returns the allocator cursors.
func (inv *Inventory) Cursors() (colorIndex, groupNumber int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.alloc.Cursors()
}

// Palette returns the group palette in use.
func (inv *Inventory) Palette() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.alloc.Palette()
}

// Blob returns the persistable form of the current state.
func (inv *Inventory) Blob() persist.Blob {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.blobLocked()
}

func (inv *Inventory) blobLocked() persist.Blob {
	b := persist.NewBlob()
	for _, u := range cell.Units {
		b.SetTable(u, persist.Table(inv.reg.Store(u).Table()))
	}
	b.NextColorIndex, b.NextGroupNumber = inv.alloc.Cursors()
	return b
}

// Seed replaces the state with b without persisting. Malformed entries are
// repaired or dropped and logged; a nil blob leaves the inventory empty.
func (inv *Inventory) Seed(b *persist.Blob) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.seedLocked(b)
}

func (inv *Inventory) seedLocked(b *persist.Blob) {
	inv.reg.Reset()
	inv.alloc.Reset()
	if b == nil {
		return
	}

	colors := map[string]string{}
	for _, u := range cell.Units {
		t := b.Table(u)
		keys := make([]cell.Key, 0, len(t))
		raw := make(map[cell.Key]cell.Record, len(t))
		for s, rec := range t {
			k, err := cell.ParseKey(s)
			if err != nil {
				inv.logger.Warn("dropping stored cell", "key", s, "err", err)
				continue
			}
			if k.Unit != u {
				inv.logger.Warn("dropping stored cell", "key", s, "table", u.String())
				continue
			}
			if len(inv.lay.Units) > 0 && !inv.lay.Contains(k) {
				inv.logger.Warn("dropping stored cell outside the grid", "key", s)
				continue
			}
			keys = append(keys, k)
			raw[k] = rec
		}
		sortKeys(keys)
		for _, k := range keys {
			rec := raw[k]
			fixed := rec.Normalize()
			if fixed.Linked {
				if c, ok := colors[fixed.GroupName]; ok && c != fixed.GroupColor {
					fixed.GroupColor = c
				} else if !ok {
					colors[fixed.GroupName] = fixed.GroupColor
				}
			}
			if fixed != rec {
				inv.logger.Warn("repaired stored cell", "key", k.String())
			}
			inv.reg.Put(k, fixed)
		}
	}
	inv.alloc.SetCursors(b.NextColorIndex, b.NextGroupNumber)
}

// Reload replaces the state with b and notifies subscribers. It is used
// when the backing store was changed by someone else, so nothing is saved.
func (inv *Inventory) Reload(b *persist.Blob) {
	inv.mu.Lock()
	inv.seedLocked(b)
	inv.mu.Unlock()
	inv.notify(Change{Action: ActionReload})
}

// Reset clears every cell and both allocator cursors.
func (inv *Inventory) Reset() Change {
	inv.mu.Lock()
	ch := Change{Action: ActionReset}
	inv.reg.Each(func(k cell.Key, r cell.Record) {
		ch.Before = append(ch.Before, Snapshot{Key: k, Record: r, Present: true})
	})
	inv.reg.Reset()
	inv.alloc.Reset()
	inv.persistLocked()
	inv.mu.Unlock()
	inv.notify(ch)
	return ch
}

// Restore puts back the records captured in ch. Keys that had no record
// before ch are removed. Allocator cursors are left alone. A restored
// member of a group whose name is now carried by other cells takes on
// their color, so the two join one group.
func (inv *Inventory) Restore(ch Change) Change {
	if ch.Empty() {
		return Change{}
	}
	inv.mu.Lock()
	out := Change{Action: ActionRestore, Group: ch.Group}
	restoring := make(map[cell.Key]bool, len(ch.Before))
	for _, s := range ch.Before {
		cur, ok := inv.reg.Lookup(s.Key)
		out.Before = append(out.Before, Snapshot{Key: s.Key, Record: cur, Present: ok})
		restoring[s.Key] = true
	}
	live := map[string]string{}
	inv.reg.Each(func(k cell.Key, r cell.Record) {
		if r.Linked && !restoring[k] {
			live[r.GroupName] = r.GroupColor
		}
	})
	merged := map[string]bool{}
	for _, s := range ch.Before {
		if s.Present {
			rec := s.Record
			if c, ok := live[rec.GroupName]; ok && rec.Linked && c != rec.GroupColor {
				if !merged[rec.GroupName] {
					inv.logger.Warn("restored cells join a group that reused their name",
						"group", rec.GroupName, "color", c, "was", rec.GroupColor)
					merged[rec.GroupName] = true
				}
				rec.GroupColor = c
			}
			inv.reg.Put(s.Key, rec)
		} else {
			inv.reg.Delete(s.Key)
		}
	}
	inv.persistLocked()
	inv.mu.Unlock()
	inv.logger.Info("restored cells", "action", string(ch.Action), "cells", len(ch.Before))
	inv.notify(out)
	return out
}

// applyLocked snapshots every key about to be written, then applies all
// writes in one pass.
func (inv *Inventory) applyLocked(action Action, group string, writes []write) Change {
	ch := Change{Action: action, Group: group}
	seen := make(map[cell.Key]bool, len(writes))
	for _, w := range writes {
		if seen[w.key] {
			continue
		}
		seen[w.key] = true
		rec, ok := inv.reg.Lookup(w.key)
		ch.Before = append(ch.Before, Snapshot{Key: w.key, Record: rec, Present: ok})
	}
	for _, w := range writes {
		inv.reg.Update(w.key, w.patch)
	}
	return ch
}

func (inv *Inventory) persistLocked() {
	if inv.saver == nil {
		return
	}
	if err := inv.saver.Save(inv.blobLocked()); err != nil {
		inv.logger.Error("saving state", "err", err)
	}
}

// finish persists and notifies after a mutation. It must be called with the
// lock held and releases it.
func (inv *Inventory) finish(ch Change) Change {
	if !ch.Empty() {
		inv.persistLocked()
	}
	inv.mu.Unlock()
	if !ch.Empty() {
		inv.notify(ch)
	}
	return ch
}
