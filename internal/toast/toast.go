// Package toast holds transient notifications, each optionally carrying a
// single-use undo.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pfassina/labtracker/internal/cell"
)

// DefaultDuration is how long a notification lives unless told otherwise.
const DefaultDuration = 4000 * time.Millisecond

// PulseDuration is how long keys restored by an undo stay highlighted.
const PulseDuration = 1500 * time.Millisecond

type Severity int

const (
	Info Severity = iota
	Success
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Success:
		return "success"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "info"
}

// Keyed is implemented by undo payloads that know which cells they touch.
type Keyed interface {
	Keys() []cell.Key
}

// Notification is what callers hand to Notify.
type Notification struct {
	Message     string
	Severity    Severity
	Duration    time.Duration
	UndoAction  func(payload any)
	UndoPayload any
}

// Toast is a live notification as seen by renderers.
type Toast struct {
	ID       string
	Message  string
	Severity Severity
	Created  time.Time
	Expires  time.Time
	CanUndo  bool
}

type entry struct {
	Toast
	undo    func(any)
	payload any
	timer   *time.Timer
}

// Bridge owns the live notifications and the restored-cell pulses.
type Bridge struct {
	mu       sync.Mutex
	entries  []*entry
	pulses   map[cell.Key]time.Time
	duration time.Duration
	now      func() time.Time
	onChange func()
	closed   bool
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithDuration sets the default lifetime of notifications.
func WithDuration(d time.Duration) Option {
	return func(b *Bridge) {
		if d > 0 {
			b.duration = d
		}
	}
}

// WithOnChange registers fn to be called (outside the lock) whenever the
// set of notifications or pulses changes, including on timer expiry.
func WithOnChange(fn func()) Option {
	return func(b *Bridge) { b.onChange = fn }
}

// NewBridge creates an empty Bridge.
func NewBridge(opts ...Option) *Bridge {
	b := &Bridge{
		pulses:   make(map[cell.Key]time.Time),
		duration: DefaultDuration,
		now:      time.Now,
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Notify shows n and schedules its dismissal. It returns the notification
// ID.
func (b *Bridge) Notify(n Notification) string {
	d := n.Duration
	if d <= 0 {
		d = b.duration
	}
	now := b.now()
	e := &entry{
		Toast: Toast{
			ID:       uuid.NewString(),
			Message:  n.Message,
			Severity: n.Severity,
			Created:  now,
			Expires:  now.Add(d),
			CanUndo:  n.UndoAction != nil,
		},
		undo:    n.UndoAction,
		payload: n.UndoPayload,
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return e.ID
	}
	id := e.ID
	e.timer = time.AfterFunc(d, func() { b.expire(id) })
	b.entries = append(b.entries, e)
	b.mu.Unlock()

	b.changed()
	return id
}

func (b *Bridge) expire(id string) {
	if b.remove(id) != nil {
		b.changed()
	}
}

// remove unlinks the entry and stops its timer. It returns nil when id is
// not live.
func (b *Bridge) remove(id string) *entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, e := range b.entries {
		if e.ID == id {
			b.entries = append(b.entries[:i], b.entries[i+1:]...)
			if e.timer != nil {
				e.timer.Stop()
			}
			return e
		}
	}
	return nil
}

// Dismiss removes a notification without running its undo.
func (b *Bridge) Dismiss(id string) bool {
	if b.remove(id) == nil {
		return false
	}
	b.changed()
	return true
}

// InvokeUndo runs the undo of a live notification, pulses the cells its
// payload names and removes it. It reports whether an undo ran.
func (b *Bridge) InvokeUndo(id string) bool {
	e := b.remove(id)
	if e == nil {
		return false
	}
	if e.undo == nil {
		b.changed()
		return false
	}
	e.undo(e.payload)
	if k, ok := e.payload.(Keyed); ok {
		b.Pulse(k.Keys()...)
	}
	b.changed()
	return true
}

// Latest returns the newest notification that can still be undone.
func (b *Bridge) Latest() (Toast, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.entries) - 1; i >= 0; i-- {
		if b.entries[i].CanUndo {
			return b.entries[i].Toast, true
		}
	}
	return Toast{}, false
}

// List returns the live notifications, oldest first.
func (b *Bridge) List() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Toast, len(b.entries))
	for i, e := range b.entries {
		out[i] = e.Toast
	}
	return out
}

// Pulse highlights keys for PulseDuration.
func (b *Bridge) Pulse(keys ...cell.Key) {
	if len(keys) == 0 {
		return
	}
	until := b.now().Add(PulseDuration)
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	for _, k := range keys {
		b.pulses[k] = until
	}
	b.mu.Unlock()
	time.AfterFunc(PulseDuration, b.changed)
}

// Restored reports whether k is inside an undo pulse.
func (b *Bridge) Restored(k cell.Key) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	until, ok := b.pulses[k]
	if !ok {
		return false
	}
	if !b.now().Before(until) {
		delete(b.pulses, k)
		return false
	}
	return true
}

// Close stops every pending timer. Notifications sent afterwards are
// dropped.
func (b *Bridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	for _, e := range b.entries {
		if e.timer != nil {
			e.timer.Stop()
		}
	}
	b.entries = nil
	clear(b.pulses)
}

func (b *Bridge) changed() {
	b.mu.Lock()
	fn, closed := b.onChange, b.closed
	b.mu.Unlock()
	if fn != nil && !closed {
		fn()
	}
}
