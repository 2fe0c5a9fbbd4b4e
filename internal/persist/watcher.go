package persist

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrNotWatchable is returned for backends that cannot be watched.
var ErrNotWatchable = errors.New("backend does not support watching")

// DebounceDelay is how long the watcher waits for writes to settle.
const DebounceDelay = 200 * time.Millisecond

// Fingerprint identifies the content of a blob independent of how it is
// stored.
func Fingerprint(b *Blob) [sha256.Size]byte {
	if b == nil {
		return [sha256.Size]byte{}
	}
	data, _ := json.Marshal(b)
	return sha256.Sum256(data)
}

// Watcher reloads the state when another process changes the backing
// files. Writes made through Watcher.Save are recognized and ignored.
type Watcher struct {
	backend Backend
	watcher *fsnotify.Watcher
	dir     string
	file    string

	mu      sync.Mutex
	timer   *time.Timer
	seq     uint64
	last    [sha256.Size]byte
	closed  bool
	delay   time.Duration
	onLoad  func(*Blob)
	onError func(error)
}

// NewWatcher watches the files of b. onLoad receives every externally
// changed state (nil when the state was removed); onError receives load
// and watch errors.
func NewWatcher(b Backend, onLoad func(*Blob), onError func(error)) (*Watcher, error) {
	var dir, file string
	switch b.(type) {
	case *JSONStore:
		dir, file = filepath.Dir(b.Path()), filepath.Base(b.Path())
	case *DiskvStore:
		dir = b.Path()
	default:
		return nil, ErrNotWatchable
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, err
	}

	w := &Watcher{
		backend: b,
		watcher: fw,
		dir:     dir,
		file:    file,
		delay:   DebounceDelay,
		onLoad:  onLoad,
		onError: onError,
	}
	if cur, err := b.Load(); err == nil {
		w.last = Fingerprint(cur)
	}
	return w, nil
}

// Save writes through to the backend, remembering the content so the
// resulting file events are not reported back.
func (w *Watcher) Save(b Blob) error {
	w.mu.Lock()
	w.last = Fingerprint(&b)
	w.mu.Unlock()
	return w.backend.Save(b)
}

// Start begins watching for changes. Blocks until Stop is called.
func (w *Watcher) Start() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.report(err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if strings.HasPrefix(name, ".") {
		return
	}
	if w.file != "" && name != w.file {
		return
	}
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.seq++
	seq := w.seq
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		if seq != w.seq || w.closed {
			w.mu.Unlock()
			return
		}
		w.timer = nil
		w.mu.Unlock()
		w.reload()
	})
}

func (w *Watcher) reload() {
	blob, err := w.backend.Load()
	if err != nil {
		w.report(err)
		return
	}
	fp := Fingerprint(blob)

	w.mu.Lock()
	if fp == w.last {
		w.mu.Unlock()
		return
	}
	w.last = fp
	w.mu.Unlock()

	if w.onLoad != nil {
		w.onLoad(blob)
	}
}

func (w *Watcher) report(err error) {
	if w.onError != nil {
		w.onError(err)
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	w.closed = true
	w.seq++
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()
	return w.watcher.Close()
}
