// Package watch refreshes the note list when note directories are added
// or removed outside the process.
package watch

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// settle coalesces the burst of events a single directory operation causes.
const settle = 150 * time.Millisecond

// Watcher reports changes to the top level of a notes root.
type Watcher struct {
	watcher  *fsnotify.Watcher
	root     string
	onChange func()
	log      *zap.Logger

	// mu also covers onChange, so Close waits for a refresh in flight.
	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// New starts watching root. onChange runs on the watcher goroutine, at
// most once per settle interval.
func New(root string, onChange func(), log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(absRoot); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", absRoot, err)
	}

	w := &Watcher{
		watcher:  watcher,
		root:     absRoot,
		onChange: onChange,
		log:      log.Named("watch"),
		done:     make(chan struct{}),
	}
	go w.watchLoop()
	return w, nil
}

// Close stops the watcher and any pending notification. Once it returns,
// onChange is not running and will not run again.
func (w *Watcher) Close() error {
	// Stop the event loop first so nothing re-arms the timer.
	err := w.watcher.Close()
	<-w.done

	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	return err
}

// relevant reports whether an event changes the set of notes: a direct
// child of root that is not a hidden or temporary entry.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	path, err := filepath.Abs(event.Name)
	if err != nil || filepath.Dir(path) != w.root {
		return false
	}
	return !strings.HasPrefix(filepath.Base(path), ".")
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Reset(settle)
		return
	}
	w.timer = time.AfterFunc(settle, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.onChange == nil {
		return
	}
	w.onChange()
}

func (w *Watcher) watchLoop() {
	defer close(w.done)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if w.relevant(event) {
				w.log.Debug("notes root changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn("watcher error", zap.Error(err))
		}
	}
}
