package watch

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestRelevant(t *testing.T) {
	w := &Watcher{root: "/data/notes"}

	cases := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "/data/notes/abc", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "/data/notes/abc", Op: fsnotify.Remove}, true},
		{fsnotify.Event{Name: "/data/notes/abc", Op: fsnotify.Rename}, true},
		{fsnotify.Event{Name: "/data/notes/abc", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "/data/notes/abc", Op: fsnotify.Chmod}, false},
		{fsnotify.Event{Name: "/data/notes/.trash-abc", Op: fsnotify.Create}, false},
		{fsnotify.Event{Name: "/data/notes/abc/page_0", Op: fsnotify.Create}, false},
		{fsnotify.Event{Name: "/elsewhere/abc", Op: fsnotify.Create}, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, w.relevant(c.ev), "%s %s", c.ev.Op, c.ev.Name)
	}
}

func TestWatcher_NewNoteTriggersRefresh(t *testing.T) {
	root := t.TempDir()
	changed := make(chan struct{}, 8)

	w, err := New(root, func() { changed <- struct{}{} }, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.Mkdir(filepath.Join(root, "3c9a1f0e-note"), 0755))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no refresh after a note directory appeared")
	}
}

func TestWatcher_BurstIsDebounced(t *testing.T) {
	root := t.TempDir()
	changed := make(chan struct{}, 32)

	w, err := New(root, func() { changed <- struct{}{} }, nil)
	require.NoError(t, err)
	defer w.Close()

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, os.Mkdir(filepath.Join(root, id), 0755))
	}

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no refresh after a burst of changes")
	}
	time.Sleep(2 * settle)
	assert.Less(t, len(changed), 2, "a burst should collapse into at most one more refresh")
}

func TestWatcher_MissingRoot(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "nope"), func() {}, nil)
	assert.Error(t, err)
}

func TestWatcher_CloseWaitsForRefreshInFlight(t *testing.T) {
	root := t.TempDir()
	started := make(chan struct{}, 1)
	var finished atomic.Bool

	w, err := New(root, func() {
		select {
		case started <- struct{}{}:
		default:
		}
		time.Sleep(200 * time.Millisecond)
		finished.Store(true)
	}, nil)
	require.NoError(t, err)

	require.NoError(t, os.Mkdir(filepath.Join(root, "n1"), 0755))
	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("refresh never started")
	}

	require.NoError(t, w.Close())
	assert.True(t, finished.Load(), "Close returned while a refresh was running")
}

func TestWatcher_NoRefreshAfterClose(t *testing.T) {
	root := t.TempDir()
	var calls atomic.Int32

	w, err := New(root, func() { calls.Add(1) }, nil)
	require.NoError(t, err)

	// Arm the timer, then close before it fires.
	w.schedule()
	require.NoError(t, w.Close())
	w.schedule()
	w.fire()

	time.Sleep(2 * settle)
	assert.Zero(t, calls.Load())
}
