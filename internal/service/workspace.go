package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"sketchnotes/internal/domain"
	"sketchnotes/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Workspace: the serialized entry point for every adapter
// ─────────────────────────────────────────────────────────────

var (
	ErrNoOpenNote  = errors.New("no note is open")
	ErrUnknownNote = errors.New("unknown note")
)

// Workspace pairs the Registry with the single open Session. Adapters may
// call it from several goroutines (MCP handlers, the filesystem watcher);
// the mutex turns those calls back into one serialized event stream.
type Workspace struct {
	mu       sync.Mutex
	backend  *storage.Backend
	emitter  EventEmitter
	registry *Registry
	session  *Session
	// tool is shared by successive sessions and reset on every open.
	tool     *ToolState
}

func NewWorkspace(backend *storage.Backend, emitter EventEmitter) *Workspace {
	if emitter == nil {
		emitter = NopEmitter{}
	}
	return &Workspace{
		backend:  backend,
		emitter:  emitter,
		registry: NewRegistry(backend, emitter),
		tool:     NewToolState(),
	}
}

// ── Notes ──────────────────────────────────────────────────

func (w *Workspace) ListNotes() []domain.Note {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registry.Notes()
}

func (w *Workspace) Refresh() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.registry.Refresh()
}

func (w *Workspace) CreateNote(name string) domain.Note {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.registry.Create(name)
}

// DeleteNote removes a note. When the note is open its session is
// discarded first so nothing is written back after the delete.
func (w *Workspace) DeleteNote(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.session != nil && w.session.NoteID() == id {
		w.session.Discard()
		w.session = nil
	}
	w.registry.Delete(domain.Note{ID: id})
}

// PageCount returns the number of saved pages of any note.
func (w *Workspace) PageCount(noteID string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.backend.CountPages(noteID)
}

// ── Session ────────────────────────────────────────────────

// OpenNote closes the current session, if any, and opens noteID on page 0.
func (w *Workspace) OpenNote(noteID string) (domain.PageState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.registry.Get(noteID); !ok {
		return domain.PageState{}, fmt.Errorf("open %s: %w", noteID, ErrUnknownNote)
	}
	if w.session != nil {
		w.session.Close()
	}
	w.session = OpenSession(w.backend, w.emitter, noteID, w.tool)
	return w.session.State(), nil
}

// CloseNote saves and closes the open note. Closing with nothing open is a no-op.
func (w *Workspace) CloseNote() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.session != nil {
		w.session.Close()
		w.session = nil
	}
}

func (w *Workspace) withSession(fn func(s *Session) error) (domain.PageState, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.session == nil {
		return domain.PageState{}, ErrNoOpenNote
	}
	if err := fn(w.session); err != nil {
		return domain.PageState{}, err
	}
	return w.session.State(), nil
}

func (w *Workspace) PageState() (domain.PageState, error) {
	return w.withSession(func(*Session) error { return nil })
}

func (w *Workspace) NextPage() (domain.PageState, error) {
	return w.withSession(func(s *Session) error {
		s.Next()
		return nil
	})
}

func (w *Workspace) PreviousPage() (domain.PageState, error) {
	return w.withSession(func(s *Session) error {
		s.Previous()
		return nil
	})
}

// SaveDrawing replaces the open page's drawing and persists it.
func (w *Workspace) SaveDrawing(drawing []byte) (domain.PageState, error) {
	return w.withSession(func(s *Session) error {
		s.SetDrawing(drawing)
		s.Save()
		return nil
	})
}

func (w *Workspace) SetPen(color string, width float64) (domain.PageState, error) {
	state, err := w.withSession(func(s *Session) error {
		return s.Tool().SetPen(color, width)
	})
	if err == nil {
		w.emitter.Emit(context.Background(), EventToolChanged, state.Tool)
	}
	return state, err
}

func (w *Workspace) SetEraser() (domain.PageState, error) {
	state, err := w.withSession(func(s *Session) error {
		s.Tool().SetEraser()
		return nil
	})
	if err == nil {
		w.emitter.Emit(context.Background(), EventToolChanged, state.Tool)
	}
	return state, err
}
