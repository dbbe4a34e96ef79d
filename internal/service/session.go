package service

import (
	"context"
	"fmt"

	"sketchnotes/internal/domain"
	"sketchnotes/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Page Session: pagination over one open note
// ─────────────────────────────────────────────────────────────

// Session is the cursor over an open note. It holds exactly one page's
// drawing and persists it before every page change.
type Session struct {
	backend *storage.Backend
	emitter EventEmitter
	tool    *ToolState

	noteID  string
	index   int
	drawing []byte
	// stored is true when the current index has a saved page.
	stored bool
	closed bool
}

// OpenSession starts on page 0 and resets tool to the default pen. A nil
// tool gets a fresh ToolState.
func OpenSession(backend *storage.Backend, emitter EventEmitter, noteID string, tool *ToolState) *Session {
	if emitter == nil {
		emitter = NopEmitter{}
	}
	if tool == nil {
		tool = NewToolState()
	}
	tool.Reset()
	s := &Session{
		backend: backend,
		emitter: emitter,
		tool:    tool,
		noteID:  noteID,
	}
	s.load()
	return s
}

func (s *Session) NoteID() string { return s.noteID }

func (s *Session) PageIndex() int { return s.index }

func (s *Session) Closed() bool { return s.closed }

// Tool returns the session's tool selection.
func (s *Session) Tool() *ToolState { return s.tool }

// Drawing returns a copy of the drawing currently on the canvas.
func (s *Session) Drawing() []byte {
	return append([]byte(nil), s.drawing...)
}

// SetDrawing replaces the in-memory drawing; it is persisted on the next
// navigation or on Close.
func (s *Session) SetDrawing(drawing []byte) {
	if s.closed {
		return
	}
	s.drawing = append([]byte(nil), drawing...)
}

// Next always succeeds. Moving past the last saved page opens an empty
// page that is only stored once something is drawn on it.
func (s *Session) Next() {
	if s.closed {
		return
	}
	s.save()
	s.index++
	s.load()
	s.emitPage()
}

// Previous is a no-op on the first page.
func (s *Session) Previous() {
	if s.closed || s.index == 0 {
		return
	}
	s.save()
	s.index--
	s.load()
	s.emitPage()
}

// Counter returns the 1-based position and the page total shown beside
// it. The total never drops below the current position.
func (s *Session) Counter() (current, total int) {
	current = s.index + 1
	total = max(s.backend.CountPages(s.noteID), current)
	return current, total
}

// CounterLabel renders Counter as "current / total".
func (s *Session) CounterLabel() string {
	current, total := s.Counter()
	return fmt.Sprintf("%d / %d", current, total)
}

// State snapshots everything the canvas renders.
func (s *Session) State() domain.PageState {
	current, total := s.Counter()
	return domain.PageState{
		NoteID:    s.noteID,
		PageIndex: s.index,
		Current:   current,
		Total:     total,
		Counter:   fmt.Sprintf("%d / %d", current, total),
		Tool:      s.tool.Current(),
		Drawing:   s.Drawing(),
	}
}

// Save persists the current page without navigating.
func (s *Session) Save() {
	if s.closed {
		return
	}
	s.save()
}

// Close saves the current page and ends the session.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.save()
	s.closed = true
	s.drawing = nil
}

// Discard ends the session without saving, used when the note itself is
// being deleted.
func (s *Session) Discard() {
	s.closed = true
	s.drawing = nil
}

// save writes the page unconditionally, except that an empty drawing on a
// page that was never stored does not create it. stored only turns true
// once storage has accepted a write.
func (s *Session) save() {
	if len(s.drawing) == 0 && !s.stored {
		return
	}
	if s.backend.WritePage(s.noteID, s.index, s.drawing) {
		s.stored = true
	}
}

func (s *Session) load() {
	drawing, ok := s.backend.ReadPage(s.noteID, s.index)
	s.drawing = drawing
	s.stored = ok
}

func (s *Session) emitPage() {
	s.emitter.Emit(context.Background(), EventPageChanged, map[string]any{
		"noteId":    s.noteID,
		"pageIndex": s.index,
	})
}
