package service

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"sketchnotes/internal/domain"
	"sketchnotes/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Note Registry: the set of notes and their display names
// ─────────────────────────────────────────────────────────────

// Registry owns note identities. Its list is rebuilt from storage after
// every mutation, never patched in place.
type Registry struct {
	backend *storage.Backend
	emitter EventEmitter
	notes   []domain.Note
	newID   func() string
}

// NewRegistry creates a Registry and loads the current note list.
func NewRegistry(backend *storage.Backend, emitter EventEmitter) *Registry {
	if emitter == nil {
		emitter = NopEmitter{}
	}
	r := &Registry{
		backend: backend,
		emitter: emitter,
		newID:   uuid.NewString,
	}
	r.Refresh()
	return r
}

// Refresh re-reads every namespace and its name. Storage enumeration order
// is arbitrary, so the list is sorted by name (case-insensitive), then id.
func (r *Registry) Refresh() {
	ids := r.backend.ListNoteIDs()
	notes := make([]domain.Note, 0, len(ids))
	for _, id := range ids {
		notes = append(notes, domain.Note{ID: id, Name: r.backend.ReadName(id)})
	}
	sort.Slice(notes, func(i, j int) bool {
		a, b := strings.ToLower(notes[i].Name), strings.ToLower(notes[j].Name)
		if a != b {
			return a < b
		}
		return notes[i].ID < notes[j].ID
	})
	r.notes = notes
	r.emitter.Emit(context.Background(), EventNotesChanged, r.Notes())
}

// Notes returns a copy of the current list.
func (r *Registry) Notes() []domain.Note {
	out := make([]domain.Note, len(r.notes))
	copy(out, r.notes)
	return out
}

// Get looks a note up in the current list.
func (r *Registry) Get(id string) (domain.Note, bool) {
	for _, n := range r.notes {
		if n.ID == id {
			return n, true
		}
	}
	return domain.Note{}, false
}

// Create stores a new note under a fresh id. A blank name is replaced by
// the placeholder.
func (r *Registry) Create(name string) domain.Note {
	note := domain.Note{
		ID:   r.newID(),
		Name: domain.DisplayName(name),
	}
	r.backend.CreateNamespace(note.ID)
	r.backend.WriteName(note.ID, note.Name)
	r.Refresh()
	return note
}

// Delete removes the note with all its pages. Unknown notes are ignored
// by the backend, so this never fails.
func (r *Registry) Delete(note domain.Note) {
	r.backend.DeleteNamespace(note.ID)
	r.Refresh()
}
