package domain

import (
	"errors"
	"strings"
)

// PlaceholderName is shown for notes without a stored display name.
const PlaceholderName = "Untitled"

var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("invalid note id")
)

// Note is a user-visible collection of pages.
type Note struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DisplayName returns name, or the placeholder when name is blank.
func DisplayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return PlaceholderName
	}
	return name
}

// ValidNoteID reports whether id can be used as a storage namespace key.
// Ids become directory names and document keys, so separators and
// dot-prefixed names are rejected.
func ValidNoteID(id string) bool {
	if id == "" || strings.HasPrefix(id, ".") {
		return false
	}
	return !strings.ContainsAny(id, `/\:`+"\x00")
}

// NoteStore persists note names and page drawings, namespaced by note id.
// Implementations report failures; the best-effort policy is applied one
// layer up by storage.Backend.
type NoteStore interface {
	ListNoteIDs() ([]string, error)
	ReadName(noteID string) (string, error)
	WriteName(noteID, name string) error
	CreateNamespace(noteID string) error
	DeleteNamespace(noteID string) error

	ReadPage(noteID string, pageIndex int) ([]byte, error)
	WritePage(noteID string, pageIndex int, drawing []byte) error
	CountPages(noteID string) (int, error)

	Close() error
}
