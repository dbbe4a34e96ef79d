package storage

import (
	"fmt"
	"sync"

	"sketchnotes/internal/domain"
)

// MemoryStore is an in-process domain.NoteStore. Nothing survives Close.
type MemoryStore struct {
	mu    sync.RWMutex
	notes map[string]*memoryNote
}

type memoryNote struct {
	name  *string
	pages map[int][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{notes: make(map[string]*memoryNote)}
}

func (s *MemoryStore) ListNoteIDs() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.notes))
	for id := range s.notes {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *MemoryStore) ReadName(noteID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[noteID]
	if !ok || n.name == nil {
		return "", fmt.Errorf("name of %s: %w", noteID, domain.ErrNotFound)
	}
	return *n.name, nil
}

func (s *MemoryStore) WriteName(noteID, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[noteID]
	if !ok {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}
	n.name = &name
	return nil
}

func (s *MemoryStore) CreateNamespace(noteID string) error {
	if !domain.ValidNoteID(noteID) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidID, noteID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[noteID]; !ok {
		s.notes[noteID] = &memoryNote{pages: make(map[int][]byte)}
	}
	return nil
}

func (s *MemoryStore) DeleteNamespace(noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.notes, noteID)
	return nil
}

func (s *MemoryStore) ReadPage(noteID string, pageIndex int) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[noteID]
	if !ok {
		return nil, fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}
	drawing, ok := n.pages[pageIndex]
	if !ok {
		return nil, fmt.Errorf("page %d of %s: %w", pageIndex, noteID, domain.ErrNotFound)
	}
	return append([]byte(nil), drawing...), nil
}

func (s *MemoryStore) WritePage(noteID string, pageIndex int, drawing []byte) error {
	if pageIndex < 0 {
		return fmt.Errorf("write page: negative index %d", pageIndex)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notes[noteID]
	if !ok {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}
	n.pages[pageIndex] = append([]byte{}, drawing...)
	return nil
}

func (s *MemoryStore) CountPages(noteID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[noteID]
	if !ok {
		return 0, fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}
	return len(n.pages), nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make(map[string]*memoryNote)
	return nil
}
