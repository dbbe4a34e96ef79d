package storage

import (
	"errors"

	"go.uber.org/zap"

	"sketchnotes/internal/domain"
)

// Backend is the best-effort face of a NoteStore: reads fall back to
// defaults and writes that fail are dropped. Failures are logged, never
// returned.
type Backend struct {
	store domain.NoteStore
	log   *zap.Logger
}

func NewBackend(store domain.NoteStore, log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	return &Backend{store: store, log: log.Named("storage")}
}

func (b *Backend) failed(op, noteID string, err error, fields ...zap.Field) {
	fields = append(fields, zap.String("noteId", noteID), zap.Error(err))
	if errors.Is(err, domain.ErrNotFound) {
		b.log.Debug(op+" missed", fields...)
		return
	}
	b.log.Warn(op+" failed", fields...)
}

// ListNoteIDs returns an empty slice when the root cannot be read.
func (b *Backend) ListNoteIDs() []string {
	ids, err := b.store.ListNoteIDs()
	if err != nil {
		b.failed("list notes", "", err)
		return []string{}
	}
	return ids
}

// ReadName returns the placeholder when no usable name is stored.
func (b *Backend) ReadName(noteID string) string {
	name, err := b.store.ReadName(noteID)
	if err != nil {
		b.failed("read name", noteID, err)
		return domain.PlaceholderName
	}
	return domain.DisplayName(name)
}

func (b *Backend) WriteName(noteID, name string) {
	if err := b.store.WriteName(noteID, name); err != nil {
		b.failed("write name", noteID, err)
	}
}

func (b *Backend) CreateNamespace(noteID string) {
	if err := b.store.CreateNamespace(noteID); err != nil {
		b.failed("create namespace", noteID, err)
	}
}

func (b *Backend) DeleteNamespace(noteID string) {
	if err := b.store.DeleteNamespace(noteID); err != nil {
		b.failed("delete namespace", noteID, err)
	}
}

// ReadPage reports ok=false for pages that were never saved or could not
// be read.
func (b *Backend) ReadPage(noteID string, pageIndex int) ([]byte, bool) {
	drawing, err := b.store.ReadPage(noteID, pageIndex)
	if err != nil {
		b.failed("read page", noteID, err, zap.Int("page", pageIndex))
		return nil, false
	}
	return drawing, true
}

// WritePage reports whether the drawing reached storage. Failures are
// logged, never returned.
func (b *Backend) WritePage(noteID string, pageIndex int, drawing []byte) bool {
	if err := b.store.WritePage(noteID, pageIndex, drawing); err != nil {
		b.failed("write page", noteID, err, zap.Int("page", pageIndex))
		return false
	}
	return true
}

func (b *Backend) CountPages(noteID string) int {
	n, err := b.store.CountPages(noteID)
	if err != nil {
		b.failed("count pages", noteID, err)
		return 0
	}
	return n
}

func (b *Backend) Close() error {
	return b.store.Close()
}
