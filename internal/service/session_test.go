package service_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"sketchnotes/internal/domain"
	"sketchnotes/internal/service"
	"sketchnotes/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Session tests
// ─────────────────────────────────────────────────────────────

func TestSession_FreshNote(t *testing.T) {
	b := newBackend(t)
	note := service.NewRegistry(b, nil).Create("Trip")

	s := service.OpenSession(b, nil, note.ID, nil)
	assert.Equal(t, 0, s.PageIndex())
	assert.Empty(t, s.Drawing())
	assert.Equal(t, "1 / 1", s.CounterLabel())
	assert.Equal(t, domain.DefaultTool(), s.Tool().Current())
}

func TestSession_TripScenario(t *testing.T) {
	b := newBackend(t)
	r := service.NewRegistry(b, nil)
	note := r.Create("Trip")
	require.Len(t, r.Notes(), 1)
	assert.Equal(t, "Trip", r.Notes()[0].Name)

	s := service.OpenSession(b, nil, note.ID, nil)
	s.Next()
	s.Next()
	s.Next()

	assert.Equal(t, 3, s.PageIndex())
	assert.Zero(t, b.CountPages(note.ID))
	assert.Equal(t, "4 / 4", s.CounterLabel())

	s.Previous()
	assert.Equal(t, 2, s.PageIndex())
	assert.Empty(t, s.Drawing())
	assert.Equal(t, "3 / 3", s.CounterLabel())
}

func TestSession_PreviousAtFirstPageIsNoop(t *testing.T) {
	emitter := &service.MockEmitter{}
	b := newBackend(t)
	note := service.NewRegistry(b, nil).Create("n")
	s := service.OpenSession(b, emitter, note.ID, nil)
	s.SetDrawing([]byte("ink"))

	s.Previous()

	assert.Equal(t, 0, s.PageIndex())
	assert.Equal(t, "ink", string(s.Drawing()))
	assert.Zero(t, emitter.Count(service.EventPageChanged))
	_, stored := b.ReadPage(note.ID, 0)
	assert.False(t, stored, "a no-op must not save")
}

func TestSession_SavesBeforeNavigating(t *testing.T) {
	b := newBackend(t)
	note := service.NewRegistry(b, nil).Create("n")
	s := service.OpenSession(b, nil, note.ID, nil)

	s.SetDrawing([]byte("page zero"))
	s.Next()
	assert.Empty(t, s.Drawing())
	s.SetDrawing([]byte("page one"))
	s.Previous()

	assert.Equal(t, "page zero", string(s.Drawing()))
	assert.Equal(t, 2, b.CountPages(note.ID))
	assert.Equal(t, "1 / 2", s.CounterLabel())

	s.Next()
	assert.Equal(t, "page one", string(s.Drawing()))
}

func TestSession_ClearingAStoredPageOverwritesIt(t *testing.T) {
	b := newBackend(t)
	note := service.NewRegistry(b, nil).Create("n")
	b.WritePage(note.ID, 0, []byte("old"))

	s := service.OpenSession(b, nil, note.ID, nil)
	assert.Equal(t, "old", string(s.Drawing()))
	s.SetDrawing(nil)
	s.Next()

	drawing, ok := b.ReadPage(note.ID, 0)
	assert.True(t, ok)
	assert.Empty(t, drawing)
}

func TestSession_ReopenStartsOnFirstPage(t *testing.T) {
	b := newBackend(t)
	note := service.NewRegistry(b, nil).Create("n")

	s := service.OpenSession(b, nil, note.ID, nil)
	s.SetDrawing([]byte("a"))
	s.Next()
	s.SetDrawing([]byte("b"))
	require.NoError(t, s.Tool().SetPen("#ff0000", 8))
	s.Close()

	s = service.OpenSession(b, nil, note.ID, nil)
	assert.Equal(t, 0, s.PageIndex())
	assert.Equal(t, "a", string(s.Drawing()))
	assert.Equal(t, domain.DefaultTool(), s.Tool().Current())
	assert.Equal(t, "1 / 2", s.CounterLabel())
}

func TestSession_CloseSavesAndStops(t *testing.T) {
	emitter := &service.MockEmitter{}
	b := newBackend(t)
	note := service.NewRegistry(b, nil).Create("n")
	s := service.OpenSession(b, emitter, note.ID, nil)
	s.SetDrawing([]byte("last words"))

	s.Close()
	assert.True(t, s.Closed())
	drawing, ok := b.ReadPage(note.ID, 0)
	require.True(t, ok)
	assert.Equal(t, "last words", string(drawing))

	s.Next()
	s.SetDrawing([]byte("ignored"))
	s.Close()
	assert.Equal(t, 0, s.PageIndex())
	assert.Zero(t, emitter.Count(service.EventPageChanged))
	drawing, _ = b.ReadPage(note.ID, 0)
	assert.Equal(t, "last words", string(drawing))
}

func TestSession_DiscardDoesNotSave(t *testing.T) {
	b := newBackend(t)
	note := service.NewRegistry(b, nil).Create("n")
	s := service.OpenSession(b, nil, note.ID, nil)
	s.SetDrawing([]byte("draft"))

	s.Discard()

	_, ok := b.ReadPage(note.ID, 0)
	assert.False(t, ok)
}

func TestSession_EmitsPageChanged(t *testing.T) {
	emitter := &service.MockEmitter{}
	b := newBackend(t)
	note := service.NewRegistry(b, nil).Create("n")
	s := service.OpenSession(b, emitter, note.ID, nil)

	s.Next()
	s.Previous()

	require.Equal(t, 2, emitter.Count(service.EventPageChanged))
	last := emitter.Events[len(emitter.Events)-1]
	assert.Equal(t, map[string]any{"noteId": note.ID, "pageIndex": 0}, last.Data)
}

func TestSession_NavigationProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := storage.NewBackend(storage.NewMemoryStore(), nil)
		note := service.NewRegistry(b, nil).Create("prop")
		s := service.OpenSession(b, nil, note.ID, nil)

		// pages[i] is what the user last drew on page i
		pages := map[int]string{}
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 2).Draw(t, "op") {
			case 0:
				s.Next()
			case 1:
				s.Previous()
			case 2:
				ink := rapid.StringN(1, 8, -1).Draw(t, "ink")
				s.SetDrawing([]byte(ink))
				pages[s.PageIndex()] = ink
			}

			if s.PageIndex() < 0 {
				t.Fatalf("index went negative: %d", s.PageIndex())
			}
			current, total := s.Counter()
			if current != s.PageIndex()+1 || total < current {
				t.Fatalf("counter %d / %d at index %d", current, total, s.PageIndex())
			}
			if got := string(s.Drawing()); got != pages[s.PageIndex()] {
				t.Fatalf("page %d shows %q, last drawn %q", s.PageIndex(), got, pages[s.PageIndex()])
			}
		}
	})
}

func TestSession_ResetsASharedToolState(t *testing.T) {
	b := newBackend(t)
	note := service.NewRegistry(b, nil).Create("n")
	tool := service.NewToolState()
	require.NoError(t, tool.SetPen("#123456", 8))
	tool.SetEraser()

	s := service.OpenSession(b, nil, note.ID, tool)

	assert.Same(t, tool, s.Tool())
	assert.Equal(t, domain.DefaultTool(), tool.Current())
}

// flakyStore rejects page writes while failWrites is set.
type flakyStore struct {
	*storage.MemoryStore
	failWrites bool
}

func (f *flakyStore) WritePage(noteID string, pageIndex int, drawing []byte) error {
	if f.failWrites {
		return errors.New("disk full")
	}
	return f.MemoryStore.WritePage(noteID, pageIndex, drawing)
}

func TestSession_FailedSaveDoesNotMarkPageStored(t *testing.T) {
	store := &flakyStore{MemoryStore: storage.NewMemoryStore()}
	b := storage.NewBackend(store, nil)
	note := service.NewRegistry(b, nil).Create("n")
	s := service.OpenSession(b, nil, note.ID, nil)

	store.failWrites = true
	s.SetDrawing([]byte("lost"))
	s.Save()
	store.failWrites = false

	// The page never reached storage, so clearing it and moving on must
	// not create it.
	s.SetDrawing(nil)
	s.Next()

	assert.Zero(t, b.CountPages(note.ID))
	_, ok := b.ReadPage(note.ID, 0)
	assert.False(t, ok)
}
