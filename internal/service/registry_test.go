package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"sketchnotes/internal/domain"
	"sketchnotes/internal/service"
	"sketchnotes/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Registry tests
// ─────────────────────────────────────────────────────────────

func TestRegistry_StartsEmpty(t *testing.T) {
	r := service.NewRegistry(newBackend(t), nil)
	assert.Empty(t, r.Notes())
}

func TestRegistry_Create(t *testing.T) {
	emitter := &service.MockEmitter{}
	b := newBackend(t)
	r := service.NewRegistry(b, emitter)

	note := r.Create("Trip")
	assert.NotEmpty(t, note.ID)
	assert.Equal(t, "Trip", note.Name)
	assert.Equal(t, []domain.Note{note}, r.Notes())
	assert.Equal(t, "Trip", b.ReadName(note.ID))
	assert.Zero(t, b.CountPages(note.ID))

	// one for the initial load, one for the create
	assert.Equal(t, 2, emitter.Count(service.EventNotesChanged))
}

func TestRegistry_CreateBlankNameUsesPlaceholder(t *testing.T) {
	b := newBackend(t)
	r := service.NewRegistry(b, nil)

	for _, name := range []string{"", "   "} {
		note := r.Create(name)
		assert.Equal(t, domain.PlaceholderName, note.Name)
		assert.Equal(t, domain.PlaceholderName, b.ReadName(note.ID))
	}
	assert.Len(t, r.Notes(), 2)
}

func TestRegistry_SortsByNameThenID(t *testing.T) {
	r := service.NewRegistry(newBackend(t), nil)
	r.Create("banana")
	r.Create("Apple")
	r.Create("cherry")
	r.Create("apple")

	notes := r.Notes()
	require.Len(t, notes, 4)
	assert.Equal(t, "banana", notes[2].Name)
	assert.Equal(t, "cherry", notes[3].Name)
	assert.ElementsMatch(t, []string{"Apple", "apple"}, []string{notes[0].Name, notes[1].Name})
	assert.Less(t, notes[0].ID, notes[1].ID)
}

func TestRegistry_Delete(t *testing.T) {
	b := newBackend(t)
	r := service.NewRegistry(b, nil)
	keep := r.Create("keep")
	gone := r.Create("gone")
	b.WritePage(gone.ID, 0, []byte("ink"))
	b.WritePage(gone.ID, 1, []byte("more ink"))

	r.Delete(gone)

	assert.Equal(t, []domain.Note{keep}, r.Notes())
	_, ok := r.Get(gone.ID)
	assert.False(t, ok)
	for i := 0; i < 2; i++ {
		_, ok := b.ReadPage(gone.ID, i)
		assert.False(t, ok, "page %d survived delete", i)
	}
}

func TestRegistry_DeleteUnknownIsNoop(t *testing.T) {
	r := service.NewRegistry(newBackend(t), nil)
	note := r.Create("only")

	r.Delete(domain.Note{ID: "7d1c0c2e-0000-4000-8000-000000000000"})

	assert.Equal(t, []domain.Note{note}, r.Notes())
}

func TestRegistry_RefreshSeesExternalChanges(t *testing.T) {
	store := storage.NewMemoryStore()
	b := storage.NewBackend(store, nil)
	r := service.NewRegistry(b, nil)
	assert.Empty(t, r.Notes())

	require.NoError(t, store.CreateNamespace("made-elsewhere"))
	r.Refresh()

	got, ok := r.Get("made-elsewhere")
	require.True(t, ok)
	assert.Equal(t, domain.PlaceholderName, got.Name)
}

func TestRegistry_IDsAreUnique(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := service.NewRegistry(storage.NewBackend(storage.NewMemoryStore(), nil), nil)
		names := rapid.SliceOfN(rapid.StringN(0, 12, -1), 1, 30).Draw(t, "names")

		seen := make(map[string]bool)
		for _, name := range names {
			note := r.Create(name)
			if seen[note.ID] {
				t.Fatalf("duplicate id %s", note.ID)
			}
			seen[note.ID] = true
		}
		if got := len(r.Notes()); got != len(names) {
			t.Fatalf("registry has %d notes, created %d", got, len(names))
		}
	})
}
