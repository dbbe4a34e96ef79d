package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchnotes/internal/service"
	"sketchnotes/internal/storage"
)

// newBackend returns a Backend over a fresh in-memory store.
func newBackend(t *testing.T) *storage.Backend {
	t.Helper()
	return storage.NewBackend(storage.NewMemoryStore(), nil)
}

// ─────────────────────────────────────────────────────────────
// MockEmitter tests
// ─────────────────────────────────────────────────────────────

func TestMockEmitter_RecordsEvents(t *testing.T) {
	m := &service.MockEmitter{}
	ctx := context.Background()

	m.Emit(ctx, "test:event", map[string]string{"foo": "bar"})
	m.Emit(ctx, "test:event2", nil)

	require.Len(t, m.Events, 2)
	assert.Equal(t, "test:event", m.Events[0].Event)
	assert.Equal(t, "test:event2", m.Events[1].Event)
	assert.Equal(t, 1, m.Count("test:event"))
	assert.Zero(t, m.Count("never"))
}

func TestNopEmitter_ImplementsInterface(t *testing.T) {
	var e service.EventEmitter = service.NopEmitter{}
	assert.NotPanics(t, func() { e.Emit(context.Background(), "noop", nil) })
}
