package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sketchnotes/internal/config"
	"sketchnotes/internal/service"
	"sketchnotes/internal/storage"
)

func testConfig(t *testing.T, storageType string) *config.AppConfig {
	t.Helper()
	return &config.AppConfig{
		DataDir: t.TempDir(),
		Storage: storage.Config{Type: storageType},
		Watch:   config.WatchConfig{Enabled: true},
	}
}

func TestNew_DirStorageWatchesRoot(t *testing.T) {
	cfg := testConfig(t, storage.TypeDir)
	emitter := &service.MockEmitter{}
	a, err := New(cfg, zaptest.NewLogger(t), emitter)
	require.NoError(t, err)
	defer a.Shutdown()
	require.NotNil(t, a.watcher)

	// a note copied in by another tool
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.DataDir, "notes", "from-backup"), 0755))

	assert.Eventually(t, func() bool {
		for _, n := range a.Workspace().ListNotes() {
			if n.ID == "from-backup" {
				return true
			}
		}
		return false
	}, 3*time.Second, 20*time.Millisecond)
}

func TestNew_WatchDisabled(t *testing.T) {
	cfg := testConfig(t, storage.TypeDir)
	cfg.Watch.Enabled = false
	a, err := New(cfg, nil, nil)
	require.NoError(t, err)
	defer a.Shutdown()
	assert.Nil(t, a.watcher)
}

func TestShutdownSavesOpenPage(t *testing.T) {
	cfg := testConfig(t, storage.TypeSQLite)
	a, err := New(cfg, nil, nil)
	require.NoError(t, err)

	ws := a.Workspace()
	note := ws.CreateNote("Trip")
	_, err = ws.OpenNote(note.ID)
	require.NoError(t, err)
	_, err = ws.SaveDrawing([]byte("ink"))
	require.NoError(t, err)
	require.NoError(t, a.Shutdown())

	a, err = New(cfg, nil, nil)
	require.NoError(t, err)
	defer a.Shutdown()
	state, err := a.Workspace().OpenNote(note.ID)
	require.NoError(t, err)
	assert.Equal(t, "ink", string(state.Drawing))
	assert.Equal(t, "1 / 1", state.Counter)
}

func TestNew_BadPasswordSource(t *testing.T) {
	cfg := testConfig(t, storage.TypePostgres)
	cfg.Storage.PasswordSource = "vault"
	_, err := New(cfg, nil, nil)
	assert.Error(t, err)
}

func TestNew_UnknownStorage(t *testing.T) {
	_, err := New(testConfig(t, "tape"), nil, nil)
	assert.Error(t, err)
}
