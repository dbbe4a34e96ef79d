package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirStore_Layout(t *testing.T) {
	root := t.TempDir()
	s, err := NewDirStore(root)
	require.NoError(t, err)

	require.NoError(t, s.CreateNamespace("n1"))
	require.NoError(t, s.WriteName("n1", "Trip"))
	require.NoError(t, s.WritePage("n1", 0, []byte{0x01, 0x02}))
	require.NoError(t, s.WritePage("n1", 12, []byte{0x03}))

	name, err := os.ReadFile(filepath.Join(root, "n1", "name"))
	require.NoError(t, err)
	assert.Equal(t, "Trip", string(name))

	page, err := os.ReadFile(filepath.Join(root, "n1", "page_12"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03}, page)

	entries, err := os.ReadDir(filepath.Join(root, "n1"))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasPrefix(e.Name(), "."), "temp file left behind: %s", e.Name())
	}
}

func TestDirStore_ListSkipsFilesAndHiddenDirs(t *testing.T) {
	root := t.TempDir()
	s, err := NewDirStore(root)
	require.NoError(t, err)

	require.NoError(t, s.CreateNamespace("n1"))
	require.NoError(t, os.WriteFile(filepath.Join(root, "stray.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".trash-old"), 0755))

	ids, err := s.ListNoteIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"n1"}, ids)
}

func TestDirStore_CountPagesIgnoresOtherFiles(t *testing.T) {
	root := t.TempDir()
	s, err := NewDirStore(root)
	require.NoError(t, err)
	require.NoError(t, s.CreateNamespace("n1"))

	dir := filepath.Join(root, "n1")
	for _, f := range []string{"page_0", "page_1", "page_01", "page_x", "page_", ".page_2.tmp-1", "name"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0644))
	}

	n, err := s.CountPages("n1")
	require.NoError(t, err)
	// page_01 is a second spelling of index 1
	assert.Equal(t, 2, n)
}

func TestDirStore_DeleteLeavesNoTrash(t *testing.T) {
	root := t.TempDir()
	s, err := NewDirStore(root)
	require.NoError(t, err)
	require.NoError(t, s.CreateNamespace("n1"))
	require.NoError(t, s.WritePage("n1", 0, []byte("ink")))

	require.NoError(t, s.DeleteNamespace("n1"))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParsePageFile(t *testing.T) {
	cases := map[string]struct {
		idx int
		ok  bool
	}{
		"page_0":   {0, true},
		"page_42":  {42, true},
		"page_007": {7, true},
		"page_-1":  {0, false},
		"page_1a":  {0, false},
		"page_":    {0, false},
		"name":     {0, false},
	}
	for in, want := range cases {
		idx, ok := parsePageFile(in)
		assert.Equal(t, want.ok, ok, in)
		if ok {
			assert.Equal(t, want.idx, idx, in)
		}
	}
}
