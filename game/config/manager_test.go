package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestManagerLoadAndCache(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "game.yaml"),
		[]byte("user:\n  speed: 3.5\n"), 0o644))

	m, err := NewManager(dir)
	require.NoError(t, err)

	doc, err := m.Load("game")
	require.NoError(t, err)
	_, ok := doc.Root.Get("user")
	require.True(t, ok)

	// Cached: same pointer on the second load.
	again, err := m.Load("game")
	require.NoError(t, err)
	require.Same(t, doc, again)

	// Refresh drops the cache.
	m.Refresh()
	fresh, err := m.Load("game")
	require.NoError(t, err)
	require.NotSame(t, doc, fresh)
}

func TestManagerLoadMissing(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = m.Load("absent")
	require.ErrorIs(t, err, ErrDocumentNotFound)
}

func TestManagerMissingDirectory(t *testing.T) {
	_, err := NewManager(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestManagerList(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("no"), 0o644))

	m, err := NewManager(dir)
	require.NoError(t, err)

	names, err := m.List()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, names)
}
