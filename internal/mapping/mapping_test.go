package mapping

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStore(t *testing.T) *Store {
	t.Helper()
	s, err := Load(filepath.Join(t.TempDir(), ".weaseltree.json"))
	require.NoError(t, err)
	s.Put("r/app", Entry{Branch: "main", WindowsPath: "/mnt/c/r/app", WSLPath: "/home/me/r/app"})
	s.Put("r/lib", Entry{Branch: "feature-x", WindowsPath: "/mnt/c/r/lib", WSLPath: "/home/me/r/lib"})
	s.Put("src/lib", Entry{Branch: "feature-x", WindowsPath: "/mnt/d/src/lib", WSLPath: "/home/me/src/lib"})
	return s
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".weaseltree.json")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}

func TestLoad_Corrupt(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".weaseltree.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "parse mapping file")
}

func TestLoad_FutureVersion(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".weaseltree.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 9, "worktrees": {}}`), 0o644))
	_, err := Load(path)
	assert.ErrorContains(t, err, "version 9")
}

func TestSaveLoad(t *testing.T) {
	t.Parallel()
	s := sampleStore(t)
	require.NoError(t, s.Save())

	loaded, err := Load(s.Path())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Version)
	assert.Equal(t, s.Keys(), loaded.Keys())

	e, ok := loaded.Get("r/lib")
	require.True(t, ok)
	assert.Equal(t, "feature-x", e.Branch)
	assert.Equal(t, "/home/me/r/lib", e.WSLPath)
	assert.False(t, e.UpdatedAt.IsZero())
}

func TestFind(t *testing.T) {
	t.Parallel()
	s := sampleStore(t)

	key, ok := s.FindByWSLPath("/home/me/r/lib/")
	assert.True(t, ok)
	assert.Equal(t, "r/lib", key)

	key, ok = s.FindByWindowsPath(`C:\r\APP`)
	assert.True(t, ok)
	assert.Equal(t, "r/app", key)

	_, ok = s.FindByWSLPath("/home/me/elsewhere")
	assert.False(t, ok)

	assert.Equal(t, []string{"r/lib", "src/lib"}, s.FindByBranch("feature-x"))
	assert.Empty(t, s.FindByBranch("nope"))
}

func TestRekeyDelete(t *testing.T) {
	t.Parallel()
	s := sampleStore(t)

	require.NoError(t, s.Rekey("r/app", "r/app2"))
	_, ok := s.Get("r/app")
	assert.False(t, ok)
	e, ok := s.Get("r/app2")
	assert.True(t, ok)
	assert.Equal(t, "main", e.Branch)

	assert.ErrorContains(t, s.Rekey("r/lib", "src/lib"), "already exists")
	assert.ErrorContains(t, s.Rekey("missing", "x"), "no mapping")

	assert.True(t, s.Delete("r/lib"))
	assert.False(t, s.Delete("r/lib"))
	assert.Equal(t, []string{"r/app2", "src/lib"}, s.Keys())
}

func TestOpen_SerializesWriters(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".weaseltree.json")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, unlock, err := Open(ctx, path)
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()
			s.Put(filepath.ToSlash(filepath.Join("r", string(rune('a'+i)))), Entry{Branch: "main"})
			assert.NoError(t, s.Save())
		}()
	}
	wg.Wait()

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, s.Len(), "every writer's entry must survive")
}

func TestOpen_Cancelled(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), ".weaseltree.json")

	_, unlock, err := Open(context.Background(), path)
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = Open(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}
