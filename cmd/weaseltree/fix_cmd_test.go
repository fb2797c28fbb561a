package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weaseltree/weaseltree/internal/mapping"
)

func TestFix(t *testing.T) {
	t.Parallel()

	t.Run("no issues", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t)

		require.Equal(t, 0, e.run(e.home, "fix"), e.stderr.String())
		assert.Contains(t, e.stdout.String(), "No issues found")
	})

	t.Run("report only issues need no confirmation", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t)
		e.put(t, "r/app", mapping.Entry{Branch: "main", WindowsPath: e.dir(t, "c", "r", "app"), WSLPath: "/nonexistent/r/app"})

		require.Equal(t, 0, e.run(e.home, "fix"), e.stderr.String())
		out := e.stdout.String()
		assert.Contains(t, out, "WSL worktree missing")
		assert.NotContains(t, out, "Fixed")
	})

	t.Run("prune with yes", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t)
		e.put(t, "r/dead", mapping.Entry{Branch: "x", WindowsPath: "/mnt/z/dead", WSLPath: "/nonexistent/dead"})

		require.Equal(t, 0, e.run(e.home, "fix", "--yes", "--prune"), e.stderr.String())
		assert.Contains(t, e.stdout.String(), "Fixed 1 issues.")
		assert.Equal(t, 0, e.store(t).Len())
	})

	t.Run("prune needs the flag", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t)
		e.put(t, "r/dead", mapping.Entry{Branch: "x", WindowsPath: "/mnt/z/dead", WSLPath: "/nonexistent/dead"})

		require.Equal(t, 0, e.run(e.home, "fix", "--yes"), e.stderr.String())
		assert.Contains(t, e.stdout.String(), "fix --prune")
		assert.Equal(t, 1, e.store(t).Len())
	})
}
