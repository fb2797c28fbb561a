//go:build integration

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weaseltree/weaseltree/internal/cmd"
	"github.com/weaseltree/weaseltree/internal/config"
	"github.com/weaseltree/weaseltree/internal/git"
	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/output"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	if err := cmd.RunContext(context.Background(), dir, "git", args...); err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
}

// setupWindowsRepo creates a repo standing in for the drive checkout, on
// main with one commit and a second branch "feature".
func setupWindowsRepo(t *testing.T, e *testEnv) string {
	t.Helper()
	repo := filepath.Join(e.root, "c", "r", "app")
	runGit(t, "", "init", "-b", "main", repo)
	runGit(t, repo, "config", "user.email", "test@test.com")
	runGit(t, repo, "config", "user.name", "Test User")
	runGit(t, repo, "config", "commit.gpgsign", "false")
	require.NoError(t, os.WriteFile(filepath.Join(repo, "README.md"), []byte("# app\n"), 0o644))
	runGit(t, repo, "add", "README.md")
	runGit(t, repo, "commit", "-m", "Initial commit")
	runGit(t, repo, "branch", "feature")
	return repo
}

// cloneWith runs the clone logic with real git for both sides.
func cloneWith(t *testing.T, e *testEnv, top string) error {
	t.Helper()
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(&e.stderr, false, false))
	ctx = output.WithPrinter(ctx, &e.stdout)
	ctx = config.WithConfig(ctx, e.cfg)

	a := &app{
		cfg:         e.cfg,
		workDir:     top,
		wslHome:     e.home,
		mappingPath: e.mappingPath,
		git:         git.New("git"),
		winGit:      git.New("git"),
	}
	return cloneCheckout(ctx, a, top, "r/app")
}

func TestClone_CreatesWorktree(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	win := setupWindowsRepo(t, e)
	target := filepath.Join(e.home, "r", "app")

	require.NoError(t, cloneWith(t, e, win))

	out := e.stdout.String()
	assert.Contains(t, out, "Detached HEAD on Windows side")
	assert.Contains(t, out, "Created worktree at: "+target+" on branch 'main'")
	assert.Contains(t, out, "Saved config to "+e.mappingPath)

	winHead, err := git.ReadHead(win)
	require.NoError(t, err)
	assert.True(t, winHead.Detached())

	wslHead, err := git.ReadHead(target)
	require.NoError(t, err)
	assert.Equal(t, "main", wslHead.Branch)

	entry, ok := e.store(t).Get("r/app")
	require.True(t, ok)
	assert.Equal(t, "main", entry.Branch)
	assert.Equal(t, win, entry.WindowsPath)
	assert.Equal(t, target, entry.WSLPath)
}

func TestClone_DetachedWithoutWorktree(t *testing.T) {
	t.Parallel()
	e := newTestEnv(t)
	win := setupWindowsRepo(t, e)
	runGit(t, win, "checkout", "--detach")

	err := cloneWith(t, e, win)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "detached HEAD")
	assert.Equal(t, 0, e.store(t).Len())
}

func TestClone_ExistingWorktree(t *testing.T) {
	t.Parallel()

	t.Run("windows detached keeps worktree branch", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t)
		win := setupWindowsRepo(t, e)
		require.NoError(t, cloneWith(t, e, win))
		target := filepath.Join(e.home, "r", "app")
		runGit(t, target, "checkout", "feature")

		e.stdout.Reset()
		require.NoError(t, cloneWith(t, e, win))
		assert.Contains(t, e.stdout.String(), "WSL worktree already exists: "+target)

		entry, _ := e.store(t).Get("r/app")
		assert.Equal(t, "feature", entry.Branch)
	})

	t.Run("windows on a branch hands it over", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t)
		win := setupWindowsRepo(t, e)
		require.NoError(t, cloneWith(t, e, win))
		target := filepath.Join(e.home, "r", "app")
		runGit(t, win, "checkout", "feature")

		e.stdout.Reset()
		require.NoError(t, cloneWith(t, e, win))
		out := e.stdout.String()
		assert.Contains(t, out, "Detached HEAD on Windows side")
		assert.Contains(t, out, "Switched WSL worktree to branch 'feature'")

		wslHead, err := git.ReadHead(target)
		require.NoError(t, err)
		assert.Equal(t, "feature", wslHead.Branch)

		entry, _ := e.store(t).Get("r/app")
		assert.Equal(t, "feature", entry.Branch)
	})

	t.Run("target is not a worktree", func(t *testing.T) {
		t.Parallel()
		e := newTestEnv(t)
		win := setupWindowsRepo(t, e)
		e.worktree(t, "r/app")

		err := cloneWith(t, e, win)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "target exists but is not a git worktree")
	})
}
