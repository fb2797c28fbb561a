package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/weaseltree/weaseltree/internal/cmd"
	"github.com/weaseltree/weaseltree/internal/config"
	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/mapping"
	"github.com/weaseltree/weaseltree/internal/output"
)

// testEnv runs the command tree against a temp WSL home, a temp mapping
// file and mocked subprocesses.
type testEnv struct {
	root        string
	home        string
	mappingPath string
	cfg         *config.Config
	mock        *cmd.Mock
	stdout      bytes.Buffer
	stderr      bytes.Buffer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := resolvePath(t, t.TempDir())
	home := filepath.Join(root, "home")
	require.NoError(t, os.MkdirAll(home, 0o755))

	cfg := config.Default()
	cfg.WSLHome = home
	cfg.MappingFile = filepath.Join(root, config.MappingFileName)

	return &testEnv{
		root:        root,
		home:        home,
		mappingPath: cfg.MappingFile,
		cfg:         &cfg,
		mock:        cmd.NewMock(),
	}
}

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return resolved
}

// dir creates a directory below the env root.
func (e *testEnv) dir(t *testing.T, parts ...string) string {
	t.Helper()
	p := filepath.Join(append([]string{e.root}, parts...)...)
	require.NoError(t, os.MkdirAll(p, 0o755))
	return p
}

// worktree creates the WSL worktree directory for rel.
func (e *testEnv) worktree(t *testing.T, rel string) string {
	t.Helper()
	p := filepath.Join(e.home, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(p, 0o755))
	return p
}

func (e *testEnv) put(t *testing.T, rel string, entry mapping.Entry) {
	t.Helper()
	s, err := mapping.Load(e.mappingPath)
	require.NoError(t, err)
	s.Put(rel, entry)
	require.NoError(t, s.Save())
}

func (e *testEnv) store(t *testing.T) *mapping.Store {
	t.Helper()
	s, err := mapping.Load(e.mappingPath)
	require.NoError(t, err)
	return s
}

func (e *testEnv) context(workDir string) context.Context {
	ctx := context.Background()
	ctx = log.WithLogger(ctx, log.New(&e.stderr, false, false))
	ctx = output.WithPrinter(ctx, &e.stdout)
	ctx = config.WithConfig(ctx, e.cfg)
	ctx = config.WithWorkDir(ctx, workDir)
	return cmd.WithExecutor(ctx, e.mock)
}

// run executes weaseltree in workDir and returns the exit code.
func (e *testEnv) run(workDir string, args ...string) int {
	return executeContext(e.context(workDir), args, &e.stderr)
}

// calledIn reports whether a command line starting with name and args ran
// in dir.
func (e *testEnv) calledIn(dir, name string, args ...string) bool {
	want := cmd.Call{Name: name, Args: args}.String()
	for _, c := range e.mock.Calls() {
		if c.Dir == dir && strings.HasPrefix(c.String(), want) {
			return true
		}
	}
	return false
}

func onBranch(m *cmd.Mock, dir, bin, branch string) {
	m.OnDir(dir, bin, []string{"rev-parse", "--abbrev-ref", "HEAD"}, cmd.Response{Stdout: branch + "\n"})
}
