package transfer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/weaseltree/weaseltree/internal/cmd"
	"github.com/weaseltree/weaseltree/internal/git"
)

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	if err := cmd.RunContext(context.Background(), dir, "git", args...); err != nil {
		t.Fatalf("git %v: %v", args, err)
	}
}

func write(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func read(t *testing.T, root, rel string) (string, bool) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	if err != nil {
		return "", false
	}
	return string(data), true
}

// setupPair creates a committed repo (src) and a plain copy of its
// committed files (dst), like a Windows checkout detached at the same
// commit.
func setupPair(t *testing.T) (src, dst string) {
	t.Helper()
	tmp := t.TempDir()
	src = filepath.Join(tmp, "wsl")
	dst = filepath.Join(tmp, "windows")

	runGit(t, "", "init", "-b", "main", src)
	runGit(t, src, "config", "user.email", "test@test.com")
	runGit(t, src, "config", "user.name", "Test User")
	runGit(t, src, "config", "commit.gpgsign", "false")

	files := map[string]string{
		"README.md":     "# app\n",
		"src/main.go":   "package main\n",
		"src/old.go":    "package old\n",
		"docs/guide.md": "guide\n",
	}
	for rel, content := range files {
		write(t, src, rel, content)
		write(t, dst, rel, content)
	}
	runGit(t, src, "add", ".")
	runGit(t, src, "commit", "-m", "init")
	return src, dst
}

func TestCopyChanges(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	src, dst := setupPair(t)

	write(t, src, "src/main.go", "package main // changed\n")
	write(t, src, "new/untracked.txt", "fresh\n")
	if err := os.Remove(filepath.Join(src, "docs", "guide.md")); err != nil {
		t.Fatal(err)
	}
	runGit(t, src, "mv", "src/old.go", "src/renamed.go")

	res, err := CopyChanges(ctx, git.New("git"), src, dst, Options{})
	if err != nil {
		t.Fatalf("CopyChanges() error = %v", err)
	}

	if got, _ := read(t, dst, "src/main.go"); got != "package main // changed\n" {
		t.Errorf("modified file not copied: %q", got)
	}
	if got, ok := read(t, dst, "new/untracked.txt"); !ok || got != "fresh\n" {
		t.Errorf("untracked file not copied: %q, %v", got, ok)
	}
	if _, ok := read(t, dst, "docs/guide.md"); ok {
		t.Error("deleted file still present in destination")
	}
	if _, ok := read(t, dst, "src/renamed.go"); !ok {
		t.Error("renamed file missing in destination")
	}
	if _, ok := read(t, dst, "src/old.go"); ok {
		t.Error("rename source still present in destination")
	}
	if got, _ := read(t, dst, "README.md"); got != "# app\n" {
		t.Errorf("unchanged file touched: %q", got)
	}

	if res.Copied != 3 || res.Deleted != 2 {
		t.Errorf("Copied=%d Deleted=%d, want 3 and 2 (files: %+v)", res.Copied, res.Deleted, res.Files)
	}

	for _, f := range res.Files {
		wantNew := f.Path == "new/untracked.txt"
		if f.New != wantNew {
			t.Errorf("%s: New = %v, want %v", f.Path, f.New, wantNew)
		}
	}
}

func TestCopyChanges_Clean(t *testing.T) {
	t.Parallel()
	src, dst := setupPair(t)

	res, err := CopyChanges(context.Background(), git.New("git"), src, dst, Options{})
	if err != nil {
		t.Fatalf("CopyChanges() error = %v", err)
	}
	if res.Changes != 0 || len(res.Files) != 0 {
		t.Errorf("clean checkout produced %+v", res)
	}
}

func TestCopyChanges_DryRun(t *testing.T) {
	t.Parallel()
	src, dst := setupPair(t)

	write(t, src, "src/main.go", "changed\n")
	if err := os.Remove(filepath.Join(src, "README.md")); err != nil {
		t.Fatal(err)
	}

	res, err := CopyChanges(context.Background(), git.New("git"), src, dst, Options{DryRun: true})
	if err != nil {
		t.Fatalf("CopyChanges() error = %v", err)
	}
	if !res.DryRun || res.Copied != 1 || res.Deleted != 1 {
		t.Errorf("dry run result = %+v", res)
	}
	if got, _ := read(t, dst, "src/main.go"); got != "package main\n" {
		t.Errorf("dry run wrote %q", got)
	}
	if _, ok := read(t, dst, "README.md"); !ok {
		t.Error("dry run deleted a file")
	}
}

func TestCopyChanges_Exclude(t *testing.T) {
	t.Parallel()
	src, dst := setupPair(t)

	write(t, src, "build/out.bin", "bin")
	write(t, src, "debug.log", "log")
	write(t, src, "keep.txt", "keep")

	res, err := CopyChanges(context.Background(), git.New("git"), src, dst, Options{Exclude: []string{"build", "*.log"}})
	if err != nil {
		t.Fatalf("CopyChanges() error = %v", err)
	}
	if res.Copied != 1 || res.Excluded != 2 {
		t.Errorf("result = %+v, want 1 copied and 2 excluded", res)
	}
	if _, ok := read(t, dst, "build/out.bin"); ok {
		t.Error("excluded file was copied")
	}
}

func TestCopyChanges_StatusFails(t *testing.T) {
	t.Parallel()

	mock := cmd.NewMock().OnPrefix("git", []string{"status"}, cmd.Response{Err: cmd.ErrExit, Stderr: "fatal: not a git repository"})
	ctx := cmd.WithExecutor(context.Background(), mock)

	_, err := CopyChanges(ctx, git.New("git"), "/home/me/r/app", "/mnt/c/r/app", Options{})
	if err == nil || !strings.Contains(err.Error(), "not a git repository") {
		t.Errorf("error = %v, want git status failure", err)
	}
}

func TestCopyChanges_RejectsEscapingPaths(t *testing.T) {
	t.Parallel()

	mock := cmd.NewMock().OnPrefix("git", []string{"status"}, cmd.Response{Stdout: "?? ../../etc/evil\x00"})
	ctx := cmd.WithExecutor(context.Background(), mock)
	dst := t.TempDir()

	_, err := CopyChanges(ctx, git.New("git"), t.TempDir(), dst, Options{})
	if err == nil || !strings.Contains(err.Error(), "escapes") {
		t.Errorf("error = %v, want escape rejection", err)
	}
}
