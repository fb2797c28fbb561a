package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/weaseltree/weaseltree/internal/cmd"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// Client runs one git binary.
type Client struct {
	bin string
}

// New returns a client for bin ("git", "git.exe", ...).
func New(bin string) *Client {
	if bin == "" {
		bin = "git"
	}
	return &Client{bin: bin}
}

func (c *Client) run(ctx context.Context, dir string, args ...string) error {
	return cmd.RunContext(ctx, dir, c.bin, args...)
}

func (c *Client) output(ctx context.Context, dir string, args ...string) (string, error) {
	out, err := cmd.OutputContext(ctx, dir, c.bin, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func (c *Client) stream(ctx context.Context, dir string, args ...string) error {
	return cmd.StreamContext(ctx, dir, c.bin, args...)
}

// CheckGit verifies that the client's binary is in PATH.
func (c *Client) CheckGit() error {
	if _, err := exec.LookPath(c.bin); err != nil {
		if c.bin == "git" {
			return ErrGitNotFound
		}
		return fmt.Errorf("%s not found in PATH", c.bin)
	}
	return nil
}

// CurrentBranch returns the branch checked out in dir, or "" when HEAD is
// detached.
func (c *Client) CurrentBranch(ctx context.Context, dir string) (string, error) {
	branch, err := c.output(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	if branch == "HEAD" {
		return "", nil
	}
	return branch, nil
}

// Toplevel returns the root of the checkout containing dir.
func (c *Client) Toplevel(ctx context.Context, dir string) (string, error) {
	return c.output(ctx, dir, "rev-parse", "--show-toplevel")
}

// CommonDir returns the absolute git directory shared by every worktree of
// the repository containing dir.
func (c *Client) CommonDir(ctx context.Context, dir string) (string, error) {
	return c.output(ctx, dir, "rev-parse", "--path-format=absolute", "--git-common-dir")
}

// Checkout switches dir to branch.
func (c *Client) Checkout(ctx context.Context, dir, branch string) error {
	return c.run(ctx, dir, "checkout", branch)
}

// DetachHead detaches HEAD in dir at the current commit, freeing the branch
// for another worktree.
func (c *Client) DetachHead(ctx context.Context, dir string) error {
	return c.run(ctx, dir, "checkout", "--detach")
}

// ForceDetachAt moves a detached HEAD in dir to the tip of ref, discarding
// local modifications.
func (c *Client) ForceDetachAt(ctx context.Context, dir, ref string) error {
	return c.run(ctx, dir, "checkout", "--force", "--detach", ref)
}

// WorktreeAdd creates a worktree at path on an existing branch.
func (c *Client) WorktreeAdd(ctx context.Context, dir, path, branch string) error {
	return c.run(ctx, dir, "worktree", "add", path, branch)
}

// Push pushes branch to remote. Progress and credential prompts reach the
// terminal.
func (c *Client) Push(ctx context.Context, dir, remote, branch string) error {
	return c.stream(ctx, dir, "push", remote, branch)
}

// Fetch fetches remote.
func (c *Client) Fetch(ctx context.Context, dir, remote string) error {
	return c.stream(ctx, dir, "fetch", remote)
}

// MergeFFOnly fast-forwards the checked out branch in dir to ref.
func (c *Client) MergeFFOnly(ctx context.Context, dir, ref string) error {
	return c.run(ctx, dir, "merge", "--ff-only", ref)
}

// Status returns the changed, added, deleted and untracked files in dir.
func (c *Client) Status(ctx context.Context, dir string) ([]StatusEntry, error) {
	out, err := cmd.OutputContext(ctx, dir, c.bin, "status", "--porcelain", "-z", "--untracked-files=all")
	if err != nil {
		return nil, err
	}
	return ParseStatus(out)
}

// IsRepo reports whether path is the top of a checkout. Worktrees have a
// .git file instead of a directory; both count.
func IsRepo(path string) bool {
	_, err := os.Stat(filepath.Join(path, ".git"))
	return err == nil
}
