package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/errs"
	"github.com/weaseltree/weaseltree/internal/git"
	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/mapping"
	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/pathmap"
	"github.com/weaseltree/weaseltree/internal/resolve"
)

func newCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clone",
		Short:   "Create a WSL worktree mirroring the Windows checkout",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Create a git worktree in your WSL home mirroring the current Windows checkout.

Run inside a checkout on a Windows drive. The worktree is created at the same
path relative to your WSL home (/mnt/c/r/app becomes ~/r/app) on the branch
the Windows side has checked out. The Windows side is then detached so the
branch is free for the worktree.

If the worktree already exists it is switched to the Windows branch, or,
when the Windows side is already detached, its own branch is recorded.`,
		Example: `  cd /mnt/c/r/app && weaseltree clone   # Creates ~/r/app`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClone(cmd.Context())
		},
	}
	return cmd
}

func runClone(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	top := resolve.Toplevel(ctx, a.git, a.workDir)
	rel, ok := pathmap.RelativeFromDrive(top)
	if !ok {
		return fmt.Errorf("not under a Windows drive: %s", a.workDir)
	}
	if !git.IsRepo(top) {
		return fmt.Errorf("%w: %s", errs.ErrNotRepo, top)
	}

	return cloneCheckout(ctx, a, top, rel)
}

// cloneCheckout mirrors the Windows checkout top into the WSL home and
// records the mapping under rel.
func cloneCheckout(ctx context.Context, a *app, top, rel string) error {
	out := output.FromContext(ctx)
	target := pathmap.WSLTarget(a.wslHome, rel)

	var branch string
	if _, err := os.Stat(target); err == nil {
		branch, err = adoptWorktree(ctx, a, top, target)
		if err != nil {
			return err
		}
	} else {
		branch, err = a.git.CurrentBranch(ctx, top)
		if err != nil {
			return err
		}
		if branch == "" {
			return errs.ErrDetachedHead
		}

		if err := a.git.DetachHead(ctx, top); err != nil {
			return fmt.Errorf("detach Windows HEAD: %w", err)
		}
		out.Println("Detached HEAD on Windows side")

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
		if err := a.git.WorktreeAdd(ctx, top, target, branch); err != nil {
			return fmt.Errorf("create worktree: %w", err)
		}
		out.Printf("Created worktree at: %s on branch '%s'\n", target, branch)
	}

	store, unlock, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	// A checkout that was renamed on the drive leaves its old key behind.
	if old, found := store.FindByWindowsPath(top); found && old != rel {
		store.Delete(old)
		log.FromContext(ctx).Debug("dropped old mapping", "rel", old)
	}
	store.Put(rel, mapping.Entry{Branch: branch, WindowsPath: top, WSLPath: target})
	if err := store.Save(); err != nil {
		return err
	}
	out.Printf("Saved config to %s\n", store.Path())
	return nil
}

// adoptWorktree takes over an existing WSL worktree and returns the branch
// to record.
func adoptWorktree(ctx context.Context, a *app, top, target string) (string, error) {
	out := output.FromContext(ctx)

	if !git.IsRepo(target) {
		return "", fmt.Errorf("%w: %s", errs.ErrTargetNotWorktree, target)
	}

	winBranch, err := a.git.CurrentBranch(ctx, top)
	if err != nil {
		return "", err
	}

	if winBranch == "" {
		branch, err := a.git.CurrentBranch(ctx, target)
		if err != nil || branch == "" {
			return "", fmt.Errorf("could not determine branch from WSL worktree %s: %w", target, errs.ErrDetachedHead)
		}
		out.Printf("WSL worktree already exists: %s\n", target)
		return branch, nil
	}

	// git refuses to check out a branch held by another worktree, so the
	// Windows side lets go of it first.
	if err := a.git.DetachHead(ctx, top); err != nil {
		return "", fmt.Errorf("detach Windows HEAD: %w", err)
	}
	out.Println("Detached HEAD on Windows side")

	if err := a.git.Checkout(ctx, target, winBranch); err != nil {
		return "", fmt.Errorf("switch WSL worktree: %w", err)
	}
	out.Printf("Switched WSL worktree to branch '%s'\n", winBranch)
	return winBranch, nil
}
