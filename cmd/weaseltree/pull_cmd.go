package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/output"
)

func newPullCmd() *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:     "pull",
		Short:   "Fetch, fast-forward the WSL worktree and sync Windows",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Update both sides from the remote.

Fetches through git.exe in the Windows checkout, fast-forwards the WSL
worktree to <remote>/<branch> and then syncs the Windows side. Diverged
branches are not merged; the fast-forward fails instead.

Works from either side.`,
		Example: `  weaseltree pull                 # Pull from the configured remote
  weaseltree pull --remote upstream`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPull(cmd.Context(), remote)
		},
	}

	cmd.Flags().StringVarP(&remote, "remote", "r", "", "Remote to fetch from (default from config)")

	return cmd
}

func runPull(ctx context.Context, remoteFlag string) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	loc, err := a.resolveOnly(ctx)
	if err != nil {
		return err
	}
	out := output.FromContext(ctx)
	remote := a.remote(remoteFlag)
	e := loc.Entry

	if !dirExists(e.WSLPath) {
		return fmt.Errorf("WSL worktree not found: %s. Run 'weaseltree clone' first", e.WSLPath)
	}

	if err := a.winGit.Fetch(ctx, e.WindowsPath, remote); err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	ref := remote + "/" + e.Branch
	if err := a.git.MergeFFOnly(ctx, e.WSLPath, ref); err != nil {
		return fmt.Errorf("fast-forward to %s: %w", ref, err)
	}
	out.Printf("Fast-forwarded '%s' to %s\n", e.Branch, ref)

	if err := a.syncWindows(ctx, e); err != nil {
		return err
	}
	out.Printf("Synced Windows side (%s) to latest '%s'\n", e.WindowsPath, e.Branch)
	return nil
}
