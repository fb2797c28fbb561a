package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/resolve"
)

func newPushCmd() *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:     "push",
		Short:   "Push the mapped branch",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Push the mapped branch to the remote.

From the WSL worktree the push runs through git.exe in the Windows checkout,
so Windows remotes and credential helpers are used. Both checkouts share
their refs, so the pushed branch is the one committed in WSL.`,
		Example: `  weaseltree push                # Push to the configured remote
  weaseltree push --remote fork  # Push to another remote`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(cmd.Context(), remote)
		},
	}

	cmd.Flags().StringVarP(&remote, "remote", "r", "", "Remote to push to (default from config)")

	return cmd
}

func runPush(ctx context.Context, remoteFlag string) error {
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
	branch := loc.Entry.Branch

	if loc.Side == resolve.SideWindows {
		if err := a.git.Push(ctx, loc.Dir, remote, branch); err != nil {
			return fmt.Errorf("push: %w", err)
		}
		out.Printf("Pushed '%s' to %s\n", branch, remote)
		return nil
	}

	if err := a.winGit.Push(ctx, loc.Entry.WindowsPath, remote, branch); err != nil {
		return fmt.Errorf("push: %w", err)
	}
	out.Printf("Pushed '%s' to %s (via Windows)\n", branch, remote)
	return nil
}
