package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/cmd"
	"github.com/weaseltree/weaseltree/internal/resolve"
	"github.com/weaseltree/weaseltree/internal/wsl"
)

func newRunCmd() *cobra.Command {
	var here bool

	c := &cobra.Command{
		Use:     "run -- <command>",
		Short:   "Run a command on the other side",
		GroupID: GroupUtility,
		Long: `Run a command in the counterpart checkout.

From the WSL worktree the command runs in the Windows checkout through
cmd.exe /c. From the Windows checkout it runs in the WSL worktree. With
--here it runs in the checkout you are in, on the side it belongs to.`,
		Example: `  weaseltree run -- npm test            # Run tests on Windows from WSL
  weaseltree run -- dir                 # cmd.exe builtins work too
  weaseltree run --here -- git status   # Run in the current checkout root`,
		RunE: func(c *cobra.Command, args []string) error {
			dashIdx := c.ArgsLenAtDash()
			if dashIdx == -1 || len(args[dashIdx:]) == 0 {
				return fmt.Errorf("no command specified (use -- before command)")
			}
			if dashIdx > 0 {
				return fmt.Errorf("unexpected arguments before --: %v", args[:dashIdx])
			}
			return runRun(c.Context(), args[dashIdx:], here)
		},
	}

	c.Flags().BoolVar(&here, "here", false, "Run in the current checkout instead of the counterpart")

	return c
}

func runRun(ctx context.Context, command []string, here bool) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	loc, err := a.resolveOnly(ctx)
	if err != nil {
		return err
	}

	if here {
		return cmd.StreamContext(ctx, loc.Dir, command[0], command[1:]...)
	}

	dir := loc.Counterpart()
	if !dirExists(dir) {
		return fmt.Errorf("counterpart checkout not found: %s", dir)
	}

	if loc.Side == resolve.SideWSL {
		return wsl.RunWindows(ctx, a.cfg, dir, command)
	}
	return cmd.StreamContext(ctx, dir, command[0], command[1:]...)
}
