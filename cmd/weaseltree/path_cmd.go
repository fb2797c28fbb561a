package main

import (
	"context"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/pathmap"
)

func newPathCmd() *cobra.Command {
	var (
		copyToClipboard bool
		native          bool
	)

	cmd := &cobra.Command{
		Use:     "path",
		Short:   "Print the counterpart checkout path",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Print the path of the checkout on the other side.

From the WSL worktree this is the Windows checkout, from the Windows checkout
the WSL worktree. --native prints Windows paths in C:\ form.`,
		Example: `  cd "$(weaseltree path)"        # Jump to the other side
  weaseltree path --native --copy  # Copy C:\r\app to the clipboard`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPath(cmd.Context(), copyToClipboard, native)
		},
	}

	cmd.Flags().BoolVar(&copyToClipboard, "copy", false, "Copy path to clipboard")
	cmd.Flags().BoolVar(&native, "native", false, "Print Windows paths in drive-letter form")

	return cmd
}

func runPath(ctx context.Context, copyToClipboard, native bool) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	loc, err := a.resolveOnly(ctx)
	if err != nil {
		return err
	}

	target := loc.Counterpart()
	if native {
		target = pathmap.ToWindows(target)
	}

	if copyToClipboard {
		if err := clipboard.WriteAll(target); err != nil {
			log.FromContext(ctx).Printf("Warning: failed to copy to clipboard: %v\n", err)
		}
	}

	output.FromContext(ctx).Println(target)
	return nil
}
