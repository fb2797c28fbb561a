package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/errs"
	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/resolve"
	"github.com/weaseltree/weaseltree/internal/transfer"
)

func newUpCmd() *cobra.Command {
	var (
		dryRun  bool
		exclude []string
	)

	cmd := &cobra.Command{
		Use:     "up",
		Short:   "Copy uncommitted changes from WSL to Windows",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Copy the uncommitted changes of the WSL worktree into the Windows checkout.

Modified, added and untracked files are copied; deleted files are removed on
the Windows side; renames do both. Use this to try changes on Windows before
committing. Run it from the WSL worktree.`,
		Example: `  weaseltree up                    # Copy changes
  weaseltree up --dry-run          # Show what would be copied
  weaseltree up --exclude '*.log'  # Skip matching files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUp(cmd.Context(), transfer.Options{DryRun: dryRun, Exclude: exclude})
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "List changes without copying")
	cmd.Flags().StringSliceVarP(&exclude, "exclude", "e", nil, "Skip files matching pattern (repeatable)")

	return cmd
}

func runUp(ctx context.Context, opts transfer.Options) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	loc, err := a.resolveOnly(ctx)
	if err != nil {
		return err
	}
	if loc.Side != resolve.SideWSL {
		return fmt.Errorf("%w: run 'weaseltree up' from the WSL worktree", errs.ErrWrongSide)
	}

	out := output.FromContext(ctx)
	dst := loc.Entry.WindowsPath

	res, err := transfer.CopyChanges(ctx, a.git, loc.Dir, dst, opts)
	if res != nil {
		printTransfer(out, res)
	}
	if err != nil {
		return err
	}

	if res.Changes == 0 {
		out.Println("No changes to copy")
		return nil
	}

	verb := "Copied"
	if res.DryRun {
		verb = "Would copy"
	}
	out.Printf("%s %d file(s) to %s\n", verb, res.Copied, dst)
	if res.Deleted > 0 {
		if res.DryRun {
			out.Printf("Would delete %d file(s)\n", res.Deleted)
		} else {
			out.Printf("Deleted %d file(s)\n", res.Deleted)
		}
	}
	if res.Excluded > 0 {
		out.Printf("Excluded %d file(s)\n", res.Excluded)
	}
	return nil
}

func printTransfer(out *output.Printer, res *transfer.Result) {
	for _, f := range res.Files {
		switch f.Action {
		case transfer.ActionCopied:
			if f.New {
				out.Printf("  Copied: %s (new)\n", f.Path)
			} else {
				out.Printf("  Copied: %s\n", f.Path)
			}
		case transfer.ActionDeleted:
			out.Printf("  Deleted: %s\n", f.Path)
		}
	}
}
