package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/errs"
	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/mapping"
	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/resolve"
	"github.com/weaseltree/weaseltree/internal/ui/styles"
)

func newSyncCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   "Move the Windows side to the latest commit of the branch",
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `Check out the latest commit of the mapped branch on the Windows side.

The Windows checkout must be on a detached HEAD (as left by "clone"). The
checkout is forced and runs through git.exe, so local modifications on the
Windows side are discarded and Windows line endings apply.

Works from either side. With --all every mapping is synced.`,
		Example: `  weaseltree sync         # Sync the current mapping
  weaseltree sync --all   # Sync every mapping`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if all {
				return runSyncAll(ctx)
			}
			return runSync(ctx)
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Sync every mapping")

	return cmd
}

func runSync(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	loc, err := a.resolveOnly(ctx)
	if err != nil {
		return err
	}
	out := output.FromContext(ctx)

	if loc.Side == resolve.SideWindows {
		branch, err := a.git.CurrentBranch(ctx, loc.Dir)
		if err != nil {
			return err
		}
		if branch != "" {
			return notDetached()
		}
		if err := a.winGit.ForceDetachAt(ctx, loc.Dir, loc.Entry.Branch); err != nil {
			return fmt.Errorf("sync: %w", err)
		}
		out.Printf("Synced to latest '%s'\n", loc.Entry.Branch)
		return nil
	}

	if err := a.syncWindows(ctx, loc.Entry); err != nil {
		return err
	}
	out.Printf("Synced Windows side (%s) to latest '%s'\n", loc.Entry.WindowsPath, loc.Entry.Branch)
	return nil
}

func runSyncAll(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	out := output.FromContext(ctx)

	store, unlock, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	unlock()

	if store.Len() == 0 {
		out.Println("No mappings")
		return nil
	}

	var failed int
	for _, rel := range store.Keys() {
		e, _ := store.Get(rel)
		if !dirExists(e.WindowsPath) {
			out.Mark(styles.WarnSymbol(), rel, "Windows checkout missing")
			continue
		}
		if err := a.syncWindows(ctx, e); err != nil {
			failed++
			out.Mark(styles.FailSymbol(), rel, err.Error())
			continue
		}
		out.Mark(styles.OKSymbol(), rel, fmt.Sprintf("synced to latest '%s'", e.Branch))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d mappings failed to sync", failed, store.Len())
	}
	return nil
}

// syncWindows forces the Windows checkout of e onto the tip of its branch.
// A branch check that fails (git.exe missing, path gone) is left for the
// checkout to report.
func (a *app) syncWindows(ctx context.Context, e mapping.Entry) error {
	branch, err := a.winGit.CurrentBranch(ctx, e.WindowsPath)
	if err == nil && branch != "" {
		return notDetached()
	}
	if err != nil {
		log.FromContext(ctx).Debug("windows branch check failed", "path", e.WindowsPath, "err", err)
	}

	if err := a.winGit.ForceDetachAt(ctx, e.WindowsPath, e.Branch); err != nil {
		return fmt.Errorf("sync Windows side: %w", err)
	}
	return nil
}

func notDetached() error {
	return fmt.Errorf("%w. Run 'weaseltree clone' to fix", errs.ErrNotDetached)
}
