package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/errs"
	"github.com/weaseltree/weaseltree/internal/git"
	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/pathmap"
	"github.com/weaseltree/weaseltree/internal/resolve"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   "Show commands and the status of the current checkout",
		Aliases: []string{"st"},
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Show the available commands and how the current directory maps.

Same as running weaseltree without arguments. Stale mappings found while
resolving the current directory are repaired and reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}
	return cmd
}

func runStatus(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := output.FromContext(ctx)

	printCommandSummary(out, cmd.Root())

	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	head, err := git.ReadHead(a.workDir)
	if err != nil {
		if errors.Is(err, errs.ErrNotRepo) {
			out.Println("Status: Not a git repository")
			return nil
		}
		return err
	}

	out.Println("Status:")
	if head.Detached() {
		out.Field("Branch", fmt.Sprintf("(detached HEAD at %s)", head.Short()))
	} else {
		out.Field("Branch", head.Branch)
	}

	return printLocation(ctx, a)
}

func printCommandSummary(out *output.Printer, root *cobra.Command) {
	out.Println("weaseltree - WSL git worktree helper")
	out.Println()
	out.Println("Commands:")
	for _, c := range root.Commands() {
		if c.GroupID != GroupCore || !c.IsAvailableCommand() {
			continue
		}
		out.Printf("  %-6s %s\n", c.Name(), c.Short)
	}
	out.Println()
}

func printLocation(ctx context.Context, a *app) error {
	out := output.FromContext(ctx)
	top := resolve.Toplevel(ctx, a.git, a.workDir)

	loc, err := a.resolveOnly(ctx)
	var noMapping *errs.NoMappingError
	switch {
	case err == nil:
	case errors.As(err, &noMapping):
		out.Field("Relative path", noMapping.RelPath)
		out.Field("Mapping", "(none, run 'weaseltree clone')")
		if len(noMapping.Suggestions) > 0 {
			out.Field("Did you mean", strings.Join(noMapping.Suggestions, ", "))
		}
		printWSLTarget(out, pathmap.WSLTarget(a.wslHome, noMapping.RelPath))
		return nil
	case errors.Is(err, errs.ErrNotManaged):
		out.Field("Path", top+" (not managed by weaseltree)")
		return nil
	default:
		return err
	}

	out.Field("Relative path", loc.Rel)
	out.Field("Mapped branch", loc.Entry.Branch)
	out.Field("Windows path", loc.Entry.WindowsPath)
	if loc.Side == resolve.SideWSL {
		out.Field("WSL worktree", loc.Dir)
		return nil
	}
	printWSLTarget(out, loc.Entry.WSLPath)
	return nil
}

func printWSLTarget(out *output.Printer, target string) {
	if dirExists(target) {
		out.Field("WSL worktree", target)
		return
	}
	out.Field("WSL worktree", "(not created)")
}
