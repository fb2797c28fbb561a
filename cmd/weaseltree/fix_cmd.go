package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/doctor"
	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/ui/prompt"
)

// stdinIsTerminal decides whether fix may prompt.
var stdinIsTerminal = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func newFixCmd() *cobra.Command {
	var (
		yes   bool
		prune bool
	)

	cmd := &cobra.Command{
		Use:     "fix",
		Short:   "Check all mappings and repair what is broken",
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `Check every mapping against both checkouts.

Reports checkouts that are gone, branches recorded wrong and Windows
checkouts that are no longer detached. Fixes are applied after confirmation,
or directly with --yes. Mappings whose checkouts are both gone are only
dropped with --prune.`,
		Example: `  weaseltree fix                # Report and ask before fixing
  weaseltree fix --yes          # Fix without asking
  weaseltree fix --yes --prune  # Also drop dead mappings`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd.Context(), yes, prune)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply fixes without asking")
	cmd.Flags().BoolVar(&prune, "prune", false, "Drop mappings whose checkouts are both gone")

	return cmd
}

func runFix(ctx context.Context, yes, prune bool) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	out := output.FromContext(ctx)

	store, unlock, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	issues := doctor.Check(a.doctorEnv(), store)
	unlock()

	doctor.PrintIssues(ctx, store.Len(), issues)

	fixable := 0
	for _, i := range issues {
		if i.Fixable(prune) {
			fixable++
		}
	}
	if fixable == 0 {
		return nil
	}

	if !yes {
		if !stdinIsTerminal() {
			out.Println("\nRun 'weaseltree fix --yes' to apply fixes.")
			return nil
		}
		res, err := prompt.Confirm(fmt.Sprintf("Apply %d fixes?", fixable))
		if err != nil {
			return err
		}
		if !res.Confirmed {
			out.Println("\nNo changes made.")
			return nil
		}
	}

	// The prompt ran without the lock; check again before changing anything.
	store, unlock, err = a.openStore(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	results := doctor.Fix(ctx, a.doctorEnv(), store, doctor.Check(a.doctorEnv(), store), prune)
	if err := store.Save(); err != nil {
		return err
	}

	out.Println()
	doctor.PrintResults(ctx, results)
	if doctor.Failed(results) {
		return fmt.Errorf("some fixes failed")
	}
	return nil
}
