package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/config"
	"github.com/weaseltree/weaseltree/internal/git"
	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupCore    = "core"
	GroupUtility = "utility"
	GroupConfig  = "config"
)

// newRootCmd builds the command tree. Running it without a subcommand
// shows the command summary and the current status.
func newRootCmd() *cobra.Command {
	var (
		verbose bool
		quiet   bool
	)

	root := &cobra.Command{
		Use:   "weaseltree",
		Short: "Mirror a Windows git checkout into a WSL worktree",
		Long: `weaseltree keeps a git worktree in your WSL home that mirrors a checkout on a
Windows drive. You edit and commit in WSL; the Windows checkout stays on a
detached HEAD that "sync" moves to the latest commit of the branch, using
git.exe so Windows line endings and credentials apply.

  /mnt/c/r/app  (Windows, detached)  <->  ~/r/app  (WSL worktree, on branch)

Mappings are stored in <windows home>/.weaseltree.json, shared by both sides.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		Args:                       cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip git check for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}

			ctx := cmd.Context()
			if verbose || quiet {
				ctx = log.WithLogger(ctx, log.FromContext(ctx).WithFlags(verbose, quiet))
				cmd.SetContext(ctx)
			}

			if config.FromContext(ctx).ASCII {
				styles.SetASCII(true)
			}

			if cmd.Annotations[annotationNoGit] == "true" {
				return nil
			}
			return git.New("git").CheckGit()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupUtility, Title: "Utility Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	// Core commands
	root.AddCommand(newCloneCmd())
	root.AddCommand(newSyncCmd())
	root.AddCommand(newUpCmd())
	root.AddCommand(newPushCmd())
	root.AddCommand(newPullCmd())

	// Utility commands
	root.AddCommand(newStatusCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newRunCmd())
	root.AddCommand(newPathCmd())
	root.AddCommand(newFixCmd())

	// Config commands
	root.AddCommand(newConfigCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// annotationNoGit marks commands that work without git in PATH.
const annotationNoGit = "weaseltree/no-git"

// Execute builds the context, runs the command tree and exits non-zero on
// error.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
	cfg := &loadedCfg

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "Error: failed to get working directory: %v\n", err)
		return 1
	}

	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Create logger (stderr for diagnostics); flags refine it before RunE
	logger := log.New(stderr, false, false)
	if cfg.LogFile != "" {
		z, closer, err := log.OpenFile(cfg.LogFile)
		if err != nil {
			fmt.Fprintf(stderr, "Warning: log file disabled: %v\n", err)
		} else {
			logger.AttachFile(z)
			defer func() {
				_ = z.Sync()
				_ = closer.Close()
			}()
		}
	}
	ctx = log.WithLogger(ctx, logger)

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, stdout)

	ctx = config.WithConfig(ctx, cfg)
	ctx = config.WithWorkDir(ctx, workDir)

	return executeContext(ctx, args, stderr)
}

// executeContext runs the command tree with a prepared context.
func executeContext(ctx context.Context, args []string, stderr io.Writer) int {
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(output.FromContext(ctx).Writer())
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
