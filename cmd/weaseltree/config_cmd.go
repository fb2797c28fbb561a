package main

import (
	"context"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/config"
	"github.com/weaseltree/weaseltree/internal/log"
	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/wsl"
)

var noGit = map[string]string{annotationNoGit: "true"}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage weaseltree configuration.

Config file: ~/.config/weaseltree/config.toml (override with WEASELTREE_CONFIG)`,
		Example: `  weaseltree config init      # Create default config
  weaseltree config show      # Show effective config`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
	)

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create default config file",
		Args:        cobra.NoArgs,
		Annotations: noGit,
		Example: `  weaseltree config init      # Create config
  weaseltree config init -f   # Overwrite existing config
  weaseltree config init -s   # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output.FromContext(cmd.Context())
			if stdout {
				out.Print(config.DefaultContent())
				return nil
			}

			path, err := config.Init(force)
			if err != nil {
				return err
			}
			out.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "show",
		Short:       "Show effective configuration",
		Args:        cobra.NoArgs,
		Annotations: noGit,
		Long: `Show the effective configuration after defaults and environment overrides,
followed by the resolved home directories and mapping file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.Context())
		},
	}
	return cmd
}

func runConfigShow(ctx context.Context) error {
	cfg := config.FromContext(ctx)
	out := output.FromContext(ctx)

	if path, err := config.Path(); err == nil {
		out.Printf("# %s\n", path)
	}
	if err := toml.NewEncoder(out.Writer()).Encode(cfg); err != nil {
		return err
	}

	out.Println()
	out.Println("Resolved:")
	if home, err := wsl.WSLHome(cfg); err == nil {
		out.Field("WSL home", home)
	}
	home, err := wsl.WindowsHome(ctx, cfg)
	if err != nil {
		log.FromContext(ctx).Printf("Warning: could not determine Windows home: %v\n", err)
		return nil
	}
	out.Field("Windows home", home)
	if path, err := wsl.MappingFile(ctx, cfg); err == nil {
		out.Field("Mapping file", path)
	}
	return nil
}
