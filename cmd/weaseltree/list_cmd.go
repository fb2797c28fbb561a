package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/weaseltree/weaseltree/internal/output"
	"github.com/weaseltree/weaseltree/internal/ui/static"
	"github.com/weaseltree/weaseltree/internal/ui/styles"
)

// MappingDisplay is one mapping in --json and --yaml output.
type MappingDisplay struct {
	Path        string    `json:"path" yaml:"path"`
	Branch      string    `json:"branch" yaml:"branch"`
	State       string    `json:"state" yaml:"state"`
	WindowsPath string    `json:"windows_path" yaml:"windows_path"`
	WSLPath     string    `json:"wsl_path" yaml:"wsl_path"`
	UpdatedAt   time.Time `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
}

func newListCmd() *cobra.Command {
	var (
		jsonOutput bool
		yamlOutput bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List mappings",
		Aliases: []string{"ls"},
		GroupID: GroupUtility,
		Args:    cobra.NoArgs,
		Long: `List every mapping with its branch, both paths and its state.

States:
  ok               both checkouts exist
  missing wsl      the WSL worktree is gone
  missing windows  the Windows checkout is gone
  missing          both are gone ("weaseltree fix --prune" drops them)`,
		Example: `  weaseltree list          # Table
  weaseltree ls --json     # JSON
  weaseltree ls --yaml     # YAML`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), jsonOutput, yamlOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Output as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")

	return cmd
}

func runList(ctx context.Context, jsonOutput, yamlOutput bool) error {
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

	mappings := make([]MappingDisplay, 0, store.Len())
	for _, rel := range store.Keys() {
		e, _ := store.Get(rel)
		mappings = append(mappings, MappingDisplay{
			Path:        rel,
			Branch:      e.Branch,
			State:       mappingState(e.WindowsPath, e.WSLPath),
			WindowsPath: e.WindowsPath,
			WSLPath:     e.WSLPath,
			UpdatedAt:   e.UpdatedAt,
		})
	}

	switch {
	case jsonOutput:
		return out.JSON(mappings)
	case yamlOutput:
		enc := yaml.NewEncoder(out.Writer())
		enc.SetIndent(2)
		if err := enc.Encode(mappings); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(mappings) == 0 {
		out.Println("No mappings. Run 'weaseltree clone' in a Windows checkout.")
		return nil
	}

	now := time.Now()
	rows := make([][]string, 0, len(mappings))
	for _, m := range mappings {
		rows = append(rows, static.MappingRow{
			Rel:         m.Path,
			Branch:      m.Branch,
			State:       m.State,
			WindowsPath: m.WindowsPath,
			WSLPath:     m.WSLPath,
			UpdatedAt:   m.UpdatedAt,
		}.Cells(now))
	}
	out.Print(static.RenderTable(static.MappingHeaders, rows))
	return nil
}

func mappingState(windowsPath, wslPath string) string {
	win, wsl := dirExists(windowsPath), dirExists(wslPath)
	switch {
	case win && wsl:
		return styles.StateOK
	case win:
		return styles.StateMissingWSL
	case wsl:
		return styles.StateMissingWindows
	default:
		return styles.StateMissing
	}
}
