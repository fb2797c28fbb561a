package main

import (
	"github.com/spf13/cobra"

	"github.com/weaseltree/weaseltree/internal/output"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version",
		GroupID:     GroupConfig,
		Args:        cobra.NoArgs,
		Annotations: noGit,
		RunE: func(cmd *cobra.Command, args []string) error {
			output.FromContext(cmd.Context()).Println(versionString())
			return nil
		},
	}
}
