package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-drift/elements/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newVersionCmd(rootFlags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display build information",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "elements %s\ncommit: %s\nbuilt: %s\n", version, commit, date)
			fmt.Fprintf(w, "theme format: %s\n", config.SupportedMajor)
			if rootFlags.themePath != "" {
				fmt.Fprintf(w, "theme: %s\n", rootFlags.themePath)
			} else {
				fmt.Fprintln(w, "theme: built-in")
			}
			return nil
		},
	}

	return cmd
}
