package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/elements/internal/config"
	"github.com/go-drift/elements/pkg/logging"
	"github.com/go-drift/elements/pkg/theme"
)

type rootFlags struct {
	theme   string
	verbose int

	// resolved by PersistentPreRunE
	themePath string
	catalog   *theme.Catalog
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "elements",
		Short:         "Inspect the style rules synthesized for styled elements",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(logging.Options{
				Verbosity: flags.verbose,
				Writer:    cmd.ErrOrStderr(),
				Human:     true,
			})
			dir, _ := os.Getwd()
			resolved, err := config.Resolve(flags.theme, dir)
			if err != nil {
				return err
			}
			flags.themePath = resolved.Path
			flags.catalog = resolved.Catalog
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "Theme file (.yaml, .yml or .toml); defaults to elements.yaml or "+config.ThemeFile)
	cmd.PersistentFlags().CountVarP(&flags.verbose, "verbose", "v", "Increase log verbosity (repeatable)")

	cmd.AddCommand(newCSSCmd(flags))
	cmd.AddCommand(newResolveCmd(flags))
	cmd.AddCommand(newVersionCmd(flags))

	return cmd
}
