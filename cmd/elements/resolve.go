package main

import (
	"github.com/spf13/cobra"

	"github.com/go-drift/elements/pkg/tokens"
)

func newResolveCmd(rootFlags *rootFlags) *cobra.Command {
	var tag string

	cmd := &cobra.Command{
		Use:     "resolve name=value ...",
		Short:   "Show the declarations each style attribute resolves to",
		Example: `  elements resolve --tag m-box p=small bg=danger.600 w-hover=50%`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := parseAttributes(args)
			if err != nil {
				return err
			}
			names := make([]string, len(attrs))
			for i, a := range attrs {
				names[i] = a.name
			}

			res := tokens.NewResolver(rootFlags.catalog, tag)
			out := newPrinter(cmd.OutOrStdout())
			for _, a := range attrs {
				label := a.name + "=" + a.value
				if !tokens.Supports(a.name) {
					out.heading(label, "(not a style attribute)")
					continue
				}
				out.heading(label, pseudoNote(a.name))
				for _, d := range res.Declarations(a.name, a.value, names) {
					out.declaration(d)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "m-box", "Custom element tag, used to derive the variable prefix")

	return cmd
}

func pseudoNote(attr string) string {
	_, pseudo := tokens.Split(attr)
	if pseudo == "" {
		return ""
	}
	return "on :" + tokens.PseudoClass(pseudo)
}
