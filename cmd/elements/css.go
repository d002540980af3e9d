package main

import (
	"github.com/spf13/cobra"
)

type cssOptions struct {
	tag     string
	as      string
	noGhost bool
}

func newCSSCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &cssOptions{}

	cmd := &cobra.Command{
		Use:   "css [attr=value ...]",
		Short: "Print the sheet synthesized for an element carrying the given attributes",
		Example: `  elements css --tag m-box p=small bg=red column
  elements css --tag m-flex --as section gap=large`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCSS(cmd, rootFlags, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.tag, "tag", "m-box", "Custom element tag")
	cmd.Flags().StringVar(&opts.as, "as", "", "Value of the as attribute (m-flex renders into this element)")
	cmd.Flags().BoolVar(&opts.noGhost, "no-ghost", false, "Style the host itself instead of its first child (plain styled tags only)")

	return cmd
}

func runCSS(cmd *cobra.Command, rootFlags *rootFlags, opts *cssOptions, args []string) error {
	attrs, err := parseAttributes(args)
	if err != nil {
		return err
	}
	if opts.as != "" {
		attrs = append(attrs, attribute{name: "as", value: opts.as})
	}

	s, err := newSession(rootFlags.catalog)
	if err != nil {
		return err
	}
	var ghost *bool
	if opts.noGhost {
		ghost = new(bool)
	}
	if err := s.define(opts.tag, ghost); err != nil {
		return err
	}
	s.mount(opts.tag, attrs)

	out := newPrinter(cmd.OutOrStdout())
	for _, sheet := range s.sheets() {
		out.sheet(sheet)
	}
	return nil
}
