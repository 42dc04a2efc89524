package main

import (
	"github.com/spf13/cobra"
)

type parseOptions struct {
	format     string
	requireEnd bool
}

func newParseCmd(d *driver) *cobra.Command {
	opts := &parseOptions{}

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse one expression and print its tree",
		Long: `Parse a single expression from FILE and print it.

Formats:
  tree  - indented node tree with spans (default)
  sexp  - parenthesised prefix form
  json  - node tree as JSON
  yaml  - node tree as YAML`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("format") {
				d.cfg.Output.Format = opts.format
			}
			if flags.Changed("require-end") {
				d.cfg.Parser.RequireEnd = opts.requireEnd
			}
			if err := d.cfg.Validate(); err != nil {
				return err
			}
			return d.runParse(args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "tree", "output format: tree, sexp, json or yaml")
	cmd.Flags().BoolVar(&opts.requireEnd, "require-end", true, "reject tokens left after the expression")

	return cmd
}

func (d *driver) runParse(filename string) error {
	src, expr, err := d.parseFile(filename, d.stderr)
	if err != nil {
		d.report(d.stderr, filename, src, err)
		return errReported
	}

	return d.render(d.stdout, expr, d.cfg.Output.Format)
}
