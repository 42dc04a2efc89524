package main

import (
	"github.com/spf13/cobra"
)

func newTokensCmd(d *driver) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "Print the token stream of a file",
		Long: `Print one token per line as line:col KIND "value".

Lexing stops at the first invalid character, which is reported as a diagnostic.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.runTokens(args[0])
		},
	}
}

func (d *driver) runTokens(filename string) error {
	src, tokens, err := d.tokenize(filename)
	if err != nil {
		d.report(d.stderr, filename, src, err)
		return errReported
	}

	d.printTokens(tokens)
	return nil
}
