package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/corvid-lang/corvid/internal/lsp"
	"github.com/corvid-lang/corvid/internal/parser"
)

func newLSPCmd(d *driver) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Serve lexer and parser diagnostics over LSP on stdin/stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []parser.Option
			if d.cfg.Parser.RequireEnd {
				opts = append(opts, parser.WithRequireEnd())
			}

			srv := lsp.NewServer(os.Stdin, os.Stdout,
				lsp.WithLogger(d.logger),
				lsp.WithParserOptions(opts...),
			)
			d.logger.Printf("serving LSP on stdio")
			return srv.Run(cmd.Context())
		},
	}
}
