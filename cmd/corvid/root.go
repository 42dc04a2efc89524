package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/corvid-lang/corvid/internal/config"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	cfgFile string
	color   string
	trace   bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOptions{}
	var d *driver

	cmd := &cobra.Command{
		Use:   "corvid",
		Short: "Tokenize and parse corvid expressions",
		Long: `corvid runs the corvid front end over source files.

Commands:
  tokens  - print the token stream of a file
  parse   - parse one expression and print its tree
  check   - parse many files and report errors
  watch   - re-parse a file whenever it changes
  lsp     - serve diagnostics to an editor`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, _, err := config.Discover(opts.cfgFile, wd)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("color") {
				cfg.Output.Color = opts.color
			}
			if flags.Changed("trace") {
				cfg.Parser.Trace = opts.trace
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			*d = *newDriver(cfg, stdout, stderr)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	d = &driver{}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default: ./"+config.DefaultFile+")")
	cmd.PersistentFlags().StringVar(&opts.color, "color", "auto", "diagnostic colour: auto, always or never")
	cmd.PersistentFlags().BoolVar(&opts.trace, "trace", false, "log parser rule entry and exit to stderr")

	cmd.AddCommand(
		newTokensCmd(d),
		newParseCmd(d),
		newCheckCmd(d),
		newWatchCmd(d),
		newLSPCmd(d),
	)

	return cmd
}
