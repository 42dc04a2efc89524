package main

import (
	"bytes"
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// checkResult is the outcome of parsing one file.
type checkResult struct {
	Filename string
	Passed   bool
	Output   bytes.Buffer // rendered diagnostic, if any
}

func newCheckCmd(d *driver) *cobra.Command {
	var jobs int

	cmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Parse files and report errors",
		Long: `Parse every file given, and every ` + SourceExt + ` file beneath each directory given.

Files are parsed concurrently. Diagnostics are printed in argument order,
followed by a summary line.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.runCheck(cmd.Context(), args, jobs)
		},
	}

	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of files parsed in parallel")

	return cmd
}

func (d *driver) runCheck(ctx context.Context, paths []string, jobs int) error {
	files, err := findSourceFiles(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintf(d.stdout, "No source files found\n")
		return nil
	}

	results := d.checkFiles(ctx, files, jobs)

	failed := 0
	for _, r := range results {
		if r.Passed {
			continue
		}
		failed++
		d.stderr.Write(r.Output.Bytes())
	}

	fmt.Fprintf(d.stdout, "Checked %d files: %d passed, %d failed\n", len(results), len(results)-failed, failed)

	if failed > 0 {
		return errReported
	}
	return nil
}

// checkFiles parses files in parallel. A failing file never cancels the
// others; results come back in input order.
func (d *driver) checkFiles(ctx context.Context, files []string, jobs int) []*checkResult {
	results := make([]*checkResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	if jobs > 0 {
		g.SetLimit(jobs)
	}

	for i, filename := range files {
		i, filename := i, filename // per-iteration copies (go directive < 1.22)
		g.Go(func() error {
			r := &checkResult{Filename: filename}
			results[i] = r

			if err := ctx.Err(); err != nil {
				fmt.Fprintf(&r.Output, "%s: %v\n", filename, err)
				return err
			}

			src, _, err := d.parseFile(filename, &r.Output)
			if err != nil {
				d.report(&r.Output, filename, src, err)
				return nil
			}
			r.Passed = true
			return nil
		})
	}

	// Only cancellation is returned from the workers and each result
	// already records it.
	_ = g.Wait()

	return results
}
