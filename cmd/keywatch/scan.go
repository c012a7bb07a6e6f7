package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"keywatch/internal/shared"
	"keywatch/internal/ui"
)

type scanOptions struct {
	mode   string
	json   bool
	pretty bool
	quiet  bool
}

func newScanCmd(g *globalOptions) *cobra.Command {
	opts := &scanOptions{}

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run one scan and print the findings",
		Example: `  keywatch scan
  keywatch scan --mode aggressive --json`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			mode, err := shared.ParseMode(opts.mode)
			if err != nil {
				return err
			}

			e, err := newEngine(cmd, g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeEngine(e, &err)

			var onProgress shared.ProgressFunc
			if !opts.quiet && !opts.json {
				errOut := cmd.ErrOrStderr()
				onProgress = func(p float64) {
					fmt.Fprintf(errOut, "\rscanning (%s) %s", mode, ui.ProgressBar(40, p))
				}
			}

			res := e.scanner.Scan(cmd.Context(), mode, onProgress)
			if onProgress != nil {
				fmt.Fprintln(cmd.ErrOrStderr())
			}

			if opts.json {
				jw := shared.NewJSONWriter(cmd.OutOrStdout(), opts.pretty)
				if err := jw.WriteScan(res); err != nil {
					return fmt.Errorf("write json: %w", err)
				}
				return jw.Close()
			}

			printFindings(cmd.OutOrStdout(), res)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.mode, "mode", "m", "basic", "detection mode: basic or aggressive")
	f.BoolVar(&opts.json, "json", false, "print the result as JSON")
	f.BoolVar(&opts.pretty, "pretty", false, "indent JSON output")
	f.BoolVarP(&opts.quiet, "quiet", "q", false, "do not show progress")
	return cmd
}

func printFindings(w io.Writer, res shared.ScanResult) {
	if len(res.Findings) == 0 {
		fmt.Fprintln(w, ui.StatusClean)
		fmt.Fprintln(w, ui.EmptyResult)
		return
	}

	fmt.Fprintf(w, "%s (%d finding(s), %s mode)\n\n", ui.StatusFound, len(res.Findings), res.Mode)
	for _, f := range res.Findings {
		fmt.Fprintf(w, "%s | PID %d | Risk %d%%\n", f.Name, f.Pid, f.Score)
		for _, r := range f.Reasons {
			fmt.Fprintf(w, "  - %s\n", r)
		}
		if !f.Features.StartedAt.IsZero() {
			fmt.Fprintf(w, "  started %s, %d threads, %.1f%% cpu\n",
				humanize.Time(f.Features.StartedAt), f.Features.Threads, f.Features.CPU*100)
		}
		fmt.Fprintln(w, strings.Repeat("-", 40))
	}
}
