package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"keywatch/internal/config"
	"keywatch/internal/remedy"
	"keywatch/internal/scanner"
	"keywatch/internal/shared"
	"keywatch/internal/telemetry"
	"keywatch/internal/ui"
)

type globalOptions struct {
	configPath  string
	logLevel    string
	logFile     string
	minDuration time.Duration

	kill        remedy.KillFunc
	interactive func(io.Reader) bool
}

func defaultOptions() *globalOptions {
	return &globalOptions{
		kill:        telemetry.KillProcess,
		interactive: isTerminal,
	}
}

// engine bundles what every command needs.
type engine struct {
	cfg     shared.Config
	log     hclog.Logger
	scanner *scanner.Scanner
	gate    *remedy.Gate
	closeFn func() error
}

func (e *engine) Close() error {
	if e.closeFn != nil {
		return e.closeFn()
	}
	return nil
}

// closeEngine folds the Close error into err without hiding an earlier one.
func closeEngine(e *engine, err *error) {
	*err = errors.Join(*err, e.Close())
}

func newRootCmd() *cobra.Command {
	return buildRootCmd(defaultOptions())
}

func buildRootCmd(opts *globalOptions) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "keywatch",
		Short:         "Keylogger Detection Tool: scores running processes for keylogger-like behavior.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Long: `keywatch inspects running processes and ranks them by a heuristic risk score.
Hidden windowless processes with many threads, long uptime and steady CPU use
score highest. Aggressive mode also flags scripted runtimes running without UI.

Run without a subcommand to open the interactive dashboard.`,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			var out io.Writer
			if opts.logFile == "" {
				out = io.Discard
			}
			e, err := newEngine(cmd, opts, out)
			if err != nil {
				return err
			}
			defer closeEngine(e, &err)

			return ui.Run(cmd.Context(), ui.NewAppState(), e.scanner, e.gate)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "YAML file overriding thresholds and weights")
	pf.StringVar(&opts.logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&opts.logFile, "log-file", "", "write logs to this file (dashboard logs are discarded otherwise)")
	pf.DurationVar(&opts.minDuration, "min-duration", 0, "minimum scan duration, overriding the config file (default 5s)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.AddCommand(newScanCmd(opts), newKillCmd(opts))
	return rootCmd
}

// newEngine loads config and wires the scanner and the termination gate.
// Logs go to --log-file when set, otherwise to out (stderr when nil).
func newEngine(cmd *cobra.Command, opts *globalOptions, out io.Writer) (*engine, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("min-duration") {
		if opts.minDuration < 0 {
			return nil, fmt.Errorf("--min-duration must not be negative")
		}
		cfg.MinScanDuration = opts.minDuration
	}

	e := &engine{cfg: cfg}
	if opts.logFile != "" {
		f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		e.closeFn = f.Close
	}

	kill := opts.kill
	if kill == nil {
		kill = telemetry.KillProcess
	}

	e.log = shared.NewLogger("keywatch", opts.logLevel, out)
	e.scanner = scanner.New(cfg, telemetry.NewSource(cfg.CPUSampleWindow), e.log)
	e.gate = remedy.NewGate(kill, cfg, e.log)
	return e, nil
}

// isTerminal reports whether r is an interactive character device.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
