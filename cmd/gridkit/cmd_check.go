package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gridkit/internal/logging"
	"gridkit/internal/manifest"
	"gridkit/internal/markup"
	"gridkit/internal/validator"
	"gridkit/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// =============================================================================
// FILE COMMANDS - check manifests and static HTML
// =============================================================================

var (
	watchFlag bool
	fixFlag   bool
)

var checkCmd = &cobra.Command{
	Use:   "check <manifest.yaml>...",
	Short: "Validate components declared in YAML manifests",
	Long: `Loads each manifest, validates every component in order and prints the
errors, warnings and suggestions of each component (log_validation), followed
by a summary table. With --fix, or auto_fix_enabled, every grid violation also
gets a remediation line. Exits non-zero when any component has an error. With
--watch, re-validates a manifest whenever it changes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFiles(cmd, args, manifestLoader())
	},
}

var htmlCmd = &cobra.Command{
	Use:   "html <file.html>...",
	Short: "Validate inline styles in static HTML files",
	Long: `Scans elements that carry a style attribute or a data-component name and
validates their inline spacing, sizes, colours, z-index and durations.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner := markup.NewScanner(cfg.Grid.BaseFontSize)
		return runFiles(cmd, args, scanner.ScanFile)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&watchFlag, "watch", false, "Re-validate files when they change")
	htmlCmd.Flags().BoolVar(&watchFlag, "watch", false, "Re-validate files when they change")
	checkCmd.Flags().BoolVar(&fixFlag, "fix", false, "Print auto-fix instructions for grid violations")
	htmlCmd.Flags().BoolVar(&fixFlag, "fix", false, "Print auto-fix instructions for grid violations")
}

// loader reads components from one input file.
type loader func(path string) ([]validator.Component, error)

func manifestLoader() loader {
	return manifest.Load
}

// sourceLabel prefixes component names with the file name when several files
// are checked together.
func sourceLabel(path string, multi bool) string {
	if !multi {
		return ""
	}
	return filepath.Base(path) + ":"
}

func runFiles(cmd *cobra.Command, paths []string, load loader) error {
	out := cmd.OutOrStdout()
	e, err := newEngine(cfg, out, cfg.ShouldLogValidation(), logger, !noColor)
	if err != nil {
		return err
	}

	multi := len(paths) > 1
	for _, p := range paths {
		if err := checkFile(e, p, multi, load); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, e.summary())

	if watchFlag {
		ctx, cancel := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return watchFiles(ctx, e, paths, multi, load, cmd.ErrOrStderr())
	}

	if e.failed() {
		return errFailed
	}
	return nil
}

func checkFile(e *engine, path string, multi bool, load loader) error {
	timer := logging.StartTimer(logging.CategoryValidator, "check "+path)
	defer timer.Stop()

	components, err := load(path)
	if err != nil {
		return err
	}
	logger.Debug("loaded components", zap.String("file", path), zap.Int("count", len(components)))
	_, err = e.observe(sourceLabel(path, multi), components)
	return err
}

func watchFiles(ctx context.Context, e *engine, paths []string, multi bool, load loader, errOut io.Writer) error {
	w, err := watch.New(paths, cfg.GetWatchDebounce(), func(ctx context.Context, path string) {
		logging.Watch("re-validating %s", path)
		if err := checkFile(e, path, multi, load); err != nil {
			fmt.Fprintf(errOut, "gridkit: %v\n", err)
			return
		}
		errs, warns, suggs := e.sink.Registry().Totals()
		fmt.Fprintf(errOut, "gridkit: %s re-validated: %d errors, %d warnings, %d suggestions in total\n",
			filepath.Base(path), errs, warns, suggs)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(errOut, "gridkit: watching %d file(s), press Ctrl+C to stop\n", len(paths))
	return w.Run(ctx)
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
