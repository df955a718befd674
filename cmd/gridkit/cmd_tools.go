package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gridkit/cmd/gridkit/ui"
	"gridkit/internal/advisor"
	"gridkit/internal/grid"
	"gridkit/internal/manifest"
	"gridkit/internal/report"
	"gridkit/internal/validator"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// =============================================================================
// TOOL COMMANDS - suggest, scale, report, inspect
// =============================================================================

var suggestCmd = &cobra.Command{
	Use:   "suggest <value>...",
	Short: "Print the nearest on-grid value for each spacing value",
	Long: `Accepts px, rem, em or unitless values, including shorthands such as
"4px 15px" or "15px auto". Values are compared in pixels, so 1rem is on grid.
On-grid parts are kept and keywords are echoed unchanged. When the result is
made of spacing scale values, their keys are printed too.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

var scaleCmd = &cobra.Command{
	Use:   "scale",
	Short: "Print the spacing scale for the configured grid",
	Args:  cobra.NoArgs,
	RunE:  runScale,
}

var (
	reportRaw    bool
	reportOutput string
)

var reportCmd = &cobra.Command{
	Use:   "report <manifest.yaml>...",
	Short: "Render an aggregate Markdown report",
	Long: `Validates every manifest and renders the aggregate report: totals, a
per-component table and the messages of each component. Use --raw for plain
Markdown or --output to write it to a file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runReport,
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <manifest.yaml>",
	Short: "Browse validation results interactively",
	Long: `Opens a terminal inspector over one manifest.

Keys: arrows move, g toggles the grid overlay, r re-validates, q quits.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	reportCmd.Flags().BoolVar(&reportRaw, "raw", false, "Print Markdown without terminal rendering")
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write Markdown to a file")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	g, err := cfg.GridModel()
	if err != nil {
		return err
	}
	a := advisor.New(g, cfg.Grid.BaseFontSize, true)

	out := cmd.OutOrStdout()
	var failed int
	for _, v := range args {
		adv, err := a.Advise(v)
		if err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "gridkit: %v\n", err)
			continue
		}
		if adv.OnGrid {
			fmt.Fprintf(out, "%s: on grid%s\n", v, scaleNote(adv.Tokens))
			continue
		}
		fmt.Fprintf(out, "%s -> %s%s\n", v, adv.Replacement, scaleNote(adv.Tokens))
	}
	if failed > 0 {
		return fmt.Errorf("%d value(s) could not be parsed", failed)
	}
	return nil
}

// scaleNote names the spacing scale keys of a suggestion when every component
// is a scale value.
func scaleNote(tokens []string) string {
	var keys []string
	for _, t := range tokens {
		if t != "" {
			keys = append(keys, t)
		}
	}
	if len(keys) == 0 || len(keys) != len(tokens) {
		return ""
	}
	return " (scale " + strings.Join(keys, " ") + ")"
}

func runScale(cmd *cobra.Command, args []string) error {
	g, err := cfg.GridModel()
	if err != nil {
		return err
	}
	table := ui.NewSimpleTable(fmt.Sprintf("Spacing scale (%s grid)", grid.Px(g.Unit)),
		[]string{"Key", "px", "rem"})
	for _, step := range g.Scale() {
		table.AddRow(
			strconv.FormatFloat(step.Key, 'f', -1, 64),
			grid.Px(step.Value),
			strconv.FormatFloat(step.Value/cfg.Grid.BaseFontSize, 'f', -1, 64)+"rem",
		)
	}
	fmt.Fprint(cmd.OutOrStdout(), table.View(ui.DefaultStyles()))
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	e, err := newEngine(cfg, nil, false, logger, false)
	if err != nil {
		return err
	}
	multi := len(args) > 1
	for _, p := range args {
		if err := checkFile(e, p, multi, manifest.Load); err != nil {
			return err
		}
	}

	md := report.Markdown(e.sink.Registry())
	if reportOutput != "" {
		if err := os.WriteFile(reportOutput, []byte(md), 0644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "gridkit: report written to %s\n", reportOutput)
	} else if reportRaw || noColor {
		fmt.Fprint(cmd.OutOrStdout(), md)
	} else {
		rendered, err := renderMarkdown(md)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), rendered)
	}

	if e.failed() {
		return errFailed
	}
	return nil
}

func renderMarkdown(md string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return renderer.Render(md)
}

func runInspect(cmd *cobra.Command, args []string) error {
	// Emission is off: the inspector owns the screen.
	e, err := newEngine(cfg, nil, false, logger, true)
	if err != nil {
		return err
	}
	path := args[0]
	load := func() ([]validator.Component, error) { return manifest.Load(path) }

	model := ui.NewInspectorModel(path, load, e.monitor, e.grid, cfg.Grid.BaseFontSize, e.styles)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("inspector: %w", err)
	}
	return nil
}
