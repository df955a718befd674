package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gridkit/cmd/gridkit/ui"
	"gridkit/internal/advisor"
	"gridkit/internal/config"
	"gridkit/internal/grid"
	"gridkit/internal/monitor"
	"gridkit/internal/report"
	"gridkit/internal/rules"
	"gridkit/internal/validator"

	"go.uber.org/zap"
)

// errFailed makes the process exit non-zero without printing a second message.
var errFailed = errors.New("design-system errors found")

// engine bundles the validation pipeline built from one config.
type engine struct {
	cfg       *config.Config
	grid      grid.Model
	validator *validator.Validator
	advisor   *advisor.Advisor
	sink      *report.Sink
	monitor   *monitor.Monitor
	styles    ui.Styles
}

// newEngine builds the pipeline. Per-component result groups are written to
// out when emit is set; callers pass the log_validation setting or false.
// --fix turns auto-fix output on regardless of auto_fix_enabled.
func newEngine(c *config.Config, out io.Writer, emit bool, log *zap.Logger, color bool) (*engine, error) {
	g, err := c.GridModel()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	if out == nil {
		out = io.Discard
	}

	styles := ui.DefaultStyles()
	palette := report.PlainPalette()
	if color {
		palette = styles.Palette()
	}

	catalog := rules.NewCatalog(g, c.Rules)
	v := validator.New(g, catalog, c.ValidatorOptions())
	a := advisor.New(g, c.Grid.BaseFontSize, c.AutoFixEnabled || fixFlag)
	sink := report.NewSink(report.NewRegistry(), emit,
		report.WithWriter(out),
		report.WithLogger(log),
		report.WithFormatter(report.NewFormatter(palette)),
	)

	return &engine{
		cfg:       c,
		grid:      g,
		validator: v,
		advisor:   a,
		sink:      sink,
		monitor:   monitor.New(v, a, sink),
		styles:    styles,
	}, nil
}

// observe validates components under a source prefix and returns the outcomes.
func (e *engine) observe(source string, components []validator.Component) ([]monitor.Outcome, error) {
	if source == "" {
		return e.monitor.ObserveAll(components)
	}
	prefixed := make([]validator.Component, len(components))
	for i, c := range components {
		prefixed[i] = validator.Component{Name: source + " " + c.Name, Properties: c.Properties}
	}
	return e.monitor.ObserveAll(prefixed)
}

// summary renders the per-component totals table followed by the totals line.
func (e *engine) summary() string {
	reg := e.sink.Registry()
	table := ui.NewSimpleTable("Summary", []string{"Component", "Errors", "Warnings", "Suggestions"})
	for _, name := range reg.Names() {
		r, _ := reg.Get(name)
		table.AddRow(name,
			strconv.Itoa(len(r.Errors)),
			strconv.Itoa(len(r.Warnings)),
			strconv.Itoa(len(r.Suggestions)))
	}
	errs, warns, suggs := reg.Totals()
	return table.View(e.styles) + fmt.Sprintf("\n%d components, %d errors, %d warnings, %d suggestions\n",
		reg.Len(), errs, warns, suggs)
}

// failed reports whether any recorded component has an error.
func (e *engine) failed() bool {
	errs, _, _ := e.sink.Registry().Totals()
	return errs > 0
}
