package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gridkit/internal/advisor"
	"gridkit/internal/grid"
	"gridkit/internal/monitor"
	"gridkit/internal/overlay"
	"gridkit/internal/report"
	"gridkit/internal/validator"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LoadFunc re-reads the inspected components from their source.
type LoadFunc func() ([]validator.Component, error)

// revalidatedMsg carries the outcome of a load + validate pass.
type revalidatedMsg struct {
	components []validator.Component
	outcomes   []monitor.Outcome
	err        error
}

// InspectorModel is the bubbletea model behind `gridkit inspect`: a table of
// components, a detail pane with the formatted result, and a terminal grid
// overlay drawn under the component's spacing values.
type InspectorModel struct {
	title     string
	keys      keyMap
	help      help.Model
	table     table.Model
	detail    viewport.Model
	styles    Styles
	formatter report.Formatter

	load    LoadFunc
	monitor *monitor.Monitor
	grid    grid.Model
	basePx  float64

	overlay *overlay.Overlay
	surface *overlay.Memory

	components []validator.Component
	outcomes   []monitor.Outcome
	status     string
	err        error
	width      int
	height     int
}

// NewInspectorModel creates the inspector. The monitor's sink should be
// disabled so emission does not write over the screen.
func NewInspectorModel(title string, load LoadFunc, mon *monitor.Monitor, g grid.Model, basePx float64, styles Styles) InspectorModel {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Component", Width: 30},
			{Title: "Errors", Width: 8},
			{Title: "Warnings", Width: 8},
			{Title: "Suggestions", Width: 11},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	surface := &overlay.Memory{}
	return InspectorModel{
		title:     title,
		keys:      defaultKeyMap(),
		help:      help.New(),
		table:     t,
		detail:    viewport.New(80, 12),
		styles:    styles,
		formatter: report.NewFormatter(styles.Palette()),
		load:      load,
		monitor:   mon,
		grid:      g,
		basePx:    basePx,
		overlay:   overlay.New(surface),
		surface:   surface,
	}
}

// Init runs the first validation pass.
func (m InspectorModel) Init() tea.Cmd {
	return m.revalidate()
}

func (m InspectorModel) revalidate() tea.Cmd {
	load, mon := m.load, m.monitor
	return func() tea.Msg {
		components, err := load()
		if err != nil {
			return revalidatedMsg{err: err}
		}
		mon.Sink().Registry().Reset()
		outcomes, err := mon.ObserveAll(components)
		return revalidatedMsg{components: components, outcomes: outcomes, err: err}
	}
}

// Update handles messages.
func (m InspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case revalidatedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.components = msg.components
			m.outcomes = msg.outcomes
			m.status = fmt.Sprintf("validated %d components", len(msg.outcomes))
		}
		m.updateTableRows()
		m.updateDetail()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Overlay):
			visible, err := m.overlay.Toggle()
			if err != nil {
				m.err = err
			} else if visible {
				m.status = "grid overlay on"
			} else {
				m.status = "grid overlay off"
			}
			m.updateDetail()
			return m, nil
		case key.Matches(msg, m.keys.Revalidate):
			m.status = "re-validating..."
			return m, m.revalidate()
		}
	}

	m.table, cmd = m.table.Update(msg)
	m.updateDetail()
	return m, cmd
}

// SetSize lays out the table and the detail pane.
func (m *InspectorModel) SetSize(w, h int) {
	m.width, m.height = w, h
	tableHeight := h / 3
	if tableHeight < 4 {
		tableHeight = 4
	}
	m.table.SetWidth(w - 4)
	m.table.SetHeight(tableHeight)
	m.detail.Width = w - 4
	m.detail.Height = h - tableHeight - 8
	if m.detail.Height < 3 {
		m.detail.Height = 3
	}
	m.help.Width = w
	m.updateDetail()
}

func (m *InspectorModel) updateTableRows() {
	rows := make([]table.Row, 0, len(m.outcomes))
	for _, o := range m.outcomes {
		rows = append(rows, table.Row{
			o.Name,
			strconv.Itoa(len(o.Result.Errors)),
			strconv.Itoa(len(o.Result.Warnings)),
			strconv.Itoa(len(o.Result.Suggestions)),
		})
	}
	m.table.SetRows(rows)
}

// Selected returns the highlighted outcome.
func (m InspectorModel) Selected() (monitor.Outcome, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.outcomes) {
		return monitor.Outcome{}, false
	}
	return m.outcomes[i], true
}

// OverlayVisible reports whether the terminal grid overlay is on.
func (m InspectorModel) OverlayVisible() bool {
	return m.overlay.Visible()
}

func (m *InspectorModel) updateDetail() {
	o, ok := m.Selected()
	if !ok {
		m.detail.SetContent(m.styles.Muted.Render("No components."))
		return
	}

	var sb strings.Builder
	sb.WriteString(m.formatter.Format(o.Name, o.Result))
	if len(o.Fixes) > 0 {
		sb.WriteString(m.formatter.FormatFixes(o.Name, o.Fixes))
	}

	if m.surface.Present() {
		i := m.table.Cursor()
		if i >= 0 && i < len(m.components) {
			sb.WriteString("\n")
			sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Spacing on the %s grid", grid.Px(m.grid.Unit))))
			sb.WriteString("\n")
			sb.WriteString(RenderGridOverlay(m.components[i].Properties, m.grid, m.basePx, m.styles))
		}
	}
	m.detail.SetContent(sb.String())
}

// View renders the inspector.
func (m InspectorModel) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.Header.Render("gridkit inspect: " + m.title))
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.Panel.Render(m.table.View()))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Panel.Render(m.detail.View()))
	sb.WriteString("\n")

	status := m.status
	if m.err != nil {
		status = m.styles.Error.Render("error: " + m.err.Error())
	}
	sb.WriteString(m.styles.Footer.Render(status))
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// maxRulerWidth caps one ruler line; longer values are truncated with an arrow.
const maxRulerWidth = 64

// RenderGridOverlay draws each spacing value as a ruler, one cell per pixel,
// with grid lines at every unit. An on-grid value ends on a grid line.
func RenderGridOverlay(props []validator.ObservedProperty, g grid.Model, basePx float64, styles Styles) string {
	var sb strings.Builder
	labelWidth := 0
	type line struct {
		label string
		px    float64
	}
	var lines []line

	for _, p := range props {
		if !validator.IsSpacingProperty(p.Property) {
			continue
		}
		var values []float64
		if p.Number != nil {
			values = []float64{*p.Number}
		} else {
			ls, err := grid.ParseLengths(p.Value)
			if err != nil {
				continue
			}
			for _, l := range ls {
				if l.IsKeyword() {
					continue
				}
				values = append(values, l.Pixels(basePx))
			}
		}
		for _, v := range values {
			if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			label := fmt.Sprintf("%s %s", p.Property, grid.Px(v))
			if w := lipgloss.Width(label); w > labelWidth {
				labelWidth = w
			}
			lines = append(lines, line{label: label, px: v})
		}
	}

	if len(lines) == 0 {
		return styles.Muted.Render("no spacing values") + "\n"
	}

	adv := advisor.New(g, basePx, true)
	for _, l := range lines {
		sb.WriteString(fmt.Sprintf("%-*s ", labelWidth, l.label))
		sb.WriteString(ruler(l.px, g.Unit, styles))
		if fixed, err := adv.SuggestPixels(l.px); err == nil && fixed != l.px {
			sb.WriteString(styles.Warning.Render(" -> " + grid.Px(fixed)))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func ruler(px, unit float64, styles Styles) string {
	n := int(math.Round(px))
	truncated := n > maxRulerWidth
	if truncated {
		n = maxRulerWidth
	}
	step := int(unit)
	if step < 1 {
		step = 1
	}

	var sb strings.Builder
	for i := 0; i <= n; i++ {
		if i%step == 0 {
			sb.WriteString(styles.GridLine.Render("|"))
		} else {
			sb.WriteString(styles.Body.Render("█"))
		}
	}
	if truncated {
		sb.WriteString(styles.Muted.Render("→"))
	}
	return sb.String()
}
