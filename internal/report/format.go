package report

import (
	"fmt"
	"strings"

	"gridkit/internal/validator"

	"github.com/charmbracelet/lipgloss"
)

// Palette styles the groups of a formatted result.
type Palette struct {
	Title      lipgloss.Style
	Error      lipgloss.Style
	Warning    lipgloss.Style
	Suggestion lipgloss.Style
	OK         lipgloss.Style
}

// PlainPalette renders without any styling.
func PlainPalette() Palette {
	s := lipgloss.NewStyle()
	return Palette{Title: s, Error: s, Warning: s, Suggestion: s, OK: s}
}

// ColorPalette uses the semantic colours of the design system.
func ColorPalette() Palette {
	return Palette{
		Title:      lipgloss.NewStyle().Bold(true),
		Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		Warning:    lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107")).Bold(true),
		Suggestion: lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3")),
		OK:         lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true),
	}
}

// Formatter renders results as labelled groups.
type Formatter struct {
	Palette Palette
}

// NewFormatter creates a formatter with the given palette.
func NewFormatter(p Palette) Formatter {
	return Formatter{Palette: p}
}

type group struct {
	label string
	style lipgloss.Style
	items []string
}

// Format renders name's result. Empty groups are skipped; a result without
// messages renders a single ok line.
func (f Formatter) Format(name string, r validator.Result) string {
	var sb strings.Builder
	header := fmt.Sprintf("[gridkit] %s", name)

	if r.Empty() {
		sb.WriteString(f.Palette.Title.Render(header))
		sb.WriteString(": ")
		sb.WriteString(f.Palette.OK.Render("ok"))
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString(f.Palette.Title.Render(header))
	sb.WriteString("\n")
	for _, g := range []group{
		{"Errors", f.Palette.Error, r.Errors},
		{"Warnings", f.Palette.Warning, r.Warnings},
		{"Suggestions", f.Palette.Suggestion, r.Suggestions},
	} {
		if len(g.items) == 0 {
			continue
		}
		sb.WriteString("  ")
		sb.WriteString(g.style.Render(fmt.Sprintf("%s (%d)", g.label, len(g.items))))
		sb.WriteString("\n")
		for _, item := range g.items {
			sb.WriteString("    - ")
			sb.WriteString(item)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// FormatFixes renders auto-fix instructions for a component.
func (f Formatter) FormatFixes(name string, fixes []string) string {
	var sb strings.Builder
	sb.WriteString("  ")
	sb.WriteString(f.Palette.Suggestion.Render(fmt.Sprintf("Auto-fix for %s (%d)", name, len(fixes))))
	sb.WriteString("\n")
	for _, fix := range fixes {
		sb.WriteString("    - ")
		sb.WriteString(fix)
		sb.WriteString("\n")
	}
	return sb.String()
}
