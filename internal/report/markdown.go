package report

import (
	"fmt"
	"strings"
)

// Markdown renders the aggregate report over every registered component.
func Markdown(reg *Registry) string {
	var sb strings.Builder
	sb.WriteString("# Design system report\n\n")

	names := reg.Names()
	if len(names) == 0 {
		sb.WriteString("No components have been validated.\n")
		return sb.String()
	}

	errs, warns, sugg := reg.Totals()
	fmt.Fprintf(&sb, "%d components, %d errors, %d warnings, %d suggestions.\n\n", len(names), errs, warns, sugg)

	sb.WriteString("| Component | Errors | Warnings | Suggestions |\n")
	sb.WriteString("|---|---|---|---|\n")
	for _, n := range names {
		r, _ := reg.Get(n)
		fmt.Fprintf(&sb, "| %s | %d | %d | %d |\n", escapeCell(n), len(r.Errors), len(r.Warnings), len(r.Suggestions))
	}

	for _, n := range names {
		r, _ := reg.Get(n)
		if r.Empty() {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s\n", n)
		writeSection(&sb, "Errors", r.Errors)
		writeSection(&sb, "Warnings", r.Warnings)
		writeSection(&sb, "Suggestions", r.Suggestions)
	}
	return sb.String()
}

func writeSection(sb *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n### %s\n\n", title)
	for _, it := range items {
		fmt.Fprintf(sb, "- %s\n", it)
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
