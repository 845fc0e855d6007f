package tui

import (
	"fmt"
	"strings"

	"github.com/barysiuk/modrow/internal/core"
	"github.com/charmbracelet/glamour"
)

// RenderReport renders the run summary as terminal-styled markdown.
func RenderReport(summary *core.RunSummary, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(40, width-4)),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(reportMarkdown(summary))
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}

// reportMarkdown lays the summary out as a markdown document.
func reportMarkdown(summary *core.RunSummary) string {
	var b strings.Builder
	b.WriteString("## Run summary\n\n")
	fmt.Fprintf(&b, "**Downloaded:** %d / %d mods\n\n", summary.Installed, summary.Total)

	if len(summary.Outcomes) == 0 {
		b.WriteString("_The collection is empty._\n")
		return b.String()
	}

	b.WriteString("| Mod | Result | File |\n")
	b.WriteString("|-----|--------|------|\n")
	for _, o := range summary.Outcomes {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(o.Name), escapeCell(resultText(o)), escapeCell(o.Filename))
	}

	if failed := summary.Failed(); len(failed) > 0 {
		b.WriteString("\n### Errors\n\n")
		for _, o := range failed {
			fmt.Fprintf(&b, "- **%s** (`%s`): %s\n", o.Name, o.ID, o.Err)
		}
	}
	return b.String()
}

func resultText(o core.Outcome) string {
	switch {
	case o.Err != nil:
		return "error: " + o.Reason
	case o.Installed && o.Decision.Action == core.ActionReplace:
		return "updated"
	case o.Installed:
		return "installed"
	case o.Decision.Action != core.ActionSkip:
		return "planned " + string(o.Decision.Action)
	default:
		return "skipped: " + o.Reason
	}
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
