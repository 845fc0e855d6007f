// Package tui renders live progress for a reconciliation run.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/barysiuk/modrow/internal/core"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// maxRecentRows is how many finished packages stay visible under the bar.
const maxRecentRows = 8

// ErrInterrupted is returned when the user quits before the run finishes.
var ErrInterrupted = errors.New("interrupted")

// startMsg carries the collection size once it is known.
type startMsg struct {
	total int
}

// outcomeMsg is sent each time a package finishes.
type outcomeMsg struct {
	outcome core.Outcome
}

// doneMsg is sent when the run returns.
type doneMsg struct {
	summary *core.RunSummary
	err     error
}

// progressModel shows a spinner, a progress bar, and the latest outcomes.
type progressModel struct {
	header string

	spinner spinner.Model
	bar     progress.Model
	width   int

	total  int
	done   int
	recent []core.Outcome

	finished    bool
	interrupted bool
	summary     *core.RunSummary
	err         error
	report      string
}

func newProgressModel(header string) progressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(spinnerStyle),
	)
	return progressModel{
		header:  header,
		spinner: s,
		bar:     progress.New(progress.WithGradient(string(colorSecondary), string(colorPrimary))),
		width:   80,
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = max(10, msg.Width-20)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.interrupted = true
			return m, tea.Quit
		}
		return m, nil

	case startMsg:
		m.total = msg.total
		return m, nil

	case outcomeMsg:
		m.done++
		m.recent = append(m.recent, msg.outcome)
		if len(m.recent) > maxRecentRows {
			m.recent = m.recent[len(m.recent)-maxRecentRows:]
		}
		return m, nil

	case doneMsg:
		m.finished = true
		m.summary = msg.summary
		m.err = msg.err
		if msg.summary != nil {
			if r, err := RenderReport(msg.summary, m.width); err == nil {
				m.report = r
			}
		}
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(logoStyle.Render("modrow"))
	b.WriteString(headerPathStyle.Render(m.header))
	b.WriteString("\n\n")

	if m.finished {
		switch {
		case m.err != nil:
			b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
			b.WriteString("\n")
		case m.report != "":
			b.WriteString(m.report)
		case m.summary != nil:
			b.WriteString(fmt.Sprintf("Installed %d / %d\n", m.summary.Installed, m.summary.Total))
		}
		return b.String()
	}

	if m.total == 0 {
		b.WriteString(m.spinner.View() + " Fetching collection...\n")
	} else {
		b.WriteString(fmt.Sprintf("%s Reconciling %d / %d\n", m.spinner.View(), m.done, m.total))
		b.WriteString(m.bar.ViewAs(m.percent()))
		b.WriteString("\n\n")
	}

	for _, o := range m.recent {
		b.WriteString(ansi.Truncate(OutcomeLine(o), m.width, "…"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q: quit"))
	return b.String()
}

func (m progressModel) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// OutcomeLine renders one package outcome as a colored status line.
func OutcomeLine(o core.Outcome) string {
	switch {
	case o.Err != nil:
		return StatusLine("error", o.Name, o.Reason+": "+o.Err.Error(), LineError)
	case o.Decision.Action == core.ActionReplace:
		detail := o.Decision.OldFilename + " -> " + o.Filename
		if !o.Installed {
			detail = "(planned) " + detail
		}
		return StatusLine("updated", o.Name, detail, LineReplaced)
	case o.Decision.Action == core.ActionInstall:
		detail := o.Filename
		if !o.Installed {
			detail = "(planned) " + detail
		}
		return StatusLine("installed", o.Name, detail, LineInstalled)
	default:
		return StatusLine("skipped", o.Name, o.Reason, LineSkipped)
	}
}
