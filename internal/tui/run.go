package tui

import (
	"fmt"

	"github.com/barysiuk/modrow/internal/core"
	tea "github.com/charmbracelet/bubbletea"
)

// Hooks are passed to the reconciliation so it can report progress.
type Hooks struct {
	OnStart   func(total int)
	OnOutcome func(core.Outcome)
}

// Run drives a reconciliation under a live progress view. run is invoked on
// a separate goroutine with hooks that forward progress to the view.
func Run(header string, run func(Hooks) (*core.RunSummary, error), opts ...tea.ProgramOption) (*core.RunSummary, error) {
	p := tea.NewProgram(newProgressModel(header), opts...)

	go func() {
		summary, err := run(Hooks{
			OnStart:   func(total int) { p.Send(startMsg{total: total}) },
			OnOutcome: func(o core.Outcome) { p.Send(outcomeMsg{outcome: o}) },
		})
		p.Send(doneMsg{summary: summary, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running progress view: %w", err)
	}

	m := final.(progressModel)
	if m.interrupted && !m.finished {
		return nil, ErrInterrupted
	}
	return m.summary, m.err
}
