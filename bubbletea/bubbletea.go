// Package bubbletea provides a Bubble Tea terminal preview of the info panel.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/infopanel"
)

// Entry is one payload the preview can show. Err is set when the payload
// could not be decoded; the preview shows the error instead of a panel.
type Entry struct {
	Name    string
	Payload infopanel.Payload
	Err     error
}

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model, opts ...tea.ProgramOption) error {
	_, err := NewProgram(ctx, m, opts...).Run()
	return err
}

// NewProgram returns a program for m with mouse support in the alternate
// screen, quitting when ctx is cancelled. Use it instead of Run when the
// caller needs to Send messages from outside the program.
func NewProgram(ctx context.Context, m Model, opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, opts...)
	p := tea.NewProgram(m, opts...)
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	return p
}

// EntriesMsg replaces every entry. The panel state and, when still in range,
// the selected index are kept.
type EntriesMsg struct {
	Entries []Entry
}

// ErrMsg reports a failure from outside the program, such as a fixture
// reload that could not be read.
type ErrMsg struct {
	Err error
}
