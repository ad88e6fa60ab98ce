package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// ErrCancelled is returned by RunLoader when the user presses ctrl+c.
var ErrCancelled = errors.New("cancelled")

type loaderDoneMsg struct {
	err error
}

type loaderTickMsg struct{}

type loaderModel struct {
	label string
	ctx   context.Context
	fn    func(ctx context.Context) error
	frame int
	err   error
	done  bool
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.run(), m.tick())
}

func (m loaderModel) run() tea.Cmd {
	ctx, fn := m.ctx, m.fn
	return func() tea.Msg {
		return loaderDoneMsg{err: fn(ctx)}
	}
}

func (m loaderModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return loaderTickMsg{}
	})
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loaderDoneMsg:
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case loaderTickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = ErrCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	spinner := lipgloss.NewStyle().Foreground(accent).Render(spinnerFrames[m.frame])
	return fmt.Sprintf("%s %s...\n", spinner, m.label)
}

// RunLoader shows an inline spinner labelled label while fn runs. When stdout
// is not a terminal fn runs without the spinner.
func RunLoader(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fn(ctx)
	}

	p := tea.NewProgram(loaderModel{label: label, ctx: ctx, fn: fn})
	result, err := p.Run()
	if err != nil {
		return err
	}
	return result.(loaderModel).err
}
