package ui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/amishk599/careerforge/internal/forge"
	"github.com/amishk599/careerforge/internal/resume"
)

type focus int

const (
	focusUpload focus = iota
	focusJobDescription
	focusResults
	focusCount
)

// outcomeMsg carries a finished backend task back into the event loop.
type outcomeMsg struct {
	outcome forge.Outcome
}

// Model is the CareerForge screen: upload panel and job description on the
// left, analysis on the right. All state lives in the session; the model only
// holds widgets and layout.
type Model struct {
	session *forge.Session
	ctx     context.Context
	logger  *slog.Logger

	jd      textarea.Model
	picker  filepicker.Model
	spinner spinner.Model
	score   progress.Model
	results viewport.Model

	picking    bool
	pickErr    string
	focus      focus
	width      int
	height     int
	ready      bool
	leftWidth  int
	rightWidth int

	// dispatch turns a task into a command. Tests replace it to run tasks
	// by hand.
	dispatch func(ctx context.Context, task forge.Task) tea.Cmd
}

// NewModel builds the screen around session. ctx is handed to every backend
// task; cancelling it only matters on exit.
func NewModel(ctx context.Context, session *forge.Session, logger *slog.Logger) Model {
	jd := textarea.New()
	jd.Placeholder = "Paste the target role requirements here..."
	jd.ShowLineNumbers = false
	jd.CharLimit = 0
	jd.MaxHeight = 0
	jd.SetValue(session.JobDescription())
	jd.Focus()

	fp := filepicker.New()
	fp.AllowedTypes = resume.AllowedTypes
	fp.AutoHeight = false
	fp.ShowPermissions = false

	return Model{
		session:  session,
		ctx:      ctx,
		logger:   logger,
		jd:       jd,
		picker:   fp,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(scoreLabelStyle)),
		score:    progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		focus:    focusJobDescription,
		dispatch: runTask,
	}
}

func runTask(ctx context.Context, task forge.Task) tea.Cmd {
	return func() tea.Msg {
		return outcomeMsg{outcome: task(ctx)}
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) busy() bool {
	return m.session.Upload().Status() == forge.Uploading ||
		m.session.AnalysisLoading() || m.session.RoadmapLoading()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case outcomeMsg:
		m.session.Apply(msg.outcome)
		m.syncResults()
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.syncResults()
		return m, cmd

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if _, ok := m.session.Alert(); ok {
			return m.updateAlert(msg)
		}
		if m.picking {
			return m.updatePicker(msg)
		}
		return m.updateMain(msg)
	}

	if m.picking {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.jd, cmd = m.jd.Update(msg)
	return m, cmd
}

// updateAlert swallows everything but the dismiss keys while an alert is open.
func (m Model) updateAlert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc", " ":
		m.session.DismissAlert()
	}
	return m, nil
}

func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+o":
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		file, err := resume.Describe(path)
		if err != nil {
			m.logger.Error("failed to read selected file", "path", path, "error", err)
			m.pickErr = err.Error()
			return m, cmd
		}
		m.pickErr = ""
		m.session.SelectFile(file)
	}
	return m, cmd
}

func (m Model) updateMain(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		m.setFocus((m.focus + 1) % focusCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + focusCount - 1) % focusCount)
		return m, nil
	case "ctrl+o":
		return m.openPicker()
	case "ctrl+s":
		return m.start(m.session.ConfirmUpload())
	case "ctrl+r":
		return m.start(m.session.RunAnalysis())
	case "ctrl+g":
		return m.start(m.session.FetchRoadmap())
	case "ctrl+x":
		m.session.Reset()
		m.jd.Reset()
		m.syncResults()
		return m, nil
	}

	switch m.focus {
	case focusUpload:
		switch msg.String() {
		case "enter", " ":
			return m.openPicker()
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case focusResults:
		switch msg.String() {
		case "enter", " ":
			return m.start(m.session.FetchRoadmap())
		case "q":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.jd, cmd = m.jd.Update(msg)
	m.session.UpdateJobDescription(m.jd.Value())
	m.syncResults()
	return m, cmd
}

// start dispatches task and keeps the spinner running while it is in flight.
// A nil task means the operation was a no-op.
func (m Model) start(task forge.Task) (tea.Model, tea.Cmd) {
	if task == nil {
		return m, nil
	}
	m.syncResults()
	return m, tea.Batch(m.dispatch(m.ctx, task), m.spinner.Tick)
}

func (m Model) openPicker() (tea.Model, tea.Cmd) {
	m.picking = true
	m.picker.SetHeight(max(m.height-8, 5))
	return m, m.picker.Init()
}

func (m *Model) setFocus(f focus) {
	m.focus = f
	if f == focusJobDescription {
		m.jd.Focus()
	} else {
		m.jd.Blur()
	}
}

func (m *Model) recalcLayout() {
	// Left column takes ~40% of the screen; 2 border + 2 padding chars per pane.
	m.leftWidth = max(m.width*2/5, 30)
	m.rightWidth = max(m.width-m.leftWidth-1, 30)

	// Header (1) + status bar (1) + borders (2).
	bodyHeight := max(m.height-4, 10)

	m.jd.SetWidth(m.leftWidth - 4)
	m.jd.SetHeight(max(bodyHeight-14, 4))
	m.score.Width = max(m.rightWidth-20, 10)

	if !m.ready {
		m.results = viewport.New(m.rightWidth-4, bodyHeight)
		m.ready = true
	} else {
		m.results.Width = m.rightWidth - 4
		m.results.Height = bodyHeight
	}
	m.syncResults()
}

func (m *Model) syncResults() {
	if !m.ready {
		return
	}
	m.results.SetContent(m.renderResults(m.rightWidth - 4))
}

// Run starts the interactive screen on the alternate buffer and blocks until
// the user quits or ctx is cancelled.
func Run(ctx context.Context, session *forge.Session, logger *slog.Logger) error {
	p := tea.NewProgram(NewModel(ctx, session, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return exitError(ctx, err)
}

// exitError treats a program killed by ctx cancellation (SIGTERM) as a clean
// exit.
func exitError(ctx context.Context, err error) error {
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
