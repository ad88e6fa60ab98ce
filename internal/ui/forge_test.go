package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/careerforge/internal/forge"
	"github.com/amishk599/careerforge/internal/model"
)

type fakeBackend struct {
	uploadErr  error
	analyzeErr error
	analyses   int
	roadmaps   int
}

func (f *fakeBackend) UploadResume(context.Context, model.SelectedFile) error {
	return f.uploadErr
}

func (f *fakeBackend) Analyze(context.Context, string) (*model.AnalysisResult, error) {
	f.analyses++
	if f.analyzeErr != nil {
		return nil, f.analyzeErr
	}
	return &model.AnalysisResult{
		MatchScore:             72,
		ProfessionalAssessment: "Strong backend alignment.",
		KeyStrength:            "Distributed systems",
		TechnicalGaps:          []string{"Kubernetes", "gRPC"},
		StrategicProjectIdea:   "Build a mini job scheduler",
	}, nil
}

func (f *fakeBackend) GenerateRoadmap(context.Context, model.RoadmapRequest) ([]model.RoadmapPhase, error) {
	f.roadmaps++
	return []model.RoadmapPhase{
		{Title: "Phase 1: Queue", Task: "Build the queue"},
		{Title: "Phase 2: Workers", Task: "Add gRPC workers"},
		{Title: "Phase 3: Deploy", Task: "Ship to Kubernetes"},
	}, nil
}

// harness drives a Model the way the bubbletea runtime would, except that
// dispatched tasks are queued instead of run.
type harness struct {
	t       *testing.T
	model   Model
	session *forge.Session
	backend *fakeBackend
	tasks   []forge.Task
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{t: t, backend: &fakeBackend{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h.session = forge.NewSession(h.backend, nil, logger)
	h.model = NewModel(context.Background(), h.session, logger)
	h.model.dispatch = func(_ context.Context, task forge.Task) tea.Cmd {
		h.tasks = append(h.tasks, task)
		return nil
	}
	h.send(tea.WindowSizeMsg{Width: 160, Height: 60})
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.model.Update(msg)
	h.model = next.(Model)
	return cmd
}

func (h *harness) key(k tea.KeyType) tea.Cmd {
	return h.send(tea.KeyMsg{Type: k})
}

func (h *harness) typeText(s string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// finish runs the oldest queued task and feeds its outcome back.
func (h *harness) finish() {
	h.t.Helper()
	require.NotEmpty(h.t, h.tasks, "no task in flight")
	task := h.tasks[0]
	h.tasks = h.tasks[1:]
	h.send(outcomeMsg{outcome: task(context.Background())})
}

func (h *harness) view() string {
	return h.model.View()
}

func (h *harness) analyze() {
	h.t.Helper()
	h.typeText("Backend engineer, Kubernetes and gRPC")
	h.key(tea.KeyCtrlR)
	h.finish()
	require.NotNil(h.t, h.session.Analysis())
}

func TestInitialScreenShowsStandby(t *testing.T) {
	h := newHarness(t)

	v := h.view()
	assert.Contains(t, v, "CAREERFORGE")
	assert.Contains(t, v, "System Standby")
	assert.Contains(t, v, "RUN ENGINE")
	assert.NotContains(t, v, "Confirm Upload")
}

func TestAnalysisRendersScoreAndGaps(t *testing.T) {
	h := newHarness(t)

	h.typeText("Backend engineer")
	assert.Equal(t, "Backend engineer", h.session.JobDescription())

	cmd := h.key(tea.KeyCtrlR)
	assert.NotNil(t, cmd)
	require.Len(t, h.tasks, 1)
	assert.Contains(t, h.view(), "FORGING...")

	h.finish()

	v := h.view()
	assert.NotContains(t, v, "FORGING...")
	assert.Contains(t, v, "72")
	assert.Contains(t, v, "MATCH %")
	assert.Contains(t, v, "KUBERNETES")
	assert.Contains(t, v, "GRPC")
	assert.Contains(t, v, "Distributed systems")
	assert.Contains(t, v, "Build a mini job scheduler")
	assert.Contains(t, v, "View Roadmap")
}

func TestRunWithEmptyTextIsNoop(t *testing.T) {
	h := newHarness(t)

	cmd := h.key(tea.KeyCtrlR)
	assert.Nil(t, cmd)
	assert.Empty(t, h.tasks)
	assert.NotContains(t, h.view(), "FORGING...")
}

func TestRoadmapShowsSkeletonsThenPhases(t *testing.T) {
	h := newHarness(t)
	h.analyze()

	h.key(tea.KeyCtrlG)
	require.Len(t, h.tasks, 1)

	v := h.view()
	assert.Equal(t, 3, strings.Count(v, skeletonBar))
	assert.Contains(t, v, "ANALYZING ARCHITECTURE...")

	h.finish()

	v = h.view()
	assert.Zero(t, strings.Count(v, skeletonBar))
	assert.Contains(t, v, "ROADMAP GENERATED")
	first := strings.Index(v, "Phase 1: Queue")
	second := strings.Index(v, "Phase 2: Workers")
	third := strings.Index(v, "Phase 3: Deploy")
	require.True(t, first >= 0 && second >= 0 && third >= 0, "all phases rendered")
	assert.Less(t, first, second)
	assert.Less(t, second, third)

	assert.Nil(t, h.key(tea.KeyCtrlG))
	assert.Equal(t, 1, h.backend.roadmaps)
}

func TestEditingTextClearsResults(t *testing.T) {
	h := newHarness(t)
	h.analyze()
	require.Contains(t, h.view(), "KUBERNETES")

	h.typeText("!")

	assert.Nil(t, h.session.Analysis())
	assert.Contains(t, h.view(), "System Standby")
}

func TestBackendOfflineShowsBlockingAlert(t *testing.T) {
	h := newHarness(t)
	h.backend.analyzeErr = errors.New("connection refused")

	h.typeText("Go developer")
	h.key(tea.KeyCtrlR)
	h.finish()

	v := h.view()
	assert.Contains(t, v, "Backend is offline")
	assert.False(t, h.session.AnalysisLoading())
	assert.Nil(t, h.session.Analysis())

	// Everything except the dismiss keys is swallowed.
	assert.Nil(t, h.key(tea.KeyCtrlR))
	h.typeText("more")
	assert.Empty(t, h.tasks)
	assert.Equal(t, "Go developer", h.session.JobDescription())

	h.key(tea.KeyEnter)
	_, open := h.session.Alert()
	assert.False(t, open)
	assert.Contains(t, h.view(), "System Standby")
}

func TestUploadFlow(t *testing.T) {
	h := newHarness(t)

	assert.Nil(t, h.key(tea.KeyCtrlS), "nothing selected")

	h.session.SelectFile(model.SelectedFile{Path: "/tmp/resume.pdf", Name: "resume.pdf", Size: 2048, Pages: 2})
	v := h.view()
	assert.Contains(t, v, "resume.pdf")
	assert.Contains(t, v, "2.0 kB")
	assert.Contains(t, v, "Confirm Upload")

	h.key(tea.KeyCtrlS)
	require.Len(t, h.tasks, 1)
	assert.Contains(t, h.view(), "Processing...")
	assert.Nil(t, h.key(tea.KeyCtrlS), "already uploading")

	h.finish()

	v = h.view()
	assert.Contains(t, v, "Resume Processed & Forged")
	assert.NotContains(t, v, "Confirm Upload")
}

func TestUploadFailureRaisesAlert(t *testing.T) {
	h := newHarness(t)
	h.backend.uploadErr = errors.New("boom")

	h.session.SelectFile(model.SelectedFile{Name: "resume.pdf"})
	h.key(tea.KeyCtrlS)
	h.finish()

	assert.Contains(t, h.view(), forge.AlertUploadFailed)
	h.key(tea.KeyEsc)
	assert.Contains(t, h.view(), "Confirm Upload")
}

func TestResetClearsScreen(t *testing.T) {
	h := newHarness(t)
	h.analyze()

	h.key(tea.KeyCtrlX)

	assert.Empty(t, h.session.JobDescription())
	assert.Empty(t, h.model.jd.Value())
	assert.Nil(t, h.session.Analysis())
	assert.Contains(t, h.view(), "System Standby")

	// Idempotent.
	h.key(tea.KeyCtrlX)
	assert.Contains(t, h.view(), "System Standby")
}

func TestFocusCycles(t *testing.T) {
	h := newHarness(t)
	require.Equal(t, focusJobDescription, h.model.focus)

	h.key(tea.KeyTab)
	assert.Equal(t, focusResults, h.model.focus)
	assert.False(t, h.model.jd.Focused())

	// Typing outside the text area does not edit the job description.
	h.typeText("x")
	assert.Empty(t, h.session.JobDescription())

	h.key(tea.KeyTab)
	h.key(tea.KeyTab)
	assert.Equal(t, focusJobDescription, h.model.focus)
	assert.True(t, h.model.jd.Focused())
}

func TestJobDescriptionHasNoLineLimit(t *testing.T) {
	h := newHarness(t)

	h.typeText("Responsibilities:")
	for i := 0; i < 120; i++ {
		h.key(tea.KeyEnter)
	}

	assert.Equal(t, 120, strings.Count(h.session.JobDescription(), "\n"))
}

func TestExitError(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	killed := fmt.Errorf("%w: %w", tea.ErrProgramKilled, context.Canceled)
	other := errors.New("terminal gone")

	assert.NoError(t, exitError(cancelled, killed), "signal shutdown is clean")
	assert.NoError(t, exitError(cancelled, nil))
	assert.ErrorIs(t, exitError(context.Background(), killed), tea.ErrProgramKilled)
	assert.ErrorIs(t, exitError(cancelled, other), other)
}
