package forge

import (
	"context"
	"io"
	"log/slog"

	"github.com/amishk599/careerforge/internal/model"
)

// Alert texts shown as blocking dialogs.
const (
	AlertUploadFailed   = "Upload failed."
	AlertBackendOffline = "Backend is offline. Start the backend service (python main.py in the backend folder) and try again."
)

// AnalysisOutcome completes a RunAnalysis task.
type AnalysisOutcome struct {
	ticket uint64
	gen    uint64
	Result *model.AnalysisResult
	Err    error
}

func (AnalysisOutcome) outcome() {}

// RoadmapOutcome completes a FetchRoadmap task.
type RoadmapOutcome struct {
	ticket uint64
	gen    uint64
	Phases []model.RoadmapPhase
	Err    error
}

func (RoadmapOutcome) outcome() {}

// Session is the composition root of the view state. It owns the job
// description, the analysis and roadmap results, and the upload controller.
type Session struct {
	backend model.Backend
	journal model.Journal
	logger  *slog.Logger

	upload *UploadController

	text     string
	analysis Op[*model.AnalysisResult]
	roadmap  Op[[]model.RoadmapPhase]

	// gen changes whenever the displayed analysis stops being current (text
	// edit, reset, replacement). Outcomes issued under an older gen are dropped.
	gen     uint64
	tickets uint64

	journalID string
	alerts    []string
}

// NewSession returns a session in its initial state. journal and logger may be nil.
func NewSession(backend model.Backend, journal model.Journal, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		backend: backend,
		journal: journal,
		logger:  logger,
	}
	s.upload = &UploadController{next: s.nextTicket}
	return s
}

func (s *Session) nextTicket() uint64 {
	s.tickets++
	return s.tickets
}

// Upload returns the upload controller for the upload panel.
func (s *Session) Upload() *UploadController { return s.upload }

// JobDescription returns the current text.
func (s *Session) JobDescription() string { return s.text }

// Analysis returns the current analysis, or nil.
func (s *Session) Analysis() *model.AnalysisResult { return s.analysis.Value }

// Roadmap returns the fetched phases, or nil.
func (s *Session) Roadmap() []model.RoadmapPhase { return s.roadmap.Value }

// AnalysisOp exposes the analysis operation state.
func (s *Session) AnalysisOp() Op[*model.AnalysisResult] { return s.analysis }

// RoadmapOp exposes the roadmap operation state.
func (s *Session) RoadmapOp() Op[[]model.RoadmapPhase] { return s.roadmap }

// AnalysisLoading reports whether an analysis request is in flight.
func (s *Session) AnalysisLoading() bool { return s.analysis.Pending() }

// RoadmapLoading reports whether a roadmap request is in flight.
func (s *Session) RoadmapLoading() bool { return s.roadmap.Pending() }

// Alert returns the blocking alert to show, if any.
func (s *Session) Alert() (string, bool) {
	if len(s.alerts) == 0 {
		return "", false
	}
	return s.alerts[0], true
}

// DismissAlert closes the current alert.
func (s *Session) DismissAlert() {
	if len(s.alerts) > 0 {
		s.alerts = s.alerts[1:]
	}
}

// SelectFile forwards to the upload controller.
func (s *Session) SelectFile(file model.SelectedFile) {
	s.upload.SelectFile(file)
	s.logger.Debug("resume selected", "name", file.Name, "size", file.Size, "pages", file.Pages)
}

// ConfirmUpload starts the resume upload. It returns nil when there is nothing
// to upload or an upload is already running.
func (s *Session) ConfirmUpload() Task {
	return s.upload.confirm(s.backend)
}

// UpdateJobDescription replaces the text and drops both results so what is
// shown always belongs to the text on screen.
func (s *Session) UpdateJobDescription(text string) {
	if text == s.text {
		return
	}
	s.text = text
	if s.analysis.Value == nil && s.roadmap.Value == nil &&
		!s.analysis.Pending() && !s.roadmap.Pending() {
		return
	}
	s.clearResults()
}

// clearResults drops both results. In-flight requests keep their loading flag
// until they complete, but their payload will be discarded.
func (s *Session) clearResults() {
	s.gen++
	s.analysis.Value = nil
	s.roadmap.Value = nil
	s.journalID = ""
	if !s.analysis.Pending() {
		s.analysis.Phase = PhaseIdle
		s.analysis.Err = nil
	}
	if !s.roadmap.Pending() {
		s.roadmap.Phase = PhaseIdle
		s.roadmap.Err = nil
	}
}

// CanRunAnalysis reports whether RunAnalysis would issue a request.
func (s *Session) CanRunAnalysis() bool {
	return s.text != "" && !s.analysis.Pending()
}

// RunAnalysis sends the job description for analysis. It returns nil when the
// text is empty or an analysis is already running.
func (s *Session) RunAnalysis() Task {
	if !s.CanRunAnalysis() {
		return nil
	}
	ticket := s.nextTicket()
	gen := s.gen
	text := s.text
	s.analysis.Phase = PhasePending
	s.analysis.Err = nil
	s.analysis.ticket = ticket

	analyzer := s.backend
	return func(ctx context.Context) Outcome {
		res, err := analyzer.Analyze(ctx, text)
		return AnalysisOutcome{ticket: ticket, gen: gen, Result: res, Err: err}
	}
}

// CanFetchRoadmap reports whether FetchRoadmap would issue a request.
func (s *Session) CanFetchRoadmap() bool {
	return s.analysis.Value != nil && s.roadmap.Value == nil && !s.roadmap.Pending()
}

// FetchRoadmap requests the roadmap for the current analysis. The roadmap is
// fetched at most once per analysis result.
func (s *Session) FetchRoadmap() Task {
	if !s.CanFetchRoadmap() {
		return nil
	}
	ticket := s.nextTicket()
	gen := s.gen
	req := model.RoadmapRequest{
		ProjectIdea:   s.analysis.Value.StrategicProjectIdea,
		TechnicalGaps: append([]string(nil), s.analysis.Value.TechnicalGaps...),
	}
	s.roadmap.Phase = PhasePending
	s.roadmap.Err = nil
	s.roadmap.ticket = ticket

	generator := s.backend
	return func(ctx context.Context) Outcome {
		phases, err := generator.GenerateRoadmap(ctx, req)
		return RoadmapOutcome{ticket: ticket, gen: gen, Phases: phases, Err: err}
	}
}

// Reset returns the text, results and loading flags to their initial state.
// Requests still in flight are not cancelled; their outcomes are ignored.
func (s *Session) Reset() {
	s.gen++
	s.text = ""
	s.analysis = Op[*model.AnalysisResult]{}
	s.roadmap = Op[[]model.RoadmapPhase]{}
	s.journalID = ""
}

// Apply folds a completed task back into the state.
func (s *Session) Apply(o Outcome) {
	switch o := o.(type) {
	case UploadOutcome:
		s.applyUpload(o)
	case AnalysisOutcome:
		s.applyAnalysis(o)
	case RoadmapOutcome:
		s.applyRoadmap(o)
	}
}

func (s *Session) applyUpload(o UploadOutcome) {
	if !s.upload.apply(o) {
		return
	}
	if o.Err != nil {
		s.logger.Error("resume upload failed", "error", o.Err)
		s.alerts = append(s.alerts, AlertUploadFailed)
		return
	}
	s.logger.Info("resume uploaded")
}

func (s *Session) applyAnalysis(o AnalysisOutcome) {
	if o.ticket == 0 || o.ticket != s.analysis.ticket {
		s.logger.Debug("discarding analysis response from a reset session")
		return
	}
	s.analysis.ticket = 0
	if o.gen != s.gen {
		s.analysis.Phase = PhaseIdle
		s.logger.Debug("discarding analysis response for edited job description", "error", o.Err)
		return
	}

	if o.Err != nil {
		s.analysis.Phase = PhaseFailed
		s.analysis.Err = o.Err
		s.logger.Error("analysis failed", "error", o.Err)
		s.alerts = append(s.alerts, AlertBackendOffline)
		return
	}

	s.gen++
	s.analysis.Phase = PhaseSucceeded
	s.analysis.Value = o.Result
	s.roadmap.Value = nil
	if !s.roadmap.Pending() {
		s.roadmap.Phase = PhaseIdle
		s.roadmap.Err = nil
	}
	s.logger.Info("analysis complete", "match_score", o.Result.MatchScore, "gaps", len(o.Result.TechnicalGaps))

	s.journalID = ""
	if s.journal != nil {
		id, err := s.journal.RecordAnalysis(s.text, *o.Result)
		if err != nil {
			s.logger.Warn("failed to record analysis", "error", err)
			return
		}
		s.journalID = id
	}
}

func (s *Session) applyRoadmap(o RoadmapOutcome) {
	if o.ticket == 0 || o.ticket != s.roadmap.ticket {
		s.logger.Debug("discarding roadmap response from a reset session")
		return
	}
	s.roadmap.ticket = 0
	if o.gen != s.gen {
		s.roadmap.Phase = PhaseIdle
		s.logger.Debug("discarding roadmap response for a replaced analysis", "error", o.Err)
		return
	}

	if o.Err != nil {
		s.roadmap.Phase = PhaseFailed
		s.roadmap.Err = o.Err
		s.logger.Error("roadmap generation failed", "error", o.Err)
		return
	}

	s.roadmap.Phase = PhaseSucceeded
	s.roadmap.Value = o.Phases
	s.logger.Info("roadmap generated", "phases", len(o.Phases))

	if s.journal != nil && s.journalID != "" {
		if err := s.journal.RecordRoadmap(s.journalID, o.Phases); err != nil {
			s.logger.Warn("failed to record roadmap", "error", err)
		}
	}
}
