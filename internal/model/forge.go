package model

import (
	"context"
	"time"
)

// AnalysisResult is the backend's match analysis for one job description.
// A zero score is legal; an empty gap list is legal, a missing one is not.
type AnalysisResult struct {
	MatchScore             int      `json:"match_score" validate:"gte=0,lte=100"`
	ProfessionalAssessment string   `json:"professional_assessment" validate:"required"`
	KeyStrength            string   `json:"key_strength" validate:"required"`
	TechnicalGaps          []string `json:"technical_gaps" validate:"required"`
	StrategicProjectIdea   string   `json:"strategic_project_idea" validate:"required"`
}

// RoadmapPhase is one step of a generated roadmap.
type RoadmapPhase struct {
	Title string `json:"title" validate:"required"`
	Task  string `json:"task" validate:"required"`
}

// SelectedFile describes the resume the user picked. MIME and Pages are
// informational; nothing rejects a file based on them.
type SelectedFile struct {
	Path  string
	Name  string
	Size  int64
	MIME  string
	Pages int // 0 when the file could not be read as a PDF
}

// RoadmapRequest is the payload for /generate-roadmap.
type RoadmapRequest struct {
	ProjectIdea   string   `json:"project_idea"`
	TechnicalGaps []string `json:"technical_gaps"`
}

// ResumeUploader sends a resume to the backend. The response body is ignored.
type ResumeUploader interface {
	UploadResume(ctx context.Context, file SelectedFile) error
}

// JobAnalyzer scores the uploaded resume against a job description.
type JobAnalyzer interface {
	Analyze(ctx context.Context, jobDescription string) (*AnalysisResult, error)
}

// RoadmapGenerator turns a project idea and its gaps into ordered phases.
type RoadmapGenerator interface {
	GenerateRoadmap(ctx context.Context, req RoadmapRequest) ([]RoadmapPhase, error)
}

// Backend is everything the session needs from the remote service.
type Backend interface {
	ResumeUploader
	JobAnalyzer
	RoadmapGenerator
}

// HistoryEntry is one recorded analysis run.
type HistoryEntry struct {
	ID             string
	CreatedAt      time.Time
	JobDescription string
	Result         AnalysisResult
	Roadmap        []RoadmapPhase // nil until a roadmap was fetched
}

// Journal records completed runs. It is write-only from the session's point of
// view; nothing it stores is read back into view state.
type Journal interface {
	RecordAnalysis(jobDescription string, result AnalysisResult) (string, error)
	RecordRoadmap(id string, phases []RoadmapPhase) error
}
