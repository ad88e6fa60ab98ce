package stub

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amishk599/careerforge/internal/backend"
	"github.com/amishk599/careerforge/internal/forge"
	"github.com/amishk599/careerforge/internal/model"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAnalyze_ReturnsFixture(t *testing.T) {
	s := NewServer(DefaultFixture(), discardLogger())

	req, _ := http.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString(`{"job_description":"Go engineer"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.AnalysisResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, 72, got.MatchScore)
	assert.Equal(t, []string{"Kubernetes", "gRPC"}, got.TechnicalGaps)
}

func TestAnalyze_EmptyDescriptionRejected(t *testing.T) {
	s := NewServer(DefaultFixture(), discardLogger())

	req, _ := http.NewRequest(http.MethodPost, "/analyze", bytes.NewBufferString(`{"job_description":""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpload_RequiresFileField(t *testing.T) {
	s := NewServer(DefaultFixture(), discardLogger())

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, _ := w.CreateFormFile("resume", "resume.pdf")
	_, _ = fw.Write([]byte("%PDF-1.4"))
	w.Close()

	req, _ := http.NewRequest(http.MethodPost, "/upload-resume", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestRoadmap_ReturnsPhasesInOrder(t *testing.T) {
	s := NewServer(DefaultFixture(), discardLogger())

	req, _ := http.NewRequest(http.MethodPost, "/generate-roadmap",
		bytes.NewBufferString(`{"project_idea":"x","technical_gaps":["a"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var got struct {
		Phases []model.RoadmapPhase `json:"phases"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Phases, 3)
	assert.Equal(t, DefaultFixture().Phases, got.Phases)
}

func TestLoadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
analysis:
  match_score: 40
  professional_assessment: Early career.
  key_strength: Mobile
  technical_gaps: [Rust]
  strategic_project_idea: Build a CLI
phases:
  - title: One
    task: first
delay: 250ms
`), 0o644))

	f, err := LoadFixture(path)
	require.NoError(t, err)
	assert.Equal(t, 40, f.Analysis.MatchScore)
	assert.Equal(t, []string{"Rust"}, f.Analysis.TechnicalGaps)
	assert.Equal(t, []model.RoadmapPhase{{Title: "One", Task: "first"}}, f.Phases)
	assert.Equal(t, 250*time.Millisecond, f.Delay)
}

func TestLoadFixture_ScoreOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
analysis:
  match_score: 101
  professional_assessment: x
  key_strength: x
  technical_gaps: []
  strategic_project_idea: x
`), 0o644))

	_, err := LoadFixture(path)
	assert.Error(t, err)
}

func TestLoadFixture_IncompleteRejected(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing analysis fields", "analysis:\n  match_score: 50\n"},
		{"phase without task", `
analysis:
  match_score: 50
  professional_assessment: x
  key_strength: x
  technical_gaps: []
  strategic_project_idea: x
phases:
  - title: One
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fixture.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := LoadFixture(path)
			assert.Error(t, err)
		})
	}
}

// TestSessionAgainstStub drives a full session through the real HTTP client.
func TestSessionAgainstStub(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(DefaultFixture(), discardLogger())
	go func() { _ = s.App().Listener(ln) }()
	t.Cleanup(func() { _ = s.Shutdown() })

	client := backend.NewClient("http://"+ln.Addr().String(), &http.Client{Timeout: 5 * time.Second})
	session := forge.NewSession(client, nil, discardLogger())
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "resume.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 not really"), 0o644))
	session.SelectFile(model.SelectedFile{Path: path, Name: "resume.pdf", MIME: "application/pdf"})

	session.Apply(session.ConfirmUpload()(ctx))
	assert.Equal(t, forge.UploadSucceeded, session.Upload().Status())

	session.UpdateJobDescription("Backend engineer with Kubernetes and gRPC")
	session.Apply(session.RunAnalysis()(ctx))
	require.NotNil(t, session.Analysis())
	assert.Equal(t, 72, session.Analysis().MatchScore)

	session.Apply(session.FetchRoadmap()(ctx))
	assert.Equal(t, DefaultFixture().Phases, session.Roadmap())
	assert.Nil(t, session.FetchRoadmap())
}
