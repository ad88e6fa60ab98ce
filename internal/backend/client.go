package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/amishk599/careerforge/internal/model"
)

// DefaultBaseURL is where the backend listens when started locally.
const DefaultBaseURL = "http://localhost:8000"

const (
	uploadPath  = "/upload-resume"
	analyzePath = "/analyze"
	roadmapPath = "/generate-roadmap"

	// uploadField is the multipart field the backend reads the resume from.
	uploadField = "file"

	// maxErrorBody caps how much of a failed response ends up in logs.
	maxErrorBody = 512
)

// Ensure Client implements model.Backend.
var _ model.Backend = (*Client)(nil)

// Client talks to the CareerForge backend over plain HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

// NewClient creates a backend client. An empty baseURL falls back to DefaultBaseURL.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		validate:   validator.New(),
	}
}

type analyzeRequest struct {
	JobDescription string `json:"job_description"`
}

type roadmapResponse struct {
	Phases []model.RoadmapPhase `json:"phases" validate:"required,dive"`
}

// Analyze posts the job description and decodes the match analysis.
func (c *Client) Analyze(ctx context.Context, jobDescription string) (*model.AnalysisResult, error) {
	var result model.AnalysisResult
	if err := c.postJSON(ctx, analyzePath, analyzeRequest{JobDescription: jobDescription}, &result); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	if err := c.validate.Struct(result); err != nil {
		return nil, fmt.Errorf("analyze: invalid response: %w", err)
	}
	return &result, nil
}

// GenerateRoadmap posts the project idea with its gaps and returns the phases in
// the order the backend sent them.
func (c *Client) GenerateRoadmap(ctx context.Context, req model.RoadmapRequest) ([]model.RoadmapPhase, error) {
	if req.TechnicalGaps == nil {
		req.TechnicalGaps = []string{}
	}
	var resp roadmapResponse
	if err := c.postJSON(ctx, roadmapPath, req, &resp); err != nil {
		return nil, fmt.Errorf("generate roadmap: %w", err)
	}
	if err := c.validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("generate roadmap: invalid response: %w", err)
	}
	return resp.Phases, nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if err := checkStatus(resp.StatusCode, respBytes); err != nil {
		return err
	}

	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	return nil
}

func checkStatus(code int, body []byte) error {
	if code >= 200 && code < 300 {
		return nil
	}
	text := strings.TrimSpace(string(body))
	if len(text) > maxErrorBody {
		text = text[:maxErrorBody]
	}
	return &model.StatusError{StatusCode: code, Body: text}
}
