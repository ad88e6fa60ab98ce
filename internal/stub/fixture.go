package stub

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/careerforge/internal/model"
)

// Fixture holds the canned responses the stub serves.
type Fixture struct {
	Analysis model.AnalysisResult
	Phases   []model.RoadmapPhase
	Delay    time.Duration // added before every response, to watch loading states
}

type rawFixture struct {
	Analysis struct {
		MatchScore             int      `yaml:"match_score"`
		ProfessionalAssessment string   `yaml:"professional_assessment"`
		KeyStrength            string   `yaml:"key_strength"`
		TechnicalGaps          []string `yaml:"technical_gaps"`
		StrategicProjectIdea   string   `yaml:"strategic_project_idea"`
	} `yaml:"analysis"`
	Phases []struct {
		Title string `yaml:"title"`
		Task  string `yaml:"task"`
	} `yaml:"phases"`
	Delay string `yaml:"delay"`
}

// DefaultFixture is served when no fixture file is configured.
func DefaultFixture() Fixture {
	return Fixture{
		Analysis: model.AnalysisResult{
			MatchScore:             72,
			ProfessionalAssessment: "Strong backend alignment.",
			KeyStrength:            "Distributed systems",
			TechnicalGaps:          []string{"Kubernetes", "gRPC"},
			StrategicProjectIdea:   "Build a mini job scheduler",
		},
		Phases: []model.RoadmapPhase{
			{Title: "Phase 1: Core queue", Task: "Implement a persistent job queue with retries and visibility timeouts."},
			{Title: "Phase 2: gRPC workers", Task: "Expose scheduling over gRPC and run a pool of stateless workers."},
			{Title: "Phase 3: Kubernetes rollout", Task: "Package the scheduler as a Deployment with health probes and autoscaling."},
		},
	}
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}

	var raw rawFixture
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}

	f := Fixture{
		Analysis: model.AnalysisResult{
			MatchScore:             raw.Analysis.MatchScore,
			ProfessionalAssessment: raw.Analysis.ProfessionalAssessment,
			KeyStrength:            raw.Analysis.KeyStrength,
			TechnicalGaps:          raw.Analysis.TechnicalGaps,
			StrategicProjectIdea:   raw.Analysis.StrategicProjectIdea,
		},
	}
	if f.Analysis.TechnicalGaps == nil {
		f.Analysis.TechnicalGaps = []string{}
	}
	for _, p := range raw.Phases {
		f.Phases = append(f.Phases, model.RoadmapPhase{Title: p.Title, Task: p.Task})
	}
	if f.Phases == nil {
		f.Phases = []model.RoadmapPhase{}
	}
	if raw.Delay != "" {
		f.Delay, err = time.ParseDuration(raw.Delay)
		if err != nil {
			return Fixture{}, fmt.Errorf("parse fixture delay %q: %w", raw.Delay, err)
		}
	}

	// The client rejects incomplete responses, so a fixture must be complete too.
	v := validator.New()
	if err := v.Struct(f.Analysis); err != nil {
		return Fixture{}, fmt.Errorf("invalid fixture analysis: %w", err)
	}
	for i, p := range f.Phases {
		if err := v.Struct(p); err != nil {
			return Fixture{}, fmt.Errorf("invalid fixture phase %d: %w", i+1, err)
		}
	}
	return f, nil
}
