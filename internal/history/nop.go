package history

import "github.com/amishk599/careerforge/internal/model"

// NopJournal is used when history is disabled. Nothing is recorded.
type NopJournal struct{}

var _ model.Journal = (*NopJournal)(nil)

func NewNopJournal() *NopJournal { return &NopJournal{} }

func (j *NopJournal) RecordAnalysis(string, model.AnalysisResult) (string, error) { return "", nil }
func (j *NopJournal) RecordRoadmap(string, []model.RoadmapPhase) error           { return nil }
