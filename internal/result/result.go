// Package result owns the published result of a questionnaire session.
// A Result is created once scoring and the short analysis are done, and
// extended in place exactly once when the detailed report arrives.
package result

import (
	"errors"
	"sync"
	"time"

	"questio/internal/scoring"
	"questio/internal/types"
)

// Stage is the lifecycle state of a Result.
type Stage string

const (
	StageSummaryReady Stage = "summary-ready"
	StageReportReady  Stage = "report-ready"
)

var ErrAlreadyExtended = errors.New("result already extended")

// Result is safe for concurrent readers. Only Extend mutates it.
type Result struct {
	mu sync.RWMutex

	summary         types.AnalysisSummary
	recommendations []scoring.Recommendation
	stage           Stage
	createdAt       time.Time

	sections   []types.ReportSection
	citations  []types.Citation
	imageURL   string
	extendedAt time.Time
}

// Extension is the payload of the report stage.
type Extension struct {
	Sections  []types.ReportSection
	Citations []types.Citation
	// ImageURL is empty when no image was produced.
	ImageURL string
}

// Compose builds the summary-ready result. The recommendations are copied.
func Compose(recs []scoring.Recommendation, summary types.AnalysisSummary) *Result {
	return &Result{
		summary:         summary,
		recommendations: cloneRecs(recs),
		stage:           StageSummaryReady,
		createdAt:       time.Now().UTC(),
	}
}

// Extend adds the report fields. It succeeds once; later calls return
// ErrAlreadyExtended and leave the result untouched.
func Extend(r *Result, ext Extension) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.stage == StageReportReady {
		return ErrAlreadyExtended
	}
	r.sections = cloneSections(ext.Sections)
	r.citations = append([]types.Citation{}, ext.Citations...)
	r.imageURL = ext.ImageURL
	r.stage = StageReportReady
	r.extendedAt = time.Now().UTC()
	return nil
}

func (r *Result) Stage() Stage {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.stage
}

func (r *Result) Summary() types.AnalysisSummary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.summary
}

// Recommendations returns a copy of the ranked list.
func (r *Result) Recommendations() []scoring.Recommendation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneRecs(r.recommendations)
}

// Snapshot is a detached, JSON-ready view of a Result.
type Snapshot struct {
	Stage           Stage                    `json:"stage"`
	PersonaName     string                   `json:"personaName"`
	AnalysisText    string                   `json:"analysisText"`
	Recommendations []scoring.Recommendation `json:"recommendations"`
	Sections        []types.ReportSection    `json:"sections,omitempty"`
	Citations       []types.Citation         `json:"citations,omitempty"`
	ImageURL        string                   `json:"imageUrl,omitempty"`
	CreatedAt       time.Time                `json:"createdAt"`
	ExtendedAt      *time.Time               `json:"extendedAt,omitempty"`
}

// Snapshot copies the current state, diagram payloads included. Nothing in
// the returned value is shared with r.
func (r *Result) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := Snapshot{
		Stage:           r.stage,
		PersonaName:     r.summary.PersonaName,
		AnalysisText:    r.summary.AnalysisText,
		Recommendations: cloneRecs(r.recommendations),
		CreatedAt:       r.createdAt,
	}
	if r.stage == StageReportReady {
		s.Sections = cloneSections(r.sections)
		s.Citations = append([]types.Citation{}, r.citations...)
		s.ImageURL = r.imageURL
		at := r.extendedAt
		s.ExtendedAt = &at
	}
	return s
}

func cloneRecs(in []scoring.Recommendation) []scoring.Recommendation {
	out := make([]scoring.Recommendation, len(in))
	for i, rec := range in {
		rec.University = rec.University.Clone()
		out[i] = rec
	}
	return out
}

func cloneSections(in []types.ReportSection) []types.ReportSection {
	if in == nil {
		return nil
	}
	out := make([]types.ReportSection, len(in))
	for i, sec := range in {
		out[i] = sec.Clone()
	}
	return out
}
