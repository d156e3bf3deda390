// Package diagram holds the three visual archetypes a report section can
// carry and the normalizer that turns model output into one of them.
package diagram

import "encoding/json"

// Kind tags a diagram archetype.
type Kind string

const (
	KindRadar      Kind = "radar"
	KindFlowchart  Kind = "flowchart"
	KindComparison Kind = "comparison"
)

// Payload is implemented only by Radar, Flowchart and Comparison.
type Payload interface {
	Kind() Kind
	isPayload()
}

// Radar compares the student's profile against the target profile.
// Labels, StudentValues and TargetValues always have the same length.
type Radar struct {
	Labels        []string  `json:"labels"`
	StudentValues []float64 `json:"studentValues"`
	TargetValues  []float64 `json:"targetValues"`
}

// Flowchart is an ordered list of step labels.
type Flowchart struct {
	Steps []string `json:"steps"`
}

// Comparison is a bar chart; Categories and Scores have the same length.
type Comparison struct {
	Categories []string  `json:"categories"`
	Scores     []float64 `json:"score"`
}

func (Radar) Kind() Kind      { return KindRadar }
func (Flowchart) Kind() Kind  { return KindFlowchart }
func (Comparison) Kind() Kind { return KindComparison }

func (Radar) isPayload()      {}
func (Flowchart) isPayload()  {}
func (Comparison) isPayload() {}

// Wire is the JSON envelope used on the way out: {"type": ..., "data": {...}}.
type Wire struct {
	Type Kind    `json:"type"`
	Data Payload `json:"data"`
}

// Wrap returns the envelope for p, or nil when p is nil.
func Wrap(p Payload) *Wire {
	if p == nil {
		return nil
	}
	return &Wire{Type: p.Kind(), Data: p}
}

// Clone returns a payload of the same kind that shares no slices with p.
func Clone(p Payload) Payload {
	switch v := p.(type) {
	case Radar:
		return Radar{
			Labels:        append([]string(nil), v.Labels...),
			StudentValues: append([]float64(nil), v.StudentValues...),
			TargetValues:  append([]float64(nil), v.TargetValues...),
		}
	case Flowchart:
		return Flowchart{Steps: append([]string(nil), v.Steps...)}
	case Comparison:
		return Comparison{
			Categories: append([]string(nil), v.Categories...),
			Scores:     append([]float64(nil), v.Scores...),
		}
	}
	return p
}

// Raw is the untrusted diagram object as produced by the model.
// Data is kept undecoded so each field can be checked on its own.
type Raw struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}
