package rpc

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"questio/internal/result"
	"questio/internal/scoring"
	"questio/internal/types"
	"questio/internal/wizard"
)

type answersRequest struct {
	Answers *types.Answers `json:"answers"`
}

type sessionRequest struct {
	SessionID string `json:"sessionId"`
	Contact   string `json:"contact,omitempty"`
}

type stepRequest struct {
	Stage string         `json:"stage,omitempty"`
	Draft *types.Answers `json:"draft,omitempty"`
	Input *stepInput     `json:"input,omitempty"`
}

type stepInput struct {
	Kind    wizard.InputKind `json:"kind"`
	Tier    types.Tier       `json:"tier,omitempty"`
	Targets []string         `json:"targets,omitempty"`
	Subject types.Subject    `json:"subject,omitempty"`
	Scope   []string         `json:"scope,omitempty"`
	Style   types.Style      `json:"style,omitempty"`
	Concern types.Concern    `json:"concern,omitempty"`
}

func (in stepInput) toWizard() wizard.Input {
	return wizard.Input{
		Kind:    in.Kind,
		Tier:    in.Tier,
		Targets: in.Targets,
		Subject: in.Subject,
		Scope:   in.Scope,
		Style:   in.Style,
		Concern: in.Concern,
	}
}

// decode reads a Struct message into a Go value through its JSON form.
func decode(msg *structpb.Struct, out any) error {
	if msg == nil {
		msg = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

func encode(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, err
	}
	return out, nil
}

func toRankResponse(recs []scoring.Recommendation) (*structpb.Struct, error) {
	return encode(map[string]any{"recommendations": recs})
}

func toResultResponse(sessionID string, res *result.Result) (*structpb.Struct, error) {
	return encode(map[string]any{"sessionId": sessionID, "result": res.Snapshot()})
}

func toStepResponse(w *wizard.Wizard) (*structpb.Struct, error) {
	return encode(map[string]any{
		"stage":     w.Stage().String(),
		"draft":     w.Draft(),
		"submitted": w.Stage() == wizard.StageSubmitted,
	})
}
