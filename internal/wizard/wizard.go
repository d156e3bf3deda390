// Package wizard is the questionnaire flow as an explicit state machine.
// It produces a types.Answers and knows nothing about scoring.
package wizard

import (
	"errors"
	"fmt"
	"strings"

	"questio/internal/types"
)

type Stage int

const (
	StageIntro Stage = iota
	StageTier
	StageTargets
	StageSubject
	StageScope
	StageStyle
	StageConcern
	StageSubmitted
)

var stageNames = [...]string{"intro", "tier", "targets", "subject", "scope", "style", "concern", "submitted"}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// ParseStage is the inverse of Stage.String. An empty name is the intro.
func ParseStage(name string) (Stage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return StageIntro, nil
	}
	for i, n := range stageNames {
		if n == name {
			return Stage(i), nil
		}
	}
	return StageIntro, fmt.Errorf("%w: unknown stage %q", ErrInvalidInput, name)
}

type InputKind string

const (
	InputStart   InputKind = "start"
	InputTier    InputKind = "tier"
	InputTargets InputKind = "targets"
	InputSubject InputKind = "subject"
	InputScope   InputKind = "scope"
	InputStyle   InputKind = "style"
	InputConcern InputKind = "concern"
	InputBack    InputKind = "back"
)

// Input is one user action. Only the field matching Kind is read.
type Input struct {
	Kind    InputKind
	Tier    types.Tier
	Targets []string
	Subject types.Subject
	Scope   []string
	Style   types.Style
	Concern types.Concern
}

func Start() Input                        { return Input{Kind: InputStart} }
func ChooseTier(t types.Tier) Input       { return Input{Kind: InputTier, Tier: t} }
func EnterTargets(names ...string) Input  { return Input{Kind: InputTargets, Targets: names} }
func ChooseSubject(s types.Subject) Input { return Input{Kind: InputSubject, Subject: s} }
func SelectScope(tags ...string) Input    { return Input{Kind: InputScope, Scope: tags} }
func ChooseStyle(s types.Style) Input     { return Input{Kind: InputStyle, Style: s} }
func ChooseConcern(c types.Concern) Input { return Input{Kind: InputConcern, Concern: c} }
func Back() Input                         { return Input{Kind: InputBack} }

var (
	ErrInvalidTransition = errors.New("wizard: input not allowed at this stage")
	ErrInvalidInput      = errors.New("wizard: invalid input")
	ErrNotSubmitted      = errors.New("wizard: questionnaire not submitted")
)

type key struct {
	stage Stage
	kind  InputKind
}

type transition struct {
	next  Stage
	apply func(*types.Answers, Input) error
}

var transitions = map[key]transition{
	{StageIntro, InputStart}:     {next: StageTier},
	{StageTier, InputTier}:       {next: StageTargets, apply: applyTier},
	{StageTargets, InputTargets}: {next: StageSubject, apply: applyTargets},
	{StageSubject, InputSubject}: {next: StageScope, apply: applySubject},
	{StageScope, InputScope}:     {next: StageStyle, apply: applyScope},
	{StageStyle, InputStyle}:     {next: StageConcern, apply: applyStyle},
	{StageConcern, InputConcern}: {next: StageSubmitted, apply: applyConcern},
	{StageSubject, InputBack}:    {next: StageTargets},
	{StageScope, InputBack}:      {next: StageSubject},
	{StageStyle, InputBack}:      {next: StageScope},
	{StageConcern, InputBack}:    {next: StageStyle},
}

// Wizard is not safe for concurrent use.
type Wizard struct {
	stage Stage
	draft types.Answers
}

// New starts at the intro with the form's default selections.
func New() *Wizard {
	return &Wizard{stage: StageIntro, draft: Defaults()}
}

// Defaults are the preselected answers shown on a fresh form.
func Defaults() types.Answers {
	return types.Answers{
		Tier:               types.TierMid,
		TargetUniversities: make([]string, types.MaxTargets),
		CSATSubject:        types.SubjectCalculus,
		StudyScope:         []string{types.ScopeMath1, types.ScopeMath2},
		SolvingStyle:       types.StyleComputation,
		WritingConcern:     types.ConcernTime,
	}
}

// Resume rebuilds a wizard from a stage and draft kept by the client, so
// the flow can be driven over a stateless transport.
func Resume(stage Stage, draft types.Answers) *Wizard {
	if stage < StageIntro || stage > StageSubmitted {
		stage = StageIntro
	}
	draft = draft.Clone()
	if len(draft.TargetUniversities) < types.MaxTargets {
		targets := make([]string, types.MaxTargets)
		copy(targets, draft.TargetUniversities)
		draft.TargetUniversities = targets
	}
	return &Wizard{stage: stage, draft: draft}
}

func (w *Wizard) Stage() Stage { return w.stage }

// Draft returns a copy of the answers collected so far.
func (w *Wizard) Draft() types.Answers { return w.draft.Clone() }

// Apply validates in and moves to the next stage. On error the stage and
// draft are unchanged.
func (w *Wizard) Apply(in Input) (Stage, error) {
	tr, ok := transitions[key{w.stage, in.Kind}]
	if !ok {
		return w.stage, fmt.Errorf("%w: %s at %s", ErrInvalidTransition, in.Kind, w.stage)
	}
	if tr.apply != nil {
		draft := w.draft.Clone()
		if err := tr.apply(&draft, in); err != nil {
			return w.stage, err
		}
		w.draft = draft
	}
	w.stage = tr.next
	return w.stage, nil
}

// Answers returns the completed questionnaire.
func (w *Wizard) Answers() (types.Answers, error) {
	if w.stage != StageSubmitted {
		return types.Answers{}, ErrNotSubmitted
	}
	return w.draft.Clone(), nil
}

func applyTier(a *types.Answers, in Input) error {
	for _, t := range types.Tiers {
		if t == in.Tier {
			a.Tier = t
			return nil
		}
	}
	return fmt.Errorf("%w: tier %q", ErrInvalidInput, in.Tier)
}

func applyTargets(a *types.Answers, in Input) error {
	if len(in.Targets) > types.MaxTargets {
		return fmt.Errorf("%w: at most %d targets", ErrInvalidInput, types.MaxTargets)
	}
	if len(in.Targets) == 0 || strings.TrimSpace(in.Targets[0]) == "" {
		return fmt.Errorf("%w: first target is required", ErrInvalidInput)
	}
	targets := make([]string, types.MaxTargets)
	for i, t := range in.Targets {
		targets[i] = strings.TrimSpace(t)
	}
	a.TargetUniversities = targets
	return nil
}

func applySubject(a *types.Answers, in Input) error {
	for _, s := range types.Subjects {
		if s == in.Subject {
			a.CSATSubject = s
			return nil
		}
	}
	return fmt.Errorf("%w: subject %q", ErrInvalidInput, in.Subject)
}

// applyScope keeps the canonical tag order regardless of selection order.
func applyScope(a *types.Answers, in Input) error {
	picked := map[string]bool{}
	for _, tag := range in.Scope {
		picked[strings.TrimSpace(tag)] = true
	}
	var scope []string
	for _, tag := range types.Scopes {
		if picked[tag] {
			scope = append(scope, tag)
			delete(picked, tag)
		}
	}
	if len(picked) > 0 {
		return fmt.Errorf("%w: unknown scope tag", ErrInvalidInput)
	}
	if len(scope) == 0 {
		return fmt.Errorf("%w: select at least one scope", ErrInvalidInput)
	}
	a.StudyScope = scope
	return nil
}

func applyStyle(a *types.Answers, in Input) error {
	for _, s := range types.Styles {
		if s == in.Style {
			a.SolvingStyle = s
			return nil
		}
	}
	return fmt.Errorf("%w: style %q", ErrInvalidInput, in.Style)
}

func applyConcern(a *types.Answers, in Input) error {
	for _, c := range types.Concerns {
		if c == in.Concern {
			a.WritingConcern = c
			return a.ValidateForGeneration()
		}
	}
	return fmt.Errorf("%w: concern %q", ErrInvalidInput, in.Concern)
}
