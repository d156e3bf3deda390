package types

import (
	"errors"
	"fmt"
	"strings"
)

// Tier is the target university line a student aims for.
type Tier string

const (
	TierTop   Tier = "상위권"
	TierMid   Tier = "중위권"
	TierShort Tier = "약술형"
)

// Subject is the CSAT elective the student sat.
type Subject string

const (
	SubjectCalculus    Subject = "미적분"
	SubjectProbability Subject = "확률과 통계"
	SubjectGeometry    Subject = "기하"
)

// Style is the solving style a student is confident in.
type Style string

const (
	StyleComputation Style = "연산 중심"
	StyleArgument    Style = "논증 중심"
)

// Concern is the student's main worry when writing answers.
type Concern string

const (
	ConcernTime  Concern = "시간 부족/계산 실수"
	ConcernLogic Concern = "논리 비약/서술 부족"
)

// Scope tags a student can declare as covered.
const (
	ScopeMath1       = "수학 I"
	ScopeMath2       = "수학 II"
	ScopeCalculus    = "미적분"
	ScopeProbability = "확률과 통계"
	ScopeGeometry    = "기하"
)

// MaxTargets is the number of preference slots in the questionnaire.
const MaxTargets = 3

var (
	Tiers    = []Tier{TierTop, TierMid, TierShort}
	Subjects = []Subject{SubjectCalculus, SubjectProbability, SubjectGeometry}
	Styles   = []Style{StyleComputation, StyleArgument}
	Concerns = []Concern{ConcernTime, ConcernLogic}
	Scopes   = []string{ScopeMath1, ScopeMath2, ScopeCalculus, ScopeProbability, ScopeGeometry}
)

var (
	ErrInvalidAnswers = errors.New("invalid answers")
	ErrMissingTarget  = errors.New("first target university is required")
)

// Answers is one completed questionnaire.
type Answers struct {
	Tier               Tier     `json:"tier"`
	TargetUniversities []string `json:"targetUniversities"`
	CSATSubject        Subject  `json:"csatSubject"`
	StudyScope         []string `json:"studyScope"`
	SolvingStyle       Style    `json:"solvingStyle"`
	WritingConcern     Concern  `json:"writingConcern"`
}

// Targets returns the trimmed, non-empty target names in preference order.
func (a Answers) Targets() []string {
	out := make([]string, 0, len(a.TargetUniversities))
	for _, t := range a.TargetUniversities {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// FirstTarget is the first preference slot as entered, trimmed.
func (a Answers) FirstTarget() string {
	if len(a.TargetUniversities) == 0 {
		return ""
	}
	return strings.TrimSpace(a.TargetUniversities[0])
}

// ScopeSet returns the declared scope tags as a membership set.
func (a Answers) ScopeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(a.StudyScope))
	for _, s := range a.StudyScope {
		set[s] = struct{}{}
	}
	return set
}

// Validate checks the enumerations and the scope invariant required for scoring.
func (a Answers) Validate() error {
	if !contains(Tiers, a.Tier) {
		return fmt.Errorf("%w: unknown tier %q", ErrInvalidAnswers, a.Tier)
	}
	if !contains(Subjects, a.CSATSubject) {
		return fmt.Errorf("%w: unknown csat subject %q", ErrInvalidAnswers, a.CSATSubject)
	}
	if !contains(Styles, a.SolvingStyle) {
		return fmt.Errorf("%w: unknown solving style %q", ErrInvalidAnswers, a.SolvingStyle)
	}
	if !contains(Concerns, a.WritingConcern) {
		return fmt.Errorf("%w: unknown writing concern %q", ErrInvalidAnswers, a.WritingConcern)
	}
	if len(a.TargetUniversities) > MaxTargets {
		return fmt.Errorf("%w: at most %d target universities", ErrInvalidAnswers, MaxTargets)
	}
	if len(a.StudyScope) == 0 {
		return fmt.Errorf("%w: study scope is empty", ErrInvalidAnswers)
	}
	for _, s := range a.StudyScope {
		if !contains(Scopes, s) {
			return fmt.Errorf("%w: unknown scope tag %q", ErrInvalidAnswers, s)
		}
	}
	return nil
}

// ValidateForGeneration is Validate plus the first-target rule the report
// flows depend on.
func (a Answers) ValidateForGeneration() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.FirstTarget() == "" {
		return ErrMissingTarget
	}
	return nil
}

// Clone returns a deep copy.
func (a Answers) Clone() Answers {
	out := a
	out.TargetUniversities = append([]string(nil), a.TargetUniversities...)
	out.StudyScope = append([]string(nil), a.StudyScope...)
	return out
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
