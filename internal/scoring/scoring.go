// Package scoring ranks catalog universities against a questionnaire.
package scoring

import (
	"sort"
	"strings"

	"questio/internal/types"
)

// Rule weights. These are tuned by hand; changing any of them silently
// changes rankings.
const (
	ScopeCovered   = 100
	ScopeMissing   = -200
	TierMatch      = 60
	StyleMatch     = 50
	StyleMismatch  = -30
	TargetMatch    = 40
	TopN           = 5
	matchRateStep  = 5
	matchRateStart = 100
)

// Scored pairs a university with its total. It only lives during ranking.
type Scored struct {
	University types.University
	Score      int
}

// Score applies the additive rules in order: scope coverage, tier, style,
// target bonus. Every rule is evaluated; none short-circuits.
func Score(a types.Answers, u types.University) int {
	return scoreWith(a, a.ScopeSet(), a.Targets(), u)
}

func scoreWith(a types.Answers, scope map[string]struct{}, targets []string, u types.University) int {
	score := 0
	if covers(scope, u.Scope) {
		score += ScopeCovered
	} else {
		score += ScopeMissing
	}
	if u.Tier == a.Tier {
		score += TierMatch
	}
	if u.PreferredStyle == a.SolvingStyle {
		score += StyleMatch
	} else {
		score += StyleMismatch
	}
	if isTarget(targets, u.Name) {
		score += TargetMatch
	}
	return score
}

// ScoreAll scores every university and sorts descending. Ties keep catalog
// order.
func ScoreAll(a types.Answers, catalog []types.University) []Scored {
	scope := a.ScopeSet()
	targets := a.Targets()
	out := make([]Scored, len(catalog))
	for i, u := range catalog {
		out[i] = Scored{University: u, Score: scoreWith(a, scope, targets, u)}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// Rank returns at most TopN universities, best first.
func Rank(a types.Answers, catalog []types.University) []types.University {
	scored := ScoreAll(a, catalog)
	if len(scored) > TopN {
		scored = scored[:TopN]
	}
	out := make([]types.University, len(scored))
	for i, s := range scored {
		out[i] = s.University.Clone()
	}
	return out
}

// Recommendation is a ranked university with the badges the result card shows.
type Recommendation struct {
	University types.University `json:"university"`
	Rank       int              `json:"rank"`
	Score      int              `json:"score"`
	IsTarget   bool             `json:"isTarget"`
	StyleMatch bool             `json:"styleMatch"`
	MatchRate  int              `json:"matchRate"`
}

// Explain annotates an already ranked list.
func Explain(a types.Answers, ranked []types.University) []Recommendation {
	targets := a.Targets()
	scope := a.ScopeSet()
	out := make([]Recommendation, len(ranked))
	for i, u := range ranked {
		out[i] = Recommendation{
			University: u,
			Rank:       i + 1,
			Score:      scoreWith(a, scope, targets, u),
			IsTarget:   isTarget(targets, u.Name),
			StyleMatch: u.PreferredStyle == a.SolvingStyle,
			MatchRate:  matchRateStart - i*matchRateStep,
		}
	}
	return out
}

func covers(have map[string]struct{}, required []string) bool {
	for _, r := range required {
		if _, ok := have[r]; !ok {
			return false
		}
	}
	return true
}

// isTarget expects trimmed, non-empty targets.
func isTarget(targets []string, name string) bool {
	for _, t := range targets {
		if strings.Contains(name, t) {
			return true
		}
	}
	return false
}
