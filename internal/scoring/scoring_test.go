package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questio/internal/catalog"
	"questio/internal/types"
)

func answers(tier types.Tier, style types.Style, scope []string, targets ...string) types.Answers {
	return types.Answers{
		Tier:               tier,
		TargetUniversities: targets,
		CSATSubject:        types.SubjectCalculus,
		StudyScope:         scope,
		SolvingStyle:       style,
		WritingConcern:     types.ConcernTime,
	}
}

func TestScoreScenarioGachonAboveKonkuk(t *testing.T) {
	gachon, ok := catalog.Lookup("가천대")
	require.True(t, ok)
	konkuk, ok := catalog.Lookup("건국대")
	require.True(t, ok)

	a := answers(types.TierMid, types.StyleComputation,
		[]string{types.ScopeMath1, types.ScopeMath2}, "건국대", "", "")

	assert.Equal(t, 150, Score(a, gachon))
	assert.Equal(t, -130, Score(a, konkuk))

	ranked := Rank(a, []types.University{konkuk, gachon})
	require.Len(t, ranked, 2)
	assert.Equal(t, "가천대", ranked[0].Name)
	assert.Equal(t, "건국대", ranked[1].Name)
}

func TestRankTiesKeepCatalogOrder(t *testing.T) {
	a := answers(types.TierTop, types.StyleArgument, types.Scopes)

	ranked := Rank(a, catalog.Default())
	names := make([]string, len(ranked))
	for i, u := range ranked {
		names[i] = u.Name
	}
	assert.Equal(t, []string{"서강대", "성균관대", "연세대", "고려대", "상명대"}, names)
}

func TestRankReturnsAllWhenCatalogIsSmall(t *testing.T) {
	a := answers(types.TierShort, types.StyleComputation, []string{types.ScopeMath1})
	small := catalog.Default()[:3]

	ranked := Rank(a, small)
	assert.Len(t, ranked, 3)
}

func TestRankNeverExceedsTopN(t *testing.T) {
	a := answers(types.TierMid, types.StyleArgument, types.Scopes, "아주대")
	assert.Len(t, Rank(a, catalog.Default()), TopN)
}

func TestTargetBonusAppliesOnce(t *testing.T) {
	u, ok := catalog.Lookup("한양대(에리카)")
	require.True(t, ok)

	one := answers(types.TierShort, types.StyleArgument, types.Scopes, "한양대")
	three := answers(types.TierShort, types.StyleArgument, types.Scopes, "한양대", "에리카", " 한양대 ")
	none := answers(types.TierShort, types.StyleArgument, types.Scopes, "  ", "")

	assert.Equal(t, Score(none, u)+TargetMatch, Score(one, u))
	assert.Equal(t, Score(one, u), Score(three, u))
}

func TestEmptyScopePenalizesEveryCandidate(t *testing.T) {
	a := answers(types.TierMid, types.StyleArgument, nil)

	for _, s := range ScoreAll(a, catalog.Default()) {
		assert.LessOrEqual(t, s.Score, ScopeMissing+TierMatch+StyleMatch+TargetMatch)
	}
	ranked := Rank(a, catalog.Default())
	require.NotEmpty(t, ranked)
	assert.Equal(t, "건국대", ranked[0].Name)
}

func TestScoreAllIsSortedAndGatesOnScope(t *testing.T) {
	scopes := [][]string{
		{types.ScopeMath1},
		{types.ScopeMath1, types.ScopeMath2},
		{types.ScopeMath1, types.ScopeMath2, types.ScopeCalculus},
		{types.ScopeMath1, types.ScopeMath2, types.ScopeCalculus, types.ScopeProbability},
		types.Scopes,
	}
	targets := [][]string{nil, {"연세대"}, {"한양대", "중앙대", "가천대"}}

	for _, tier := range types.Tiers {
		for _, style := range types.Styles {
			for _, scope := range scopes {
				for _, tg := range targets {
					a := answers(tier, style, scope, tg...)
					scored := ScoreAll(a, catalog.Default())
					set := a.ScopeSet()
					for i := range scored {
						if i > 0 {
							require.GreaterOrEqual(t, scored[i-1].Score, scored[i].Score)
						}
						if !covers(set, scored[i].University.Scope) {
							require.Less(t, scored[i].Score, ScopeCovered+StyleMismatch)
						}
					}
				}
			}
		}
	}
}

func TestExplainAnnotatesBadges(t *testing.T) {
	a := answers(types.TierMid, types.StyleComputation,
		[]string{types.ScopeMath1, types.ScopeMath2}, "건국대")
	ranked := Rank(a, catalog.Default())

	recs := Explain(a, ranked)
	require.Len(t, recs, len(ranked))
	for i, r := range recs {
		assert.Equal(t, i+1, r.Rank)
		assert.Equal(t, 100-5*i, r.MatchRate)
		assert.Equal(t, Score(a, r.University), r.Score)
		assert.Equal(t, r.University.PreferredStyle == a.SolvingStyle, r.StyleMatch)
	}
	assert.Equal(t, "가천대", recs[0].University.Name)
	assert.False(t, recs[0].IsTarget)
}

func TestRankDoesNotAliasCatalog(t *testing.T) {
	list := catalog.Default()
	a := answers(types.TierShort, types.StyleComputation, []string{types.ScopeMath1, types.ScopeMath2})

	ranked := Rank(a, list)
	ranked[0].Scope[0] = "changed"
	assert.NotEqual(t, "changed", list[0].Scope[0])
}
