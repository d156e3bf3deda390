package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"questio/internal/scoring"
	"questio/internal/types"
)

// RankTool handles the rank_universities MCP tool.
type RankTool struct {
	catalog []types.University
}

func NewRankTool(catalog []types.University) *RankTool {
	return &RankTool{catalog: catalog}
}

func (t *RankTool) Definition() mcp.Tool {
	return mcp.NewTool("rank_universities",
		mcp.WithDescription(
			"Rank math-essay (수리논술) universities for a student profile. "+
				"Returns at most five universities, best fit first, with the reason badges.",
		),
		mcp.WithString("tier",
			mcp.Required(),
			mcp.Description("Target line: 상위권, 중위권 or 약술형"),
			mcp.Enum(string(types.TierTop), string(types.TierMid), string(types.TierShort)),
		),
		mcp.WithString("solving_style",
			mcp.Required(),
			mcp.Description("Confident style: 연산 중심 or 논증 중심"),
			mcp.Enum(string(types.StyleComputation), string(types.StyleArgument)),
		),
		mcp.WithArray("study_scope",
			mcp.Required(),
			mcp.Description("Covered subjects: 수학 I, 수학 II, 미적분, 확률과 통계, 기하"),
			mcp.WithStringItems(),
		),
		mcp.WithArray("targets",
			mcp.Description("Up to three preferred universities, most preferred first"),
			mcp.WithStringItems(),
		),
		mcp.WithString("csat_subject",
			mcp.Description("CSAT elective (default 미적분)"),
		),
		mcp.WithString("writing_concern",
			mcp.Description("Main worry (default 시간 부족/계산 실수)"),
		),
	)
}

func (t *RankTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	a := types.Answers{
		Tier:               types.Tier(strings.TrimSpace(req.GetString("tier", ""))),
		TargetUniversities: stringsArg(req, "targets"),
		CSATSubject:        types.Subject(strings.TrimSpace(req.GetString("csat_subject", string(types.SubjectCalculus)))),
		StudyScope:         stringsArg(req, "study_scope"),
		SolvingStyle:       types.Style(strings.TrimSpace(req.GetString("solving_style", ""))),
		WritingConcern:     types.Concern(strings.TrimSpace(req.GetString("writing_concern", string(types.ConcernTime)))),
	}
	if err := a.Validate(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	recs := scoring.Explain(a, scoring.Rank(a, t.catalog))
	if len(recs) == 0 {
		return mcp.NewToolResultText("No universities in the catalog."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Top %d universities for %s / %s:\n\n", len(recs), a.Tier, a.SolvingStyle)
	for _, r := range recs {
		var badges []string
		if r.IsTarget {
			badges = append(badges, "지망 대학")
		}
		if r.StyleMatch {
			badges = append(badges, "스타일 일치")
		}
		fmt.Fprintf(&b, "%d. %s (Type %d, %s, score %d, match %d%%)\n   %s\n",
			r.Rank, r.University.Name, r.University.Type, r.University.Tier, r.Score, r.MatchRate, r.University.Features)
		if len(badges) > 0 {
			fmt.Fprintf(&b, "   [%s]\n", strings.Join(badges, ", "))
		}
	}
	return mcp.NewToolResultText(b.String()), nil
}
