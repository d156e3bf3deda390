package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	llmclient "questio/internal/llmClient"
	"questio/internal/prompt"
	"questio/internal/types"
)

const fallbackAnalysisText = "분석 중 오류가 발생했습니다. 하지만 귀하의 지망 대학들을 중심으로 최적의 분석 결과를 제공합니다."

// GenerateShortAnalysis asks the fast model for a persona label and a short
// narrative. It never fails; see FallbackSummary.
func (o *Orchestrator) GenerateShortAnalysis(ctx context.Context, a types.Answers) types.AnalysisSummary {
	resp, err := o.LLM.GenerateJSON(ctx, llmclient.Request{
		Model:  llmclient.ModelFast,
		Prompt: prompt.Analysis(a),
		Schema: prompt.AnalysisSchema(),
		Label:  LabelAnalysis,
	})
	if err != nil {
		o.Log.Warn("short analysis failed, using fallback", "error", err)
		return FallbackSummary(a)
	}
	out, err := parseSummary(resp.Text)
	if err != nil {
		o.Log.Warn("short analysis unusable, using fallback", "error", err)
		return FallbackSummary(a)
	}
	return out
}

func parseSummary(text string) (types.AnalysisSummary, error) {
	var out types.AnalysisSummary
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return types.AnalysisSummary{}, fmt.Errorf("analysis JSON invalid: %w", err)
	}
	out.PersonaName = strings.TrimSpace(out.PersonaName)
	out.AnalysisText = strings.TrimSpace(out.AnalysisText)
	if out.PersonaName == "" || out.AnalysisText == "" {
		return types.AnalysisSummary{}, fmt.Errorf("%w: empty analysis field", llmclient.ErrInvalidJSON)
	}
	return out, nil
}

// FallbackSummary is the fixed analysis used when generation fails. The
// persona label is derived from the first target.
func FallbackSummary(a types.Answers) types.AnalysisSummary {
	name := a.FirstTarget()
	if name == "" {
		if ts := a.Targets(); len(ts) > 0 {
			name = ts[0]
		} else {
			name = "수리논술"
		}
	}
	return types.AnalysisSummary{
		PersonaName:  name + " 전략가",
		AnalysisText: fallbackAnalysisText,
	}
}
