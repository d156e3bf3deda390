package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"questio/internal/diagram"
	llmclient "questio/internal/llmClient"
	"questio/internal/prompt"
	"questio/internal/types"
)

var errEmptyReport = errors.New("report has no sections")

// GenerateDetailedReport produces exactly types.ReportSectionCount sections
// and the web citations the grounded call returned. On any failure it
// returns FallbackReport and no citations.
func (o *Orchestrator) GenerateDetailedReport(ctx context.Context, a types.Answers, persona string) ([]types.ReportSection, []types.Citation) {
	reference := o.Retriever.Retrieve(a.Targets())

	resp, err := o.LLM.GenerateJSON(ctx, llmclient.Request{
		Model:     llmclient.ModelDeep,
		Prompt:    prompt.Report(a, persona, reference),
		Schema:    prompt.ReportSchema(),
		Grounding: true,
		Label:     LabelReport,
	})
	if err != nil {
		o.Log.Warn("detailed report failed, using fallback", "error", err)
		return FallbackReport(), []types.Citation{}
	}
	sections, err := parseSections(resp.Text, a)
	if err != nil {
		o.Log.Warn("detailed report unusable, using fallback", "error", err)
		return FallbackReport(), []types.Citation{}
	}
	return sections, webCitations(resp.Grounding)
}

type rawSection struct {
	Title              string       `json:"title"`
	Content            string       `json:"content"`
	ProTip             string       `json:"proTip"`
	DiagramDescription string       `json:"diagramDescription"`
	Diagram            *diagram.Raw `json:"diagram"`
}

// parseSections decodes the model's array. Short arrays are padded with
// fallback sections at the missing positions and long ones truncated.
func parseSections(text string, a types.Answers) ([]types.ReportSection, error) {
	var raws []rawSection
	if err := json.Unmarshal([]byte(text), &raws); err != nil {
		return nil, fmt.Errorf("report JSON invalid: %w", err)
	}
	if len(raws) == 0 {
		return nil, errEmptyReport
	}
	if len(raws) > types.ReportSectionCount {
		raws = raws[:types.ReportSectionCount]
	}

	out := make([]types.ReportSection, types.ReportSectionCount)
	for i := range out {
		if i >= len(raws) {
			out[i] = fallbackSection(i)
			continue
		}
		r := raws[i]
		s := types.ReportSection{
			Title:              strings.TrimSpace(r.Title),
			Content:            strings.TrimSpace(r.Content),
			ProTip:             strings.TrimSpace(r.ProTip),
			DiagramDescription: strings.TrimSpace(r.DiagramDescription),
		}
		if s.Title == "" {
			s.Title = fallbackSection(i).Title
		}
		if s.Content == "" {
			s.Content = fallbackContent
		}
		if s.ProTip == "" {
			s.ProTip = DefaultProTip(a.SolvingStyle)
		}
		if r.Diagram != nil {
			s.Diagram = diagram.Normalize(*r.Diagram)
		}
		out[i] = s
	}
	return out, nil
}

// webCitations keeps web-sourced grounding chunks in response order,
// dropping blanks and repeated URIs.
func webCitations(sources []llmclient.GroundingSource) []types.Citation {
	out := []types.Citation{}
	seen := map[string]bool{}
	for _, s := range sources {
		uri := strings.TrimSpace(s.URI)
		if s.Kind != llmclient.SourceWeb || uri == "" || seen[uri] {
			continue
		}
		seen[uri] = true
		title := strings.TrimSpace(s.Title)
		if title == "" {
			title = uri
		}
		out = append(out, types.Citation{URI: uri, Title: title})
	}
	return out
}
