package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"questio/internal/diagram"
	"questio/internal/llm"
	llmclient "questio/internal/llmClient"
	"questio/internal/types"
)

func answers() types.Answers {
	return types.Answers{
		Tier:               types.TierTop,
		TargetUniversities: []string{" 연세대 ", "", "고대"},
		CSATSubject:        types.SubjectCalculus,
		StudyScope:         types.Scopes,
		SolvingStyle:       types.StyleArgument,
		WritingConcern:     types.ConcernLogic,
	}
}

type spyRetriever struct {
	mu    sync.Mutex
	names [][]string
}

func (s *spyRetriever) Retrieve(names []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names = append(s.names, names)
	return "REFERENCE-BLOCK"
}

type recordingClient struct {
	*llm.FakeClient
	mu   sync.Mutex
	reqs []llmclient.Request
}

func (r *recordingClient) GenerateJSON(ctx context.Context, req llmclient.Request) (llmclient.Response, error) {
	r.mu.Lock()
	r.reqs = append(r.reqs, req)
	r.mu.Unlock()
	return r.FakeClient.GenerateJSON(ctx, req)
}

func newOrchestrator(fake *llm.FakeClient) (*Orchestrator, *recordingClient, *spyRetriever) {
	rc := &recordingClient{FakeClient: fake}
	spy := &spyRetriever{}
	return New(rc, spy, nil), rc, spy
}

func TestDetailedReportSuccess(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.Grounding = []llmclient.GroundingSource{
		{Kind: llmclient.SourceWeb, URI: "https://b.example", Title: "B"},
		{Kind: llmclient.SourceRetrieved, URI: "gs://x", Title: "X"},
		{Kind: llmclient.SourceWeb, URI: "https://a.example", Title: ""},
		{Kind: llmclient.SourceWeb, URI: "https://b.example", Title: "B again"},
	}
	o, rc, spy := newOrchestrator(fake)

	sections, citations := o.GenerateDetailedReport(context.Background(), answers(), "연세대형 논증가")

	require.Len(t, sections, types.ReportSectionCount)
	assert.Equal(t, "1. 전략 섹션", sections[0].Title)
	assert.IsType(t, diagram.Radar{}, sections[0].Diagram)
	assert.IsType(t, diagram.Flowchart{}, sections[1].Diagram)
	assert.IsType(t, diagram.Comparison{}, sections[2].Diagram)

	assert.Equal(t, []types.Citation{
		{URI: "https://b.example", Title: "B"},
		{URI: "https://a.example", Title: "https://a.example"},
	}, citations)

	require.Len(t, spy.names, 1)
	assert.Equal(t, []string{"연세대", "고대"}, spy.names[0])

	require.Len(t, rc.reqs, 1)
	req := rc.reqs[0]
	assert.True(t, req.Grounding)
	assert.Equal(t, llmclient.ModelDeep, req.Model)
	assert.Equal(t, LabelReport, req.Label)
	assert.Contains(t, req.Prompt, "REFERENCE-BLOCK")
	assert.Contains(t, req.Prompt, "연세대형 논증가")
}

func TestDetailedReportFailureUsesFallback(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSONErr = errors.New("connection reset")
	fake.Grounding = []llmclient.GroundingSource{{Kind: llmclient.SourceWeb, URI: "https://a"}}
	o, _, _ := newOrchestrator(fake)

	sections, citations := o.GenerateDetailedReport(context.Background(), answers(), "p")

	require.Len(t, sections, types.ReportSectionCount)
	assert.Equal(t, FallbackReport(), sections)
	assert.NotNil(t, citations)
	assert.Empty(t, citations)

	for i, s := range sections {
		assert.Equal(t, fmt.Sprintf("%d번 섹션: 분석 보고서", i+1), s.Title)
		assert.Equal(t, "상세 내용을 생성하는 중 오류가 발생했습니다.", s.Content)
		assert.Equal(t, "다시 시도해 주세요.", s.ProTip)
		assert.Equal(t, "데이터 시각화 영역", s.DiagramDescription)
		assert.Equal(t, diagram.Flowchart{Steps: []string{"데이터 수집", "AI 분석", "전략 생성"}}, s.Diagram)
	}
}

func TestDetailedReportUnparseableUsesFallback(t *testing.T) {
	for name, body := range map[string]string{
		"malformed": `[{"title": "x"`,
		"object":    `{"title":"x"}`,
		"empty":     `[]`,
		"wrongType": `[{"title": 5}]`,
	} {
		t.Run(name, func(t *testing.T) {
			fake := llm.NewFakeClient()
			fake.JSON = map[string]string{LabelReport: body}
			o, _, _ := newOrchestrator(fake)

			sections, citations := o.GenerateDetailedReport(context.Background(), answers(), "p")
			assert.Equal(t, FallbackReport(), sections)
			assert.Empty(t, citations)
		})
	}
}

func TestDetailedReportPadsAndFillsDefaults(t *testing.T) {
	fake := llm.NewFakeClient()
	fake.JSON = map[string]string{LabelReport: `[
		{"title":"개요","content":"본문 $x^2$","diagram":{"type":"radar","data":{"labels":["a","b"],"studentValues":[1]}}},
		{"title":"","content":"","proTip":"팁","diagram":{"type":"pie","data":{}}}
	]`}
	o, _, _ := newOrchestrator(fake)

	sections, _ := o.GenerateDetailedReport(context.Background(), answers(), "p")
	require.Len(t, sections, types.ReportSectionCount)

	assert.Equal(t, "개요", sections[0].Title)
	assert.Equal(t, DefaultProTip(types.StyleArgument), sections[0].ProTip)
	radar, ok := sections[0].Diagram.(diagram.Radar)
	require.True(t, ok)
	assert.Equal(t, []float64{80, 60}, radar.StudentValues)
	assert.Len(t, radar.TargetValues, 2)

	assert.Equal(t, "2번 섹션: 분석 보고서", sections[1].Title)
	assert.Equal(t, "상세 내용을 생성하는 중 오류가 발생했습니다.", sections[1].Content)
	assert.Equal(t, "팁", sections[1].ProTip)
	assert.Nil(t, sections[1].Diagram)

	fallback := FallbackReport()
	assert.Equal(t, fallback[2:], sections[2:])
}

func TestDetailedReportTruncatesExtraSections(t *testing.T) {
	items := make([]string, 18)
	for i := range items {
		items[i] = fmt.Sprintf(`{"title":"t%d","content":"c","proTip":"p","diagramDescription":"d","diagram":{"type":"flowchart","data":{"steps":["s"]}}}`, i)
	}
	fake := llm.NewFakeClient()
	fake.JSON = map[string]string{LabelReport: "[" + strings.Join(items, ",") + "]"}
	o, _, _ := newOrchestrator(fake)

	sections, _ := o.GenerateDetailedReport(context.Background(), answers(), "p")
	require.Len(t, sections, types.ReportSectionCount)
	assert.Equal(t, "t14", sections[14].Title)
}

func TestShortAnalysis(t *testing.T) {
	o, rc, _ := newOrchestrator(llm.NewFakeClient())
	got := o.GenerateShortAnalysis(context.Background(), answers())
	assert.Equal(t, "연산 특화 실전형 전략가", got.PersonaName)
	assert.NotEmpty(t, got.AnalysisText)
	require.Len(t, rc.reqs, 1)
	assert.Equal(t, llmclient.ModelFast, rc.reqs[0].Model)
	assert.False(t, rc.reqs[0].Grounding)
}

func TestShortAnalysisFallbacks(t *testing.T) {
	want := types.AnalysisSummary{
		PersonaName:  "연세대 전략가",
		AnalysisText: "분석 중 오류가 발생했습니다. 하지만 귀하의 지망 대학들을 중심으로 최적의 분석 결과를 제공합니다.",
	}

	failing := llm.NewFakeClient()
	failing.JSONErr = errors.New("timeout")
	o, _, _ := newOrchestrator(failing)
	assert.Equal(t, want, o.GenerateShortAnalysis(context.Background(), answers()))

	for _, body := range []string{`not json`, `{"personaName":"","analysisText":"x"}`, `{"personaName":"x"}`} {
		fake := llm.NewFakeClient()
		fake.JSON = map[string]string{LabelAnalysis: body}
		o, _, _ := newOrchestrator(fake)
		assert.Equal(t, want, o.GenerateShortAnalysis(context.Background(), answers()), body)
	}
}

func TestFallbackSummaryWithoutFirstTarget(t *testing.T) {
	a := answers()
	a.TargetUniversities = []string{"", "고려대"}
	assert.Equal(t, "고려대 전략가", FallbackSummary(a).PersonaName)

	a.TargetUniversities = nil
	assert.Equal(t, "수리논술 전략가", FallbackSummary(a).PersonaName)
}

func TestPersonaImage(t *testing.T) {
	o, _, _ := newOrchestrator(llm.NewFakeClient())
	img := o.GeneratePersonaImage(context.Background(), answers(), "p")
	require.NotNil(t, img)
	assert.Equal(t, "image/png", img.MIMEType)

	noImage := llm.NewFakeClient()
	noImage.NoImage = true
	o, _, _ = newOrchestrator(noImage)
	assert.Nil(t, o.GeneratePersonaImage(context.Background(), answers(), "p"))

	failing := llm.NewFakeClient()
	failing.ImageErr = errors.New("safety block")
	o, _, _ = newOrchestrator(failing)
	assert.Nil(t, o.GeneratePersonaImage(context.Background(), answers(), "p"))
}
