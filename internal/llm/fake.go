package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	genai "google.golang.org/genai"

	llmclient "questio/internal/llmClient"
)

// 1x1 transparent PNG.
var fakePNG, _ = base64.StdEncoding.DecodeString("iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII=")

// FakeClient returns deterministic JSON and images for offline runs and
// tests. Array schemas get a 15-section report, everything else a persona
// analysis object. Fields must be set before first use.
type FakeClient struct {
	// JSON overrides the response text for a request label.
	JSON map[string]string
	// Grounding is attached to every successful JSON response.
	Grounding []llmclient.GroundingSource
	JSONErr   error
	ImageErr  error
	// NoImage makes GenerateImage answer without an image part.
	NoImage bool
	Delay   time.Duration

	mu    sync.Mutex
	calls []string
}

func NewFakeClient() *FakeClient { return &FakeClient{} }

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

// Calls returns the labels of every call received, in arrival order.
func (f *FakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FakeClient) record(ctx context.Context, label string) error {
	f.mu.Lock()
	f.calls = append(f.calls, label)
	f.mu.Unlock()
	if f.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(f.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (f *FakeClient) GenerateJSON(ctx context.Context, req llmclient.Request) (llmclient.Response, error) {
	if err := f.record(ctx, req.Label); err != nil {
		return llmclient.Response{}, err
	}
	if f.JSONErr != nil {
		return llmclient.Response{}, f.JSONErr
	}
	if txt, ok := f.JSON[req.Label]; ok {
		return llmclient.Response{Text: txt, Grounding: f.Grounding}, nil
	}
	var obj any
	if req.Schema != nil && req.Schema.Type == genai.TypeArray {
		obj = fakeReport()
	} else {
		obj = map[string]any{
			"personaName":  "연산 특화 실전형 전략가",
			"analysisText": "지망 대학들의 공통 출제 범위를 기준으로 계산 정확도를 끌어올리는 전략이 유효합니다.",
		}
	}
	b, err := json.Marshal(obj)
	if err != nil {
		return llmclient.Response{}, err
	}
	return llmclient.Response{Text: string(b), Grounding: f.Grounding}, nil
}

func (f *FakeClient) GenerateImage(ctx context.Context, req llmclient.ImageRequest) (*llmclient.Image, error) {
	if err := f.record(ctx, req.Label); err != nil {
		return nil, err
	}
	if f.ImageErr != nil {
		return nil, f.ImageErr
	}
	if f.NoImage {
		return nil, llmclient.ErrNoImage
	}
	return &llmclient.Image{MIMEType: "image/png", Data: append([]byte(nil), fakePNG...)}, nil
}

func fakeReport() []map[string]any {
	diagrams := []map[string]any{
		{"type": "radar", "data": map[string]any{
			"labels":        []string{"논리", "연산", "직관", "수식", "창의"},
			"studentValues": []int{70, 85, 60, 75, 65},
			"targetValues":  []int{90, 80, 85, 90, 80},
		}},
		{"type": "flowchart", "data": map[string]any{"steps": []string{"개념 정리", "기출 분석", "실전 연습"}}},
		{"type": "comparison", "data": map[string]any{
			"categories": []string{"집중도", "속도", "정확성"},
			"score":      []int{75, 60, 85},
		}},
	}
	out := make([]map[string]any, 15)
	for i := range out {
		out[i] = map[string]any{
			"title":              fmt.Sprintf("%d. 전략 섹션", i+1),
			"content":            fmt.Sprintf("섹션 %d의 핵심은 $f'(x) = 0$ 인 지점을 빠르게 찾는 것입니다.", i+1),
			"proTip":             "채점 기준표의 핵심 식을 먼저 쓰세요.",
			"diagramDescription": "학생과 목표 대학의 역량 비교",
			"diagram":            diagrams[i%len(diagrams)],
		}
	}
	return out
}
