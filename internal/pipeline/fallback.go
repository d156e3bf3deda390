package pipeline

import (
	"fmt"

	"questio/internal/diagram"
	"questio/internal/types"
)

const (
	fallbackContent     = "상세 내용을 생성하는 중 오류가 발생했습니다."
	fallbackTip         = "다시 시도해 주세요."
	fallbackDescription = "데이터 시각화 영역"
)

// FallbackReport is the fixed report substituted when generation fails.
func FallbackReport() []types.ReportSection {
	out := make([]types.ReportSection, types.ReportSectionCount)
	for i := range out {
		out[i] = fallbackSection(i)
	}
	return out
}

func fallbackSection(i int) types.ReportSection {
	return types.ReportSection{
		Title:              fmt.Sprintf("%d번 섹션: 분석 보고서", i+1),
		Content:            fallbackContent,
		ProTip:             fallbackTip,
		DiagramDescription: fallbackDescription,
		Diagram:            diagram.Flowchart{Steps: []string{"데이터 수집", "AI 분석", "전략 생성"}},
	}
}

// DefaultProTip fills sections the model left without a tip.
func DefaultProTip(style types.Style) string {
	return fmt.Sprintf("합격 비결은 %s 역량을 목표 대학 스타일에 맞게 변환하는 것입니다.", style)
}
