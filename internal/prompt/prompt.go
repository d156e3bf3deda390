// Package prompt builds the generation requests for the three report stages.
package prompt

import (
	"fmt"
	"strings"

	"questio/internal/types"
)

// Analysis builds the short persona analysis prompt.
func Analysis(a types.Answers) string {
	return fmt.Sprintf(`수리논술 전문 컨설턴트로서 다음 수험생의 데이터를 분석하여 맞춤형 결과 요약과 분석을 제공해주세요.

[수험생 데이터]
- 목표 대학 라인: %s
- 지망 대학 리스트 (1, 2, 3지망): %s
- 수능 선택 과목: %s
- 현재 학습 가능한 범위: %s
- 자신 있는 스타일: %s
- 가장 큰 고민: %s

[요구사항]
1. 이 학생을 정의하는 한 줄 페르소나 이름 (예: "기하 탑재 논증 특화 - 연세대형", "전략적 확통 보완 - 성균관대형" 등)
2. 데이터에 기반한 3~4문장의 상세 분석. 특히 1지망인 %s와 나머지 지망 대학들 사이의 공통된 전략을 찾아주세요.
3. JSON 형식으로 응답하세요.`,
		a.Tier,
		strings.Join(a.Targets(), ", "),
		a.CSATSubject,
		strings.Join(a.StudyScope, ", "),
		a.SolvingStyle,
		a.WritingConcern,
		a.FirstTarget(),
	)
}

// NoTextConstraint is appended to every image prompt.
const NoTextConstraint = "이미지 안에 어떤 글자, 문자, 숫자, 기호 텍스트도 절대 포함하지 마십시오. Do not render any text, letters, numbers or characters."

var imageTemplates = map[types.Style]string{
	types.StyleComputation: "정밀한 기계 장치와 빛나는 톱니바퀴, 빠르게 흐르는 수식의 궤적이 어우러진 미래적인 연산 공방에서 집중하는 수험생 캐릭터. 페르소나: %s. 목표: %s. 차가운 푸른 톤, 깔끔한 벡터 일러스트 스타일.",
	types.StyleArgument:    "고요한 도서관 속에서 빛나는 논리의 사슬과 기하학 도형이 공중에 떠 있는 사색적인 장면의 수험생 캐릭터. 페르소나: %s. 목표: %s. 따뜻한 금빛 톤, 부드러운 수채화 일러스트 스타일.",
}

// Image builds the persona illustration brief. The template is chosen by
// solving style; unknown styles use the argument template.
func Image(a types.Answers, persona string) string {
	tmpl, ok := imageTemplates[a.SolvingStyle]
	if !ok {
		tmpl = imageTemplates[types.StyleArgument]
	}
	return fmt.Sprintf(tmpl, persona, a.FirstTarget()) + "\n" + NoTextConstraint
}

// Outline returns the fixed topic of each of the 15 report sections.
func Outline(a types.Answers) []string {
	targets := strings.Join(a.Targets(), ", ")
	return []string{
		"표지 및 리포트 개요",
		"데이터 기반 심층 성향 분석",
		targets + " 합격 가능성 분석",
		string(a.SolvingStyle) + " 강점 극대화 포지셔닝",
		string(a.WritingConcern) + " 해결 시간 운용 전략",
		"1~4주차: 개념 재구조화",
		"5~8주차: 심화 논증 정복",
		"9~12주차: 대학별 파이널 실전",
		"대학별 채점 기준표 독해법",
		"감점 방지 답안 서술 테크닉",
		"고난도 문항 발상법",
		"합격생 오답 노트 사례",
		"시험장 멘탈 관리",
		"수능 최저 및 정시 병행",
		"합격을 위한 마지막 제언",
	}
}

// Report builds the 15-section detailed report prompt. reference is the
// retrieval block and is embedded verbatim.
func Report(a types.Answers, persona, reference string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "당신은 대한민국 최고의 수리논술 입시 전문가입니다.\n")
	fmt.Fprintf(&b, "페르소나명이 '%s'인 수험생을 위한 '%d페이지 합격 전략 보고서'의 내용을 생성하십시오.\n\n", persona, types.ReportSectionCount)

	b.WriteString("[수험생 상세 프로필]\n")
	fmt.Fprintf(&b, "- 지망 대학: %s\n", strings.Join(a.Targets(), ", "))
	fmt.Fprintf(&b, "- 목표 라인: %s\n", a.Tier)
	fmt.Fprintf(&b, "- 수능 선택 과목: %s\n", a.CSATSubject)
	fmt.Fprintf(&b, "- 학습 범위: %s\n", strings.Join(a.StudyScope, ", "))
	fmt.Fprintf(&b, "- 강점: %s\n", a.SolvingStyle)
	fmt.Fprintf(&b, "- 약점: %s\n\n", a.WritingConcern)

	b.WriteString("[대학별 참고 자료]\n")
	b.WriteString(strings.TrimSpace(reference))
	b.WriteString("\n최신 모집요강과 기출 경향은 검색으로 확인하여 반영하십시오.\n\n")

	b.WriteString("[수식 표기 규칙]\n")
	b.WriteString("모든 수식과 기호는 반드시 $...$ 로 감싸서 작성하십시오. (예: $f'(x) = 3x^2$, $\\int_0^1 x\\,dx$)\n\n")

	b.WriteString("[보고서 섹션별 시각화(Diagram) 규칙]\n")
	b.WriteString("각 섹션마다 'diagram' 객체를 생성하십시오.\n")
	b.WriteString("1. type: 'radar' | 'flowchart' | 'comparison' 중 하나를 선택.\n")
	b.WriteString("2. data 구조 (type에 따라 아래 필드 중 필요한 것만 포함):\n")
	b.WriteString("   - radar 사용 시: labels, studentValues, targetValues 필드 포함 (세 배열의 길이는 같아야 함)\n")
	b.WriteString("   - flowchart 사용 시: steps 필드 포함\n")
	b.WriteString("   - comparison 사용 시: categories, score 필드 포함 (두 배열의 길이는 같아야 함)\n\n")

	b.WriteString("[섹션 구성]\n")
	for i, topic := range Outline(a) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, topic)
	}
	fmt.Fprintf(&b, "\n정확히 %d개의 섹션을 위 순서대로 JSON 배열 형식으로 반환하십시오.", types.ReportSectionCount)
	return b.String()
}
