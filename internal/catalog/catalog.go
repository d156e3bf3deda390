// Package catalog is the fixed set of universities the scorer ranks.
package catalog

import (
	"strings"

	"questio/internal/types"
)

var (
	scopeShort = []string{types.ScopeMath1, types.ScopeMath2}
	scopeMid   = []string{types.ScopeMath1, types.ScopeMath2, types.ScopeCalculus}
	scopeWide  = []string{types.ScopeMath1, types.ScopeMath2, types.ScopeCalculus, types.ScopeProbability}
	scopeFull  = []string{types.ScopeMath1, types.ScopeMath2, types.ScopeCalculus, types.ScopeProbability, types.ScopeGeometry}
)

var universities = []types.University{
	// 약술형
	{Name: "가천대", Type: 1, Tier: types.TierShort, Scope: scopeShort, PreferredStyle: types.StyleComputation, Features: "약술형 논술의 메카, 빠르고 정확한 연산이 핵심"},
	{Name: "수원대", Type: 1, Tier: types.TierShort, Scope: scopeShort, PreferredStyle: types.StyleComputation, Features: "단답형 중심, 실수 없는 연산력이 합격의 열쇠"},
	{Name: "상명대", Type: 1, Tier: types.TierShort, Scope: scopeShort, PreferredStyle: types.StyleArgument, Features: "교과 개념의 정확한 정의와 서술 중시"},
	{Name: "한국공학대", Type: 1, Tier: types.TierShort, Scope: scopeShort, PreferredStyle: types.StyleComputation, Features: "공학적 계산 능력과 수능형 문항 익숙도 중요"},

	// 중위권
	{Name: "한양대(에리카)", Type: 2, Tier: types.TierMid, Scope: scopeMid, PreferredStyle: types.StyleComputation, Features: "전통적인 미적분 계산 비중이 높음"},
	{Name: "건국대", Type: 2, Tier: types.TierMid, Scope: scopeMid, PreferredStyle: types.StyleArgument, Features: "함수의 성질을 이용한 논리적 추론 강조"},
	{Name: "단국대", Type: 2, Tier: types.TierMid, Scope: scopeMid, PreferredStyle: types.StyleComputation, Features: "다양한 미적분 공식의 숙달과 적용 능력 요구"},
	{Name: "아주대", Type: 2, Tier: types.TierMid, Scope: scopeMid, PreferredStyle: types.StyleArgument, Features: "긴 호흡의 논증과 증명 문항이 당락 결정"},
	{Name: "숙명여대", Type: 2, Tier: types.TierMid, Scope: scopeMid, PreferredStyle: types.StyleArgument, Features: "정교한 답안 서술과 논리적 비약 방지 중요"},

	// 상위권
	{Name: "한양대", Type: 2, Tier: types.TierTop, Scope: scopeMid, PreferredStyle: types.StyleComputation, Features: "극강의 미적분 계산량, 시간 내 풀이 능력이 최우선"},
	{Name: "서강대", Type: 3, Tier: types.TierTop, Scope: scopeWide, PreferredStyle: types.StyleArgument, Features: "전범위 통합 사고력과 엄밀한 논증 요구"},
	{Name: "성균관대", Type: 3, Tier: types.TierTop, Scope: scopeWide, PreferredStyle: types.StyleArgument, Features: "제시문 기반의 추론과 학문적 깊이 평가"},
	{Name: "중앙대", Type: 3, Tier: types.TierTop, Scope: scopeWide, PreferredStyle: types.StyleComputation, Features: "확통 파트의 복잡한 연산 및 케이스 분류가 핵심"},
	{Name: "연세대", Type: 4, Tier: types.TierTop, Scope: scopeFull, PreferredStyle: types.StyleArgument, Features: "기하와 증명을 통한 독보적인 변별력 행사"},
	{Name: "고려대", Type: 4, Tier: types.TierTop, Scope: scopeFull, PreferredStyle: types.StyleArgument, Features: "신설 전형, 전 영역에 걸친 고른 논리력 측정"},
	{Name: "서울시립대", Type: 4, Tier: types.TierTop, Scope: scopeFull, PreferredStyle: types.StyleComputation, Features: "공대 중심의 기하 연산과 공간 지각력 요구"},
}

// Default returns a copy of the built-in catalog in its canonical order.
// Order matters: the scorer breaks ties by it.
func Default() []types.University {
	out := make([]types.University, len(universities))
	for i, u := range universities {
		out[i] = u.Clone()
	}
	return out
}

// Lookup finds a university by exact name.
func Lookup(name string) (types.University, bool) {
	name = strings.TrimSpace(name)
	for _, u := range universities {
		if u.Name == name {
			return u.Clone(), true
		}
	}
	return types.University{}, false
}
