package retrieval

var bundled = []Note{
	{Name: "가천대", Aliases: []string{"가천대학교"},
		Text: "약술형 논술. 수학 I·II 범위의 교과서 수준 문항을 짧은 시간에 다수 풀어야 하므로 계산 정확도와 풀이 속도가 당락을 가른다. 풀이 과정보다 최종 답과 핵심 식의 정확성이 중요하다."},
	{Name: "수원대", Aliases: []string{"수원대학교"},
		Text: "약술형 논술. 단답형에 가까운 문항 구성으로 실수 없는 연산이 핵심이다. EBS 연계 유형 반복 학습이 효과적이다."},
	{Name: "상명대", Aliases: []string{"상명대학교"},
		Text: "약술형 논술. 교과 개념의 정의를 정확히 서술하는 능력을 확인하며, 짧더라도 논리 흐름이 드러나는 답안이 유리하다."},
	{Name: "한국공학대", Aliases: []string{"한국공대", "한국산업기술대", "산기대"},
		Text: "약술형 논술. 수능 4점 문항과 유사한 계산형 문제가 출제되며 공학적 계산 능력과 수능형 문항 익숙도가 중요하다."},
	{Name: "한양대(에리카)", Aliases: []string{"에리카", "한양대 에리카", "한양에리카"},
		Text: "수학 I·II와 미적분 범위. 전통적인 미적분 계산 비중이 높고 정적분 활용 문항이 자주 출제된다. 계산 과정의 단계별 서술이 채점된다."},
	{Name: "건국대", Aliases: []string{"건대", "건국대학교"},
		Text: "수학 I·II와 미적분 범위. 함수의 성질(연속·미분가능성·극값)을 근거로 결론을 끌어내는 논리적 추론을 강조한다. 근거 없는 결론은 큰 감점 요인이다."},
	{Name: "단국대", Aliases: []string{"단대", "단국대학교"},
		Text: "수학 I·II와 미적분 범위. 다양한 미적분 공식의 숙달과 적용 능력을 요구하며 소문항 연계형 구성이 많다."},
	{Name: "아주대", Aliases: []string{"아주대학교"},
		Text: "수학 I·II와 미적분 범위. 긴 호흡의 논증과 증명 문항이 당락을 결정한다. 제시문의 조건을 빠짐없이 활용하는 구조적 서술이 필요하다."},
	{Name: "숙명여대", Aliases: []string{"숙대", "숙명여자대"},
		Text: "수학 I·II와 미적분 범위. 정교한 답안 서술과 논리적 비약 방지가 중요하며 부분 점수 체계가 세밀하다."},
	{Name: "한양대", Aliases: []string{"한양대학교", "한대"},
		Text: "수학 I·II와 미적분 범위. 극강의 미적분 계산량으로 시간 내 풀이 능력이 최우선이다. 답안 분량보다 정확한 결과 도출이 중요하다."},
	{Name: "서강대", Aliases: []string{"서강대학교"},
		Text: "수학 I·II, 미적분, 확률과 통계 범위. 전범위 통합 사고력과 엄밀한 논증을 요구하며 증명형 소문항이 다수 출제된다."},
	{Name: "성균관대", Aliases: []string{"성대", "성균관대학교", "성균관"},
		Text: "수학 I·II, 미적분, 확률과 통계 범위. 제시문 기반의 추론과 학문적 깊이를 평가한다. 제시문의 정의를 자기 언어로 재구성하는 서술이 유리하다."},
	{Name: "중앙대", Aliases: []string{"중대", "중앙대학교"},
		Text: "수학 I·II, 미적분, 확률과 통계 범위. 확률과 통계 파트의 복잡한 연산과 경우의 수 분류가 핵심이다."},
	{Name: "연세대", Aliases: []string{"연대", "연세대학교"},
		Text: "수학 I·II, 미적분, 확률과 통계, 기하 전범위. 기하와 증명을 통한 변별력이 크며 수학적 귀납법 등 엄밀한 증명 서술을 요구한다."},
	{Name: "고려대", Aliases: []string{"고대", "고려대학교"},
		Text: "수학 I·II, 미적분, 확률과 통계, 기하 전범위. 전 영역에 걸친 고른 논리력을 측정하며 수능 최저학력기준 충족이 중요하다."},
	{Name: "서울시립대", Aliases: []string{"시립대", "서울시립대학교"},
		Text: "수학 I·II, 미적분, 확률과 통계, 기하 전범위. 공대 중심의 기하 연산과 공간 지각력을 요구한다."},
}
