package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/certimatch/internal/domain"
)

func threeOptions() []domain.RemediationItem {
	return []domain.RemediationItem{
		{ID: "a", Task: "비상정지 버튼 색상 오류 (ISO13850)", Priority: domain.PriorityCritical},
		{ID: "b", Task: "가드 간격 수정", Priority: domain.PriorityHigh},
		{ID: "c", Task: "매뉴얼 번역", Priority: domain.PriorityLow},
	}
}

func TestClassify_PickFlow(t *testing.T) {
	state := Offer(threeOptions())

	intent, next := Classify("2번", domain.ViewDashboard, state)
	assert.Equal(t, IntentPick, intent.Kind)
	assert.Equal(t, 2, intent.Index)
	require.NotNil(t, intent.Item)
	assert.Equal(t, "b", intent.Item.ID)
	assert.Equal(t, Idle{}, next)

	intent, next = Classify("9", domain.ViewDashboard, state)
	assert.Equal(t, IntentPickOutOfRange, intent.Kind)
	assert.Equal(t, 9, intent.Index)
	assert.Nil(t, intent.Item)
	assert.Equal(t, state, next)

	// still able to pick after an out-of-range answer
	intent, next = Classify(" 1 ", domain.ViewDashboard, next)
	assert.Equal(t, IntentPick, intent.Kind)
	assert.Equal(t, "a", intent.Item.ID)
	assert.Equal(t, Idle{}, next)

	intent, next = Classify("banana", domain.ViewDashboard, state)
	assert.Equal(t, IntentReprompt, intent.Kind)
	assert.Equal(t, state, next)
}

func TestClassify_PickEdgeCases(t *testing.T) {
	state := Offer(threeOptions())

	cases := []struct {
		text string
		want IntentKind
	}{
		{"3", IntentPick},
		{"3 번", IntentPick},
		{"0", IntentPickOutOfRange},
		{"4번", IntentPickOutOfRange},
		{"99999999999999999999", IntentPickOutOfRange},
		{"2번요", IntentReprompt},
		{"-1", IntentReprompt},
		{"", IntentReprompt},
		{"FAIL 플레이북", IntentReprompt},
	}
	for _, c := range cases {
		intent, _ := Classify(c.text, domain.ViewDashboard, state)
		assert.Equal(t, c.want, intent.Kind, "input %q", c.text)
	}
}

func TestClassify_Scenarios(t *testing.T) {
	tests := []struct {
		text string
		view domain.View
		want Scenario
	}{
		{"어디 인증기관으로 매칭할까?", domain.ViewDashboard, ScenarioLabsWhere},
		{"매칭 추천해줘", domain.ViewLabs, ScenarioLabsWhere},
		{"왜 BEST 인가요", domain.ViewLabs, ScenarioLabsBestReason},
		{"규제진단 FAIL 고치는 팁 알려줘", domain.ViewDiagnosis, ScenarioDiagFixTips},
		{"조치율 알려줘", domain.ViewDashboard, ScenarioDiagActionSummary},
		{"FAIL 항목 플레이북", domain.ViewDashboard, ScenarioFailFixFlow},
		{"불합격 항목 어떻게 해", domain.ViewDiagnosis, ScenarioFailFixFlow},
		{"파일저장소 자동 업로드가 안돼요", domain.ViewDocs, ScenarioRepoAutofillHelp},
		{"저장소 선택이 안 떠요", domain.ViewDocs, ScenarioRepoPickerHelp},
		{"필수 서류 중 뭐가 부족해?", domain.ViewDocs, ScenarioDocsWhatMissing},
		{"초안 만들어도 돼?", domain.ViewDocs, ScenarioDocsDraftOK},
		{"TCF 의미", domain.ViewDocs, ScenarioDocsOutputExplain},
		{"그 다음은?", domain.ViewDocs, ScenarioDocsNextStep},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			intent, next := Classify(tt.text, tt.view, Idle{})
			assert.Equal(t, IntentScenario, intent.Kind)
			assert.Equal(t, tt.want, intent.Scenario)
			assert.Equal(t, Idle{}, next)
		})
	}
}

func TestClassify_DocsPredicatesNeedDocsView(t *testing.T) {
	intent, _ := Classify("필수 서류 중 뭐가 부족해?", domain.ViewDashboard, Idle{})
	assert.Equal(t, IntentFallback, intent.Kind)
}

func TestClassify_Fallback(t *testing.T) {
	views := []domain.View{domain.ViewDashboard, domain.ViewDiagnosis, domain.ViewDocs, domain.ViewLabs, domain.ViewSettings, ""}
	for _, view := range views {
		intent, next := Classify("오늘 날씨 어때", view, Idle{})
		assert.Equal(t, IntentFallback, intent.Kind, "view %q", view)
		assert.Equal(t, Scenario(""), intent.Scenario)
		assert.Equal(t, Idle{}, next)
	}
}

func TestClassify_DiagnosisBeforeGenericFail(t *testing.T) {
	intent, _ := Classify("규제진단 fail", domain.ViewDiagnosis, Idle{})
	assert.Equal(t, ScenarioDiagFixTips, intent.Scenario)
}

func TestOffer(t *testing.T) {
	assert.Equal(t, Idle{}, Offer(nil))

	options := threeOptions()
	state := Offer(options)
	options[0].ID = "changed"

	pending, ok := state.(AwaitingPick)
	require.True(t, ok)
	assert.Equal(t, "a", pending.Options[0].ID)
}
