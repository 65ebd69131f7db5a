package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/certimatch/internal/domain"
)

func euContext(items []domain.RemediationItem) domain.ChatContext {
	return domain.ChatContext{
		View:        domain.ViewDiagnosis,
		Market:      domain.MarketEU,
		Remediation: domain.CountRemediation(items),
	}
}

func euItems() []domain.RemediationItem {
	return []domain.RemediationItem{
		{ID: "eu_r1", Task: "비상정지 버튼 배경색 노란색으로 변경 (ISO 13850)", Status: domain.RemediationPending, Priority: domain.PriorityHigh, Type: "Design"},
		{ID: "eu_r2", Task: "사용자 매뉴얼 불어/독어 번역본 추가", Status: domain.RemediationDone, Priority: domain.PriorityMedium, Type: "Docs"},
		{ID: "eu_r3", Task: "회전부 협착 방지 가드 간격 수정 (ISO 13854)", Status: domain.RemediationInProgress, Priority: domain.PriorityCritical, Type: "Design"},
		{ID: "eu_r4", Task: "전원 케이블 H05VV-F 인증품으로 교체", Status: domain.RemediationPending, Priority: domain.PriorityLow, Type: "Part"},
	}
}

func TestNewSession_Greets(t *testing.T) {
	s := NewSession(nil, 0)

	msgs := s.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.RoleAI, msgs[0].Role)
	assert.Equal(t, Greeting, msgs[0].Text)
	assert.Equal(t, Idle{}, s.State())
}

func TestSession_FailFixFlow(t *testing.T) {
	s := NewSession(nil, 5)
	items := euItems()
	ctx := euContext(items)

	reply := s.Ask("FAIL 플레이북 보여줘", ctx, items)
	assert.Equal(t, ScenarioFailFixFlow, reply.Intent.Scenario)
	require.Len(t, reply.Options, 3)
	assert.Equal(t, "eu_r3", reply.Options[0].ID)
	assert.Equal(t, "eu_r1", reply.Options[1].ID)
	assert.Equal(t, "eu_r4", reply.Options[2].ID)
	assert.Contains(t, reply.Text, "1. [Critical]")
	assert.IsType(t, AwaitingPick{}, s.State())

	reply = s.Ask("banana", ctx, items)
	assert.Equal(t, IntentReprompt, reply.Intent.Kind)
	assert.Contains(t, reply.Text, "1~3")
	assert.IsType(t, AwaitingPick{}, s.State())

	reply = s.Ask("9", ctx, items)
	assert.Equal(t, IntentPickOutOfRange, reply.Intent.Kind)
	assert.Contains(t, reply.Text, "9번")
	assert.IsType(t, AwaitingPick{}, s.State())

	reply = s.Ask("2번", ctx, items)
	assert.Equal(t, IntentPick, reply.Intent.Kind)
	require.NotNil(t, reply.Playbook)
	assert.Equal(t, "eu_r1", reply.Playbook.ItemID)
	require.NotNil(t, reply.Playbook.Summary.StandardGuess)
	assert.Equal(t, "ISO 13850 (Emergency Stop)", *reply.Playbook.Summary.StandardGuess)
	assert.Contains(t, reply.Text, "FAIL 개선 플레이북")
	assert.Equal(t, Idle{}, s.State())

	// greeting plus four question/answer pairs
	assert.Len(t, s.Messages(), 9)
}

func TestSession_FailFixFlowWithNothingOpen(t *testing.T) {
	s := NewSession(nil, 5)
	items := []domain.RemediationItem{{ID: "x", Status: domain.RemediationDone}}

	reply := s.Ask("불합격 항목", euContext(items), items)
	assert.Empty(t, reply.Options)
	assert.Contains(t, reply.Text, "미완료 FAIL 항목이 없어요")
	assert.Equal(t, Idle{}, s.State())
}

func TestSession_ScenarioAndFallback(t *testing.T) {
	s := NewSession(nil, 5)
	items := euItems()
	ctx := euContext(items)

	reply := s.Ask("규제진단 FAIL 고치는 팁", ctx, items)
	assert.Equal(t, IntentScenario, reply.Intent.Kind)
	assert.Contains(t, reply.Text, "**규제진단 FAIL 개선 가이드 (유럽(CE))**")
	assert.Contains(t, reply.Text, "**4개** (완료 1 / 남음 3)")

	reply = s.Ask("점심 뭐 먹지", ctx, items)
	assert.Equal(t, IntentFallback, reply.Intent.Kind)
	assert.Contains(t, reply.Text, "제가 질문을 정확히 못 잡았어요")
}

func TestSession_Select(t *testing.T) {
	s := NewSession(nil, 5)
	ctx := domain.ChatContext{View: domain.ViewDocs, Market: domain.MarketUS}

	reply := s.Select(ScenarioDocsAutofillTips, ctx)
	assert.Equal(t, ScenarioDocsAutofillTips, reply.Intent.Scenario)
	assert.Contains(t, reply.Text, "Docs에서 파일저장소 자동 업로드 팁")

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "파일저장소 자동 업로드가 안돼요. 뭐부터 확인해요?", msgs[1].Text)

	reply = s.Select(ScenarioFailFixFlow, ctx)
	assert.Equal(t, IntentFallback, reply.Intent.Kind)
}
