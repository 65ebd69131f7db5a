package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/certimatch/internal/chat"
	"github.com/rcliao/certimatch/internal/domain"
)

func TestChatService_Context(t *testing.T) {
	svcs := newTestServices(t)
	project := newTestProject(t, svcs, domain.MarketEU)
	seedRemediation(t, svcs, project, domain.MarketEU)

	_, err := svcs.Repository.Upload(project.ID, "유럽대리인계약서.pdf", 100)
	require.NoError(t, err)
	_, err = svcs.Repository.Upload(project.ID, "unrelated.png", 100)
	require.NoError(t, err)

	ctx, items, err := svcs.Chat.Context(project.ID, domain.ViewDashboard)
	require.NoError(t, err)
	assert.Len(t, items, 4)
	assert.Equal(t, domain.MarketEU, ctx.Market)
	assert.Equal(t, domain.ViewDashboard, ctx.View)
	assert.Equal(t, domain.RemediationCounts{Total: 4, Pending: 3, Done: 1}, ctx.Remediation)
	assert.Equal(t, 1, ctx.UploadedCount)
	assert.Equal(t, 2, ctx.RepoUploadedCount)
}

func TestChatService_FailFixFlow(t *testing.T) {
	svcs := newTestServices(t)
	project := newTestProject(t, svcs, domain.MarketEU)
	seedRemediation(t, svcs, project, domain.MarketEU)

	id := svcs.Chat.Start()

	reply, err := svcs.Chat.Ask(id, project.ID, domain.ViewDashboard, "FAIL 플레이북 보여줘")
	require.NoError(t, err)
	assert.Equal(t, chat.ScenarioFailFixFlow, reply.Intent.Scenario)
	require.Len(t, reply.Options, 3)
	assert.Contains(t, reply.Text, "1. [High] 비상정지")

	reply, err = svcs.Chat.Ask(id, project.ID, domain.ViewDashboard, "2번")
	require.NoError(t, err)
	assert.Equal(t, chat.IntentPick, reply.Intent.Kind)
	require.NotNil(t, reply.Playbook)
	assert.Equal(t, "eu_r2", reply.Playbook.ItemID)

	session, err := svcs.Chat.Session(id)
	require.NoError(t, err)
	assert.IsType(t, chat.Idle{}, session.State())
}

func TestChatService_Select(t *testing.T) {
	svcs := newTestServices(t)
	project := newTestProject(t, svcs, domain.MarketEU)

	id := svcs.Chat.Start()
	reply, err := svcs.Chat.Select(id, project.ID, domain.ViewDocs, chat.ScenarioDocsWhatMissing)
	require.NoError(t, err)
	assert.Equal(t, chat.IntentScenario, reply.Intent.Kind)
	assert.NotEmpty(t, reply.Text)
}

func TestChatService_UnknownSession(t *testing.T) {
	svcs := newTestServices(t)
	project := newTestProject(t, svcs, domain.MarketEU)

	_, err := svcs.Chat.Ask("nope", project.ID, domain.ViewDashboard, "안녕")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
