package playbook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/certimatch/internal/domain"
)

func section(t *testing.T, pb domain.Playbook, title string) []string {
	t.Helper()
	for _, s := range pb.Sections {
		if s.Title == title {
			return s.Bullets
		}
	}
	t.Fatalf("section %q not found", title)
	return nil
}

func TestBuild_EmergencyStop(t *testing.T) {
	item := domain.RemediationItem{
		ID:       "eu_r1",
		Task:     "비상정지 버튼 배경색 노란색으로 변경 (ISO 13850)",
		Status:   domain.RemediationPending,
		Priority: domain.PriorityHigh,
		Type:     "Design",
	}

	pb := Build(item)

	assert.Equal(t, "eu_r1", pb.ItemID)
	assert.Equal(t, "FAIL 개선 플레이북: "+item.Task, pb.Title)
	require.NotNil(t, pb.Summary.StandardGuess)
	assert.Contains(t, *pb.Summary.StandardGuess, "ISO 13850")
	assert.Equal(t, "pending", pb.Summary.Status)
	assert.Equal(t, "High", pb.Summary.Priority)
	assert.Equal(t, "Design", pb.Summary.Type)

	quick := section(t, pb, TitleQuickFix)
	found := false
	for _, b := range quick {
		if strings.Contains(b, "색상") && strings.Contains(b, "위치") {
			found = true
		}
	}
	assert.True(t, found, "quick fix should check button color and position: %v", quick)

	// baseline follows the rule bullets
	root := section(t, pb, TitleRootCause)
	require.NotEmpty(t, root)
	assert.Equal(t, DefaultRules[0].Bundle.RootCause[0], root[0])
	assert.Contains(t, root, Baseline.RootCause[0])
}

func TestBuild_SectionOrder(t *testing.T) {
	pb := Build(domain.RemediationItem{Task: "케이블 교체"})

	titles := make([]string, len(pb.Sections))
	for i, s := range pb.Sections {
		titles[i] = s.Title
	}
	assert.Equal(t, []string{
		TitleRootCause, TitleQuickFix, TitleProperFix,
		TitleEvidence, TitleValidation, TitlePitfalls,
	}, titles)
}

func TestBuild_BaselineOnly(t *testing.T) {
	pb := Build(domain.RemediationItem{ID: "x", Task: "회의록 정리"})

	assert.Nil(t, pb.Summary.StandardGuess)
	assert.Equal(t, Baseline.RootCause, section(t, pb, TitleRootCause))
	assert.Equal(t, Baseline.Pitfalls, section(t, pb, TitlePitfalls))
}

func TestBuild_EmptyFieldsUsePlaceholder(t *testing.T) {
	pb := Build(domain.RemediationItem{})

	assert.Equal(t, "-", pb.Summary.Task)
	assert.Equal(t, "-", pb.Summary.Status)
	assert.Equal(t, "-", pb.Summary.Priority)
	assert.Equal(t, "-", pb.Summary.Type)
	assert.Equal(t, "FAIL 개선 플레이북: -", pb.Title)
	assert.Nil(t, pb.Summary.StandardGuess)
	for _, s := range pb.Sections {
		assert.NotEmpty(t, s.Bullets, s.Title)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	item := domain.RemediationItem{
		ID:       "us_r2",
		Task:     "배터리 팩 UL 2054 인증 및 접지 케이블 교체",
		Status:   domain.RemediationInProgress,
		Priority: "High/Critical",
		Type:     "Part",
	}

	first := Build(item)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Build(item))
	}
}

func TestBuild_NoDuplicateBullets(t *testing.T) {
	pb := Build(domain.RemediationItem{Task: "E-STOP 비상정지 emergency 가드 협착 guard"})

	for _, s := range pb.Sections {
		seen := map[string]bool{}
		for _, b := range s.Bullets {
			assert.False(t, seen[b], "duplicate bullet %q in %s", b, s.Title)
			seen[b] = true
		}
	}
}

func TestBuilder_Fired(t *testing.T) {
	b := NewBuilder()

	assert.Equal(t, []string{"emergency-stop"}, b.Fired("비상정지 버튼 배경색 노란색으로 변경 (ISO 13850)"))
	assert.Equal(t, []string{"emergency-stop"}, b.Fired("[ISO13850] e stop"))
	assert.Equal(t, []string{"power-cable", "protective-bonding"}, b.Fired("접지 케이블 색상"))
	assert.Empty(t, b.Fired(""))
	assert.Empty(t, b.Fired("   "))
}

func TestBuilder_FirstStandardGuessWins(t *testing.T) {
	rules := []Rule{
		{Name: "a", Triggers: []string{"alpha"}, Bundle: domain.Bundle{QuickFix: []string{"a1"}}},
		{Name: "b", Triggers: []string{"beta"}, Bundle: domain.Bundle{StandardGuess: "B-STD", QuickFix: []string{"b1", "a1"}}},
		{Name: "c", Triggers: []string{"gamma"}, Bundle: domain.Bundle{StandardGuess: "C-STD"}},
	}
	b := NewBuilderWithRules(rules, domain.Bundle{StandardGuess: "BASE", QuickFix: []string{"base"}})

	pb := b.Build(domain.RemediationItem{Task: "gamma beta alpha"})

	require.NotNil(t, pb.Summary.StandardGuess)
	assert.Equal(t, "B-STD", *pb.Summary.StandardGuess)
	assert.Equal(t, []string{"a1", "b1", "base"}, section(t, pb, TitleQuickFix))
}
