package playbook

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/certimatch/internal/domain"
)

func TestMerge(t *testing.T) {
	merged := Merge(
		domain.Bundle{RootCause: []string{"a", " b ", ""}},
		domain.Bundle{StandardGuess: "  ", RootCause: []string{"b", "c"}},
		domain.Bundle{StandardGuess: "STD-1", Evidence: []string{"e"}},
		domain.Bundle{StandardGuess: "STD-2", Evidence: []string{"e", "f"}},
	)

	assert.Equal(t, "STD-1", merged.StandardGuess)
	assert.Equal(t, []string{"a", "b", "c"}, merged.RootCause)
	assert.Equal(t, []string{"e", "f"}, merged.Evidence)
	assert.Empty(t, merged.QuickFix)
	assert.NotNil(t, merged.QuickFix)
}

func TestMerge_NoBundles(t *testing.T) {
	merged := Merge()
	assert.Equal(t, "", merged.StandardGuess)
	assert.Nil(t, merged.RootCause)
}

func TestRender(t *testing.T) {
	out := Render(Build(domain.RemediationItem{
		Task:     "비상정지 버튼 배경색 노란색으로 변경 (ISO 13850)",
		Status:   domain.RemediationPending,
		Priority: domain.PriorityHigh,
		Type:     "Design",
	}))

	assert.Contains(t, out, "**FAIL 개선 플레이북: 비상정지 버튼")
	assert.Contains(t, out, "- 관련 표준(추정): ISO 13850 (Emergency Stop)")
	assert.Contains(t, out, "1) "+TitleRootCause)
	assert.Contains(t, out, "6) "+TitlePitfalls)
	assert.Less(t, strings.Index(out, TitleQuickFix), strings.Index(out, TitleProperFix))
}
