package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rcliao/certimatch/internal/checklist"
	"github.com/rcliao/certimatch/internal/domain"
)

func TestFormatChecklistAsMarkdown(t *testing.T) {
	result := checklist.Evaluate([]string{"RT100 BOM", "유럽대리인계약서"}, []string{"rt100_bom.xlsx"})

	md := FormatChecklistAsMarkdown(result)
	assert.Contains(t, md, "(1/2, 50%)")
	assert.Contains(t, md, "- ✅ RT100 BOM ← `rt100_bom.xlsx`")
	assert.Contains(t, md, "- ⬜ 유럽대리인계약서")
}

func TestFormatChecklistAsMarkdown_NoList(t *testing.T) {
	md := FormatChecklistAsMarkdown(checklist.Evaluate(nil, []string{"a.pdf"}))
	assert.Contains(t, md, "(0/0, 0%)")
	assert.Contains(t, md, "No fixed document list")
}

func TestFormatTriageAsMarkdown(t *testing.T) {
	md := FormatTriageAsMarkdown(domain.MarketUS, []domain.RemediationItem{
		{ID: "us_r1", Task: "메인 차단기 교체", Status: domain.RemediationPending, Priority: domain.PriorityHigh},
		{ID: "x", Task: "라벨", Status: domain.RemediationInProgress},
	})
	assert.Contains(t, md, "미국(NRTL/FCC)")
	assert.Contains(t, md, "1. ⏳ **[High]** 메인 차단기 교체 `us_r1`")
	assert.Contains(t, md, "2. 🔄 **[-]** 라벨 `x`")

	assert.Contains(t, FormatTriageAsMarkdown(domain.MarketEU, nil), "No open action items")
}

func TestFormatResult_FallsBackToJSON(t *testing.T) {
	text, err := FormatResult(map[string]string{"status": "success"})
	assert.NoError(t, err)
	assert.Equal(t, `{"status":"success"}`, text)

	text, err = FormatResult("plain")
	assert.NoError(t, err)
	assert.Equal(t, "plain", text)
}
