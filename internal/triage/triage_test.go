package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/certimatch/internal/domain"
)

func ids(items []domain.RemediationItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestWeight(t *testing.T) {
	cases := map[domain.Priority]int{
		"Critical":      5,
		"CRITICAL":      5,
		"High/Critical": 5,
		"High":          4,
		"high":          4,
		"Medium":        3,
		"Low":           2,
		"Urgent":        1,
		"":              1,
	}

	for priority, want := range cases {
		assert.Equal(t, want, Weight(priority), "priority %q", priority)
	}
}

func TestTopOpen_FiltersAndSorts(t *testing.T) {
	items := []domain.RemediationItem{
		{ID: "1", Priority: domain.PriorityLow, Status: domain.RemediationPending},
		{ID: "2", Priority: domain.PriorityCritical, Status: domain.RemediationPending},
		{ID: "3", Priority: domain.PriorityCritical, Status: domain.RemediationDone},
		{ID: "4", Priority: domain.PriorityHigh, Status: domain.RemediationPending},
	}

	assert.Equal(t, []string{"2", "4", "1"}, ids(TopOpen(items, DefaultLimit)))
	assert.Equal(t, "1", items[0].ID, "input must not be reordered")
}

func TestTopOpen_StableForEqualWeights(t *testing.T) {
	items := []domain.RemediationItem{
		{ID: "a", Priority: "High", Status: domain.RemediationPending},
		{ID: "b", Priority: "Medium", Status: domain.RemediationInProgress},
		{ID: "c", Priority: "high", Status: domain.RemediationInProgress},
		{ID: "d", Priority: "", Status: domain.RemediationPending},
		{ID: "e", Priority: "HIGH", Status: domain.RemediationPending},
		{ID: "f", Priority: "unknown", Status: domain.RemediationPending},
	}

	assert.Equal(t, []string{"a", "c", "e", "b", "d"}, ids(TopOpen(items, 5)))
	assert.Equal(t, ids(TopOpen(items, 5)), ids(TopOpen(items, 5)))
}

func TestTopOpen_Limits(t *testing.T) {
	items := []domain.RemediationItem{
		{ID: "1", Priority: "Low", Status: domain.RemediationPending},
		{ID: "2", Priority: "High", Status: domain.RemediationPending},
	}

	assert.Empty(t, TopOpen(items, 0))
	assert.Empty(t, TopOpen(items, -3))
	assert.Equal(t, []string{"2"}, ids(TopOpen(items, 1)))

	empty := TopOpen(nil, 5)
	require.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCompletionRate(t *testing.T) {
	assert.Equal(t, 0, CompletionRate(nil))

	items := []domain.RemediationItem{
		{ID: "eu_r1", Status: domain.RemediationPending},
		{ID: "eu_r2", Status: domain.RemediationPending},
		{ID: "eu_r3", Status: domain.RemediationInProgress},
		{ID: "eu_r4", Status: domain.RemediationDone},
	}
	assert.Equal(t, 25, CompletionRate(items))
}
