package triage

import (
	"sort"

	"github.com/rcliao/certimatch/internal/checklist"
	"github.com/rcliao/certimatch/internal/domain"
)

// TopOpen returns up to limit items that are not done, heaviest priority
// first. Items of equal weight keep their input order. The input slice is
// not modified.
func TopOpen(items []domain.RemediationItem, limit int) []domain.RemediationItem {
	if limit <= 0 {
		return []domain.RemediationItem{}
	}

	open := make([]domain.RemediationItem, 0, len(items))
	for _, item := range items {
		if item.Open() {
			open = append(open, item)
		}
	}

	sort.SliceStable(open, func(i, j int) bool {
		return Weight(open[i].Priority) > Weight(open[j].Priority)
	})

	if len(open) > limit {
		open = open[:limit]
	}
	return open
}

// CompletionRate is the share of done items as a rounded percentage.
func CompletionRate(items []domain.RemediationItem) int {
	counts := domain.CountRemediation(items)
	return checklist.Percent(counts.Done, counts.Total)
}
