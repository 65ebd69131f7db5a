// Package triage orders open remediation items by priority.
package triage

import (
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
)

// DefaultLimit is how many items a triage list shows.
const DefaultLimit = 5

var priorityWeights = []struct {
	needle string
	weight int
}{
	{"critical", 5},
	{"high", 4},
	{"medium", 3},
	{"low", 2},
}

// Weight maps a free-text priority to a sort weight. Matching is a
// case-insensitive substring test so combined labels such as
// "High/Critical" resolve to the strongest term checked first.
// Unknown or empty priorities weigh 1.
func Weight(priority domain.Priority) int {
	p := strings.ToLower(string(priority))
	for _, pw := range priorityWeights {
		if strings.Contains(p, pw.needle) {
			return pw.weight
		}
	}
	return 1
}
