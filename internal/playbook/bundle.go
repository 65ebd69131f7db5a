package playbook

import (
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
)

// Merge unions bundles field by field in argument order.
//
//   - StandardGuess: first non-blank value.
//   - every list: concatenated, trimmed, blanks dropped, duplicates removed
//     keeping the earliest occurrence.
func Merge(bundles ...domain.Bundle) domain.Bundle {
	var merged domain.Bundle
	for _, b := range bundles {
		if merged.StandardGuess == "" {
			merged.StandardGuess = strings.TrimSpace(b.StandardGuess)
		}
		merged.RootCause = union(merged.RootCause, b.RootCause)
		merged.QuickFix = union(merged.QuickFix, b.QuickFix)
		merged.ProperFix = union(merged.ProperFix, b.ProperFix)
		merged.Evidence = union(merged.Evidence, b.Evidence)
		merged.Validation = union(merged.Validation, b.Validation)
		merged.Pitfalls = union(merged.Pitfalls, b.Pitfalls)
	}
	return merged
}

func union(dst, src []string) []string {
	if dst == nil {
		dst = make([]string, 0, len(src))
	}
	seen := make(map[string]bool, len(dst)+len(src))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		dst = append(dst, s)
	}
	return dst
}
