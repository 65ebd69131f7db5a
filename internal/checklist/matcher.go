package checklist

import (
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
)

// Evaluate matches uploaded names against the required labels. The first
// upload (in input order) whose normalized name equals a required key claims
// it; later uploads with the same key are ignored. Uploads that match no
// required label do not count toward progress.
func Evaluate(requiredLabels []string, uploadedNames []string) domain.ChecklistResult {
	labels := make([]string, 0, len(requiredLabels))
	seenLabels := make(map[string]bool, len(requiredLabels))
	requiredKeys := make(map[string]bool, len(requiredLabels))
	for _, label := range requiredLabels {
		if strings.TrimSpace(label) == "" || seenLabels[label] {
			continue
		}
		seenLabels[label] = true
		labels = append(labels, label)
		if key := Normalize(label); key != "" {
			requiredKeys[key] = true
		}
	}

	claimed := make(map[string]string)
	for _, name := range uploadedNames {
		key := Normalize(name)
		if key == "" || !requiredKeys[key] {
			continue
		}
		if _, taken := claimed[key]; !taken {
			claimed[key] = name
		}
	}

	result := domain.ChecklistResult{
		Entries:       make([]domain.ChecklistEntry, 0, len(labels)),
		TotalRequired: len(labels),
	}
	for _, label := range labels {
		key := Normalize(label)
		entry := domain.ChecklistEntry{
			RequiredLabel: label,
			NormalizedKey: key,
		}
		if hit, ok := claimed[key]; ok {
			entry.MatchedFilename = &hit
			result.DoneCount++
		}
		result.Entries = append(result.Entries, entry)
	}
	result.Percent = Percent(result.DoneCount, result.TotalRequired)

	return result
}

// EvaluateFiles is Evaluate over stored file records. Nil records and
// records without a name are skipped.
func EvaluateFiles(requiredLabels []string, files []*domain.UploadedFile) domain.ChecklistResult {
	names := make([]string, 0, len(files))
	for _, f := range files {
		if f == nil || f.Name == "" {
			continue
		}
		names = append(names, f.Name)
	}
	return Evaluate(requiredLabels, names)
}

// Percent is round(done/total*100) clamped to [0, 100]; zero when total is zero.
func Percent(done, total int) int {
	if total <= 0 || done <= 0 {
		return 0
	}
	if done >= total {
		return 100
	}
	return (done*200 + total) / (2 * total)
}
