// Package playbook turns a failed remediation item into a structured
// corrective-action playbook by merging keyword-triggered rule bundles.
package playbook

import (
	"fmt"
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
)

const placeholder = "-"

// Section titles in rendering order.
const (
	TitleRootCause  = "원인 가설"
	TitleQuickFix   = "즉시 조치 (Quick Fix)"
	TitleProperFix  = "근본 조치 (Proper Fix)"
	TitleEvidence   = "필요 증빙"
	TitleValidation = "검증 방법"
	TitlePitfalls   = "흔한 실수"
)

var bracketReplacer = strings.NewReplacer("(", " ", ")", " ", "[", " ", "]", " ", "{", " ", "}", " ")

// Builder holds an ordered rule table and the baseline bundle.
type Builder struct {
	rules    []Rule
	baseline domain.Bundle
}

// NewBuilder returns a builder over DefaultRules and Baseline.
func NewBuilder() *Builder {
	return NewBuilderWithRules(DefaultRules, Baseline)
}

// NewBuilderWithRules returns a builder over a custom rule table.
func NewBuilderWithRules(rules []Rule, baseline domain.Bundle) *Builder {
	return &Builder{rules: rules, baseline: baseline}
}

// Build is NewBuilder().Build.
func Build(item domain.RemediationItem) domain.Playbook {
	return NewBuilder().Build(item)
}

// Fired returns the names of the rules whose triggers occur in task, in table order.
func (b *Builder) Fired(task string) []string {
	names := []string{}
	for _, r := range b.matching(task) {
		names = append(names, r.Name)
	}
	return names
}

// Build produces the playbook for item. The result depends only on the
// item's fields and the rule table.
func (b *Builder) Build(item domain.RemediationItem) domain.Playbook {
	fired := b.matching(item.Task)
	bundles := make([]domain.Bundle, 0, len(fired)+1)
	for _, r := range fired {
		bundles = append(bundles, r.Bundle)
	}
	merged := Merge(append(bundles, b.baseline)...)

	summary := domain.PlaybookSummary{
		Task:     orPlaceholder(item.Task),
		Status:   orPlaceholder(string(item.Status)),
		Priority: orPlaceholder(string(item.Priority)),
		Type:     orPlaceholder(item.Type),
	}
	if merged.StandardGuess != "" {
		guess := merged.StandardGuess
		summary.StandardGuess = &guess
	}

	return domain.Playbook{
		ItemID:  item.ID,
		Title:   fmt.Sprintf("FAIL 개선 플레이북: %s", summary.Task),
		Summary: summary,
		Sections: []domain.PlaybookSection{
			{Title: TitleRootCause, Bullets: merged.RootCause},
			{Title: TitleQuickFix, Bullets: merged.QuickFix},
			{Title: TitleProperFix, Bullets: merged.ProperFix},
			{Title: TitleEvidence, Bullets: merged.Evidence},
			{Title: TitleValidation, Bullets: merged.Validation},
			{Title: TitlePitfalls, Bullets: merged.Pitfalls},
		},
	}
}

func (b *Builder) matching(task string) []Rule {
	text := compact(task)
	if text == "" {
		return nil
	}
	var fired []Rule
	for _, r := range b.rules {
		for _, trigger := range r.Triggers {
			t := compact(trigger)
			if t != "" && strings.Contains(text, t) {
				fired = append(fired, r)
				break
			}
		}
	}
	return fired
}

// compact lowercases s, drops brackets and removes all whitespace so that
// "ISO 13850", "(ISO13850)" and "iso13850" compare equal.
func compact(s string) string {
	s = bracketReplacer.Replace(strings.ToLower(s))
	return strings.Join(strings.Fields(s), "")
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
