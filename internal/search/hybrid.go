package search

import (
	"sort"
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
)

// HybridSearch ranks a project's remediation items against a free-text query.
type HybridSearch struct {
	storage RemediationStorage
}

type RemediationStorage interface {
	ListRemediation(projectID string, market domain.Market) ([]domain.RemediationItem, error)
}

func NewHybridSearch(storage RemediationStorage) *HybridSearch {
	return &HybridSearch{
		storage: storage,
	}
}

func (hs *HybridSearch) Search(projectID, query string, opts domain.SearchOptions) ([]*domain.SearchResult, error) {
	markets := domain.ActiveMarkets
	if opts.Market != "" {
		markets = []domain.Market{opts.Market}
	}

	var items []domain.RemediationItem
	for _, market := range markets {
		list, err := hs.storage.ListRemediation(projectID, market)
		if err != nil {
			return nil, err
		}
		items = append(items, list...)
	}

	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return []*domain.SearchResult{}, nil
	}

	var results []*domain.SearchResult
	for _, item := range items {
		// Strategy 1: keyword search in the task text
		if score := hs.keywordSearch(item, queryLower); score > 0 {
			results = append(results, &domain.SearchResult{
				Item:      item,
				Score:     score,
				MatchType: "keyword",
				Snippet:   hs.extractSnippet(item.Task, queryLower, 100),
			})
		}

		// Strategy 2: whitespace-insensitive match, so "iso13850" finds "ISO 13850"
		if score := hs.compactSearch(item, queryLower); score > 0 {
			results = append(results, &domain.SearchResult{
				Item:      item,
				Score:     score,
				MatchType: "compact",
				Snippet:   item.Task,
			})
		}

		// Strategy 3: structural search over id/type/priority/status
		if score := hs.structuralSearch(item, queryLower); score > 0 {
			results = append(results, &domain.SearchResult{
				Item:      item,
				Score:     score,
				MatchType: "structural",
				Snippet:   hs.generateStructuralSnippet(item, queryLower),
			})
		}
	}

	merged := hs.mergeAndRank(results)

	if opts.Limit > 0 {
		end := opts.Offset + opts.Limit
		if end > len(merged) {
			end = len(merged)
		}
		if opts.Offset < len(merged) {
			merged = merged[opts.Offset:end]
		} else {
			merged = []*domain.SearchResult{}
		}
	}

	return merged, nil
}

func (hs *HybridSearch) keywordSearch(item domain.RemediationItem, query string) float64 {
	taskLower := strings.ToLower(item.Task)
	if !strings.Contains(taskLower, query) {
		return 0.0
	}

	score := 10.0
	if taskLower == query {
		score += 5.0 // Exact match bonus
	}
	return score
}

// compactSearch only scores items the keyword strategy missed.
func (hs *HybridSearch) compactSearch(item domain.RemediationItem, query string) float64 {
	if strings.Contains(strings.ToLower(item.Task), query) {
		return 0.0
	}
	if strings.Contains(compact(item.Task), compact(query)) {
		return 7.0
	}
	return 0.0
}

func (hs *HybridSearch) structuralSearch(item domain.RemediationItem, query string) float64 {
	score := 0.0

	if strings.ToLower(item.ID) == query {
		score += 8.0
	}
	if strings.Contains(strings.ToLower(string(item.Priority)), query) {
		score += 6.0
	}
	if strings.Contains(strings.ToLower(item.Type), query) {
		score += 4.0
	}
	if strings.ToLower(string(item.Status)) == query {
		score += 3.0
	}

	return score
}

func (hs *HybridSearch) generateStructuralSnippet(item domain.RemediationItem, query string) string {
	switch {
	case strings.ToLower(item.ID) == query:
		return "ID: " + hs.highlightText(item.ID, query)
	case strings.Contains(strings.ToLower(string(item.Priority)), query):
		return "Priority: " + hs.highlightText(string(item.Priority), query)
	case strings.Contains(strings.ToLower(item.Type), query):
		return "Type: " + hs.highlightText(item.Type, query)
	case strings.ToLower(string(item.Status)) == query:
		return "Status: " + string(item.Status)
	}
	return item.Task
}

func (hs *HybridSearch) extractSnippet(text, query string, maxLength int) string {
	runes := []rune(text)
	textLower := []rune(strings.ToLower(text))
	queryRunes := []rune(query)

	index := runeIndex(textLower, queryRunes)
	if index == -1 || len(textLower) != len(runes) {
		if len(runes) > maxLength {
			return string(runes[:maxLength]) + "..."
		}
		return text
	}

	// Extract context around the match
	start := index - 30
	if start < 0 {
		start = 0
	}

	end := index + len(queryRunes) + 30
	if end > len(runes) {
		end = len(runes)
	}

	snippet := string(runes[start:end])
	if start > 0 {
		snippet = "..." + snippet
	}
	if end < len(runes) {
		snippet = snippet + "..."
	}

	return hs.highlightText(snippet, query)
}

func (hs *HybridSearch) highlightText(text, query string) string {
	runes := []rune(text)
	textLower := []rune(strings.ToLower(text))
	queryRunes := []rune(strings.ToLower(query))

	index := runeIndex(textLower, queryRunes)
	if index == -1 || len(textLower) != len(runes) {
		return text
	}

	before := string(runes[:index])
	match := string(runes[index : index+len(queryRunes)])
	after := string(runes[index+len(queryRunes):])

	return before + "**" + match + "**" + after
}

// mergeAndRank sums scores per item and sorts by score descending, keeping
// first-seen order for ties.
func (hs *HybridSearch) mergeAndRank(results []*domain.SearchResult) []*domain.SearchResult {
	byID := make(map[string]*domain.SearchResult)
	best := make(map[string]float64)
	merged := make([]*domain.SearchResult, 0, len(results))

	for _, result := range results {
		existing, exists := byID[result.Item.ID]
		if !exists {
			byID[result.Item.ID] = result
			best[result.Item.ID] = result.Score
			merged = append(merged, result)
			continue
		}
		existing.Score += result.Score
		if result.Score > best[result.Item.ID] {
			best[result.Item.ID] = result.Score
			existing.MatchType = result.MatchType
			existing.Snippet = result.Snippet
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Score > merged[j].Score
	})

	return merged
}

func compact(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "")
}

func runeIndex(haystack, needle []rune) int {
	if len(needle) == 0 {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
