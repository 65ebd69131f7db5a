package domain

type SearchOptions struct {
	Market Market
	Limit  int
	Offset int
}

type SearchResult struct {
	Item      RemediationItem `json:"item"`
	Score     float64         `json:"score"`
	MatchType string          `json:"matchType"`
	Snippet   string          `json:"snippet"`
}
