package domain

type RemediationStatus string

const (
	RemediationPending    RemediationStatus = "pending"
	RemediationInProgress RemediationStatus = "in_progress"
	RemediationDone       RemediationStatus = "done"
)

func (s RemediationStatus) Valid() bool {
	switch s {
	case RemediationPending, RemediationInProgress, RemediationDone:
		return true
	}
	return false
}

// Priority is free text. Source data carries values such as "High/Critical",
// so it is not restricted to the named constants.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// RemediationItem is one compliance gap produced by a diagnosis run.
type RemediationItem struct {
	ID       string            `json:"id" yaml:"id"`
	Task     string            `json:"task" yaml:"task"`
	Status   RemediationStatus `json:"status" yaml:"status"`
	Priority Priority          `json:"priority" yaml:"priority"`
	Type     string            `json:"type" yaml:"type"`
}

func (i RemediationItem) Open() bool {
	return i.Status != RemediationDone
}

// RemediationCounts summarizes one market's item list.
type RemediationCounts struct {
	Total   int `json:"total"`
	Pending int `json:"pending"`
	Done    int `json:"done"`
}

func CountRemediation(items []RemediationItem) RemediationCounts {
	counts := RemediationCounts{Total: len(items)}
	for _, item := range items {
		if item.Open() {
			counts.Pending++
		} else {
			counts.Done++
		}
	}
	return counts
}

type RemediationRepository interface {
	SaveRemediation(projectID string, market Market, items []RemediationItem) error
	ListRemediation(projectID string, market Market) ([]RemediationItem, error)
}
