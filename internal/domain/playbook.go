package domain

// Bundle is the guidance a keyword rule contributes to a playbook.
// Empty fields contribute nothing when bundles are merged.
type Bundle struct {
	StandardGuess string   `json:"standardGuess,omitempty"`
	RootCause     []string `json:"rootCause,omitempty"`
	QuickFix      []string `json:"quickFix,omitempty"`
	ProperFix     []string `json:"properFix,omitempty"`
	Evidence      []string `json:"evidence,omitempty"`
	Validation    []string `json:"validation,omitempty"`
	Pitfalls      []string `json:"pitfalls,omitempty"`
}

type PlaybookSummary struct {
	Task          string  `json:"task"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	Type          string  `json:"type"`
	StandardGuess *string `json:"standardGuess,omitempty"`
}

type PlaybookSection struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

// Playbook is the fix guide derived from one remediation item.
type Playbook struct {
	ItemID   string            `json:"itemId,omitempty"`
	Title    string            `json:"title"`
	Summary  PlaybookSummary   `json:"summary"`
	Sections []PlaybookSection `json:"sections"`
}
