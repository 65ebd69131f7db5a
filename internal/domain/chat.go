package domain

import "time"

// View names the screen the user is on when asking the assistant.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewDiagnosis View = "diagnosis"
	ViewDocs      View = "docs"
	ViewLabs      View = "labs"
	ViewSettings  View = "settings"
)

// ChatContext is the immutable snapshot of application state an answer is
// rendered against. Callers rebuild it whenever their own state changes.
type ChatContext struct {
	View              View              `json:"view"`
	Market            Market            `json:"market"`
	Remediation       RemediationCounts `json:"remediation"`
	UploadedCount     int               `json:"uploadedCount"`
	RepoUploadedCount int               `json:"repoUploadedCount"`
}

type ChatRole string

const (
	RoleUser ChatRole = "user"
	RoleAI   ChatRole = "ai"
)

type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
