package domain

import (
	"time"

	"github.com/google/uuid"
)

// UploadedFile is a file the user associated with a project repository.
// Only the name takes part in checklist matching.
type UploadedFile struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"projectId"`
	SlotID     string    `json:"slotId,omitempty"`
	Name       string    `json:"name"`
	SizeBytes  int64     `json:"sizeBytes"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func NewUploadedFile(projectID, name string, sizeBytes int64) *UploadedFile {
	return &UploadedFile{
		ID:         uuid.New().String(),
		ProjectID:  projectID,
		Name:       name,
		SizeBytes:  sizeBytes,
		UploadedAt: time.Now(),
	}
}

// ChecklistEntry is derived on every evaluation and never stored.
// MatchedFilename is nil when no upload claimed the entry's key.
type ChecklistEntry struct {
	RequiredLabel   string  `json:"requiredLabel"`
	NormalizedKey   string  `json:"normalizedKey"`
	MatchedFilename *string `json:"matchedFilename"`
}

func (e ChecklistEntry) Done() bool {
	return e.MatchedFilename != nil
}

type ChecklistResult struct {
	Entries       []ChecklistEntry `json:"entries"`
	TotalRequired int              `json:"totalRequired"`
	DoneCount     int              `json:"doneCount"`
	Percent       int              `json:"percent"`
}

// Missing lists the required labels that have no matched upload.
func (r ChecklistResult) Missing() []string {
	missing := make([]string, 0)
	for _, e := range r.Entries {
		if !e.Done() {
			missing = append(missing, e.RequiredLabel)
		}
	}
	return missing
}

type InputSection string

const (
	SectionTechnical InputSection = "technical"
	SectionAdmin     InputSection = "admin"
)

// SubmissionInput is one document the submission generator asks for.
type SubmissionInput struct {
	ID          string       `json:"id" yaml:"id"`
	Name        string       `json:"name" yaml:"name"`
	Description string       `json:"description" yaml:"desc"`
	Required    bool         `json:"required" yaml:"required"`
	Section     InputSection `json:"section" yaml:"-"`
}

// GeneratedOutput is a mock document produced by a submission run.
type GeneratedOutput struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description" yaml:"desc"`
	Size        string `json:"size" yaml:"size"`
}

type SubmissionReadiness struct {
	Market     Market   `json:"market"`
	Required   int      `json:"required"`
	Uploaded   int      `json:"uploaded"`
	Missing    []string `json:"missing"`
	CanDraft   bool     `json:"canDraft"`
	FullyReady bool     `json:"fullyReady"`
}

type FileRepository interface {
	AddFile(file *UploadedFile) error
	ListFiles(projectID string) ([]*UploadedFile, error)
	RemoveFile(projectID, fileID string) error
}
