package service

import (
	"time"

	"github.com/rcliao/certimatch/internal/catalog"
	"github.com/rcliao/certimatch/internal/storage"
)

// Options tunes the services built by New. Zero values fall back to the
// package defaults.
type Options struct {
	TriageLimit       int
	PlaybookCacheSize int
	ProgressStep      int
	ProgressInterval  time.Duration
}

// Services groups every service over one store.
type Services struct {
	Projects    *ProjectService
	Repository  *RepositoryService
	Remediation *RemediationService
	Playbooks   *PlaybookService
	Chat        *ChatService
	Diagnosis   *DiagnosisService
	Submission  *SubmissionService
	Labs        *LabService
	Dashboard   *DashboardService
	Catalog     *catalog.Catalog
}

func New(store storage.Store, cat *catalog.Catalog, opts Options) (*Services, error) {
	if opts.PlaybookCacheSize <= 0 {
		opts.PlaybookCacheSize = 256
	}
	if opts.ProgressStep <= 0 {
		opts.ProgressStep = 2
	}
	if opts.ProgressInterval <= 0 {
		opts.ProgressInterval = 30 * time.Millisecond
	}

	projects := NewProjectService(store)
	repository := NewRepositoryService(projects, store, cat)
	remediation := NewRemediationService(projects, store, opts.TriageLimit)
	playbooks, err := NewPlaybookService(remediation, nil, opts.PlaybookCacheSize)
	if err != nil {
		return nil, err
	}

	return &Services{
		Projects:    projects,
		Repository:  repository,
		Remediation: remediation,
		Playbooks:   playbooks,
		Chat:        NewChatService(repository, remediation, playbooks),
		Diagnosis:   NewDiagnosisService(projects, remediation, cat, opts.ProgressStep, opts.ProgressInterval),
		Submission:  NewSubmissionService(cat, opts.ProgressStep, opts.ProgressInterval),
		Labs:        NewLabService(cat),
		Dashboard:   NewDashboardService(projects, repository, remediation),
		Catalog:     cat,
	}, nil
}
