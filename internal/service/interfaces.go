package service

import (
	"github.com/rcliao/certimatch/internal/domain"
)

type ProjectStorage interface {
	CreateProject(project *domain.Project) error
	GetProject(id string) (*domain.Project, error)
	ListProjects() ([]*domain.Project, error)
	SetCurrentProject(id string) error
	GetCurrentProject() (*domain.Project, error)
}

type FileStorage interface {
	AddFile(file *domain.UploadedFile) error
	ListFiles(projectID string) ([]*domain.UploadedFile, error)
	RemoveFile(projectID, fileID string) error
}

type RemediationStorage interface {
	SaveRemediation(projectID string, market domain.Market, items []domain.RemediationItem) error
	ListRemediation(projectID string, market domain.Market) ([]domain.RemediationItem, error)
}

// ProgressFunc receives the percent reached by a simulated run.
type ProgressFunc func(percent int)
