package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rcliao/certimatch/internal/catalog"
	"github.com/rcliao/certimatch/internal/checklist"
	"github.com/rcliao/certimatch/internal/domain"
)

// RepositoryService manages a project's uploaded files and evaluates them
// against the market's fixed document checklist.
type RepositoryService struct {
	projects *ProjectService
	files    FileStorage
	catalog  *catalog.Catalog
}

func NewRepositoryService(projects *ProjectService, files FileStorage, cat *catalog.Catalog) *RepositoryService {
	return &RepositoryService{
		projects: projects,
		files:    files,
		catalog:  cat,
	}
}

func (s *RepositoryService) Upload(projectID, name string, sizeBytes int64) (*domain.UploadedFile, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("file name is required")
	}
	if sizeBytes < 0 {
		return nil, fmt.Errorf("file size must not be negative")
	}
	project, err := s.projects.Resolve(projectID)
	if err != nil {
		return nil, err
	}

	file := domain.NewUploadedFile(project.ID, name, sizeBytes)
	if err := s.files.AddFile(file); err != nil {
		return nil, fmt.Errorf("failed to add file: %w", err)
	}
	slog.Debug("file uploaded", "project", project.ID, "name", name, "size", sizeBytes)
	return file, nil
}

// List returns the project's files in upload order.
func (s *RepositoryService) List(projectID string) ([]*domain.UploadedFile, error) {
	project, err := s.projects.Resolve(projectID)
	if err != nil {
		return nil, err
	}
	return s.files.ListFiles(project.ID)
}

func (s *RepositoryService) Remove(projectID, fileID string) error {
	project, err := s.projects.Resolve(projectID)
	if err != nil {
		return err
	}
	return s.files.RemoveFile(project.ID, fileID)
}

// Checklist evaluates the project's uploads against the fixed document list
// of the project's market.
func (s *RepositoryService) Checklist(projectID string) (domain.ChecklistResult, error) {
	project, err := s.projects.Resolve(projectID)
	if err != nil {
		return domain.ChecklistResult{}, err
	}
	files, err := s.files.ListFiles(project.ID)
	if err != nil {
		return domain.ChecklistResult{}, err
	}
	required := s.catalog.RequiredDocs(domain.SafeMarket(project.Market))
	return checklist.EvaluateFiles(required, files), nil
}

// HumanSize renders a byte count as B, KB, MB or GB.
func HumanSize(bytes int64) string {
	if bytes < 1024 {
		if bytes < 0 {
			bytes = 0
		}
		return fmt.Sprintf("%d B", bytes)
	}
	kb := float64(bytes) / 1024
	if kb < 1024 {
		return fmt.Sprintf("%.1f KB", kb)
	}
	mb := kb / 1024
	if mb < 1024 {
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.2f GB", mb/1024)
}
