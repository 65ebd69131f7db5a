package storage

import (
	"fmt"
	"sync"

	"github.com/rcliao/certimatch/internal/domain"
)

type MemoryStorage struct {
	mu             sync.RWMutex
	projects       map[string]*domain.Project
	projectOrder   []string
	files          map[string][]*domain.UploadedFile
	remediation    map[remediationKey][]domain.RemediationItem
	currentProject *string
}

type remediationKey struct {
	projectID string
	market    domain.Market
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		projects:    make(map[string]*domain.Project),
		files:       make(map[string][]*domain.UploadedFile),
		remediation: make(map[remediationKey][]domain.RemediationItem),
	}
}

// Project Repository Implementation
func (ms *MemoryStorage) CreateProject(project *domain.Project) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.projects[project.ID]; exists {
		return fmt.Errorf("project with ID %s already exists", project.ID)
	}

	ms.projects[project.ID] = project
	ms.projectOrder = append(ms.projectOrder, project.ID)
	return nil
}

func (ms *MemoryStorage) GetProject(id string) (*domain.Project, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	project, exists := ms.projects[id]
	if !exists {
		return nil, fmt.Errorf("project with ID %s: %w", id, domain.ErrNotFound)
	}

	return project, nil
}

// ListProjects returns projects in creation order.
func (ms *MemoryStorage) ListProjects() ([]*domain.Project, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	result := make([]*domain.Project, 0, len(ms.projectOrder))
	for _, id := range ms.projectOrder {
		result = append(result, ms.projects[id])
	}

	return result, nil
}

func (ms *MemoryStorage) SetCurrentProject(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.projects[id]; !exists {
		return fmt.Errorf("project with ID %s: %w", id, domain.ErrNotFound)
	}

	ms.currentProject = &id
	return nil
}

func (ms *MemoryStorage) GetCurrentProject() (*domain.Project, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if ms.currentProject == nil {
		return nil, fmt.Errorf("no current project set: %w", domain.ErrNotFound)
	}

	project, exists := ms.projects[*ms.currentProject]
	if !exists {
		return nil, fmt.Errorf("current project with ID %s: %w", *ms.currentProject, domain.ErrNotFound)
	}

	return project, nil
}

// File Repository Implementation
func (ms *MemoryStorage) AddFile(file *domain.UploadedFile) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.projects[file.ProjectID]; !exists {
		return fmt.Errorf("project with ID %s: %w", file.ProjectID, domain.ErrNotFound)
	}
	for _, f := range ms.files[file.ProjectID] {
		if f.ID == file.ID {
			return fmt.Errorf("file with ID %s already exists", file.ID)
		}
	}

	ms.files[file.ProjectID] = append(ms.files[file.ProjectID], file)
	return nil
}

// ListFiles returns a project's files in upload order.
func (ms *MemoryStorage) ListFiles(projectID string) ([]*domain.UploadedFile, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	files := ms.files[projectID]
	result := make([]*domain.UploadedFile, len(files))
	copy(result, files)
	return result, nil
}

func (ms *MemoryStorage) RemoveFile(projectID, fileID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	files := ms.files[projectID]
	for i, f := range files {
		if f.ID == fileID {
			ms.files[projectID] = append(files[:i:i], files[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("file with ID %s: %w", fileID, domain.ErrNotFound)
}

// Remediation Repository Implementation
func (ms *MemoryStorage) SaveRemediation(projectID string, market domain.Market, items []domain.RemediationItem) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.projects[projectID]; !exists {
		return fmt.Errorf("project with ID %s: %w", projectID, domain.ErrNotFound)
	}

	stored := make([]domain.RemediationItem, len(items))
	copy(stored, items)
	ms.remediation[remediationKey{projectID, market}] = stored
	return nil
}

// ListRemediation returns a copy of the market's items; an unpublished
// market yields an empty list.
func (ms *MemoryStorage) ListRemediation(projectID string, market domain.Market) ([]domain.RemediationItem, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	items := ms.remediation[remediationKey{projectID, market}]
	result := make([]domain.RemediationItem, len(items))
	copy(result, items)
	return result, nil
}
