package service

import (
	"fmt"
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
)

type ProjectService struct {
	storage ProjectStorage
}

func NewProjectService(storage ProjectStorage) *ProjectService {
	return &ProjectService{
		storage: storage,
	}
}

func (s *ProjectService) Create(project *domain.Project) error {
	return s.storage.CreateProject(project)
}

// CreateNamed creates a project for market and makes it current. CN and
// unknown markets become EU.
func (s *ProjectService) CreateNamed(name string, market domain.Market) (*domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	project := domain.NewProject(name, market)
	if err := s.storage.CreateProject(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}
	if err := s.storage.SetCurrentProject(project.ID); err != nil {
		return nil, fmt.Errorf("failed to set current project: %w", err)
	}
	return project, nil
}

func (s *ProjectService) Get(id string) (*domain.Project, error) {
	return s.storage.GetProject(id)
}

func (s *ProjectService) List() ([]*domain.Project, error) {
	return s.storage.ListProjects()
}

func (s *ProjectService) SetCurrent(id string) error {
	return s.storage.SetCurrentProject(id)
}

func (s *ProjectService) GetCurrent() (*domain.Project, error) {
	return s.storage.GetCurrentProject()
}

// Resolve returns the project with id, or the current project when id is empty.
func (s *ProjectService) Resolve(id string) (*domain.Project, error) {
	if id == "" {
		return s.storage.GetCurrentProject()
	}
	return s.storage.GetProject(id)
}

// marketFor picks the requested market, defaulting to the project's, and
// coerces suppressed markets.
func marketFor(project *domain.Project, requested domain.Market) domain.Market {
	if requested == "" {
		return domain.SafeMarket(project.Market)
	}
	return domain.SafeMarket(domain.ParseMarket(string(requested)))
}
