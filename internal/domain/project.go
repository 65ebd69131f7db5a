package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by repositories when a lookup misses.
var ErrNotFound = errors.New("not found")

type ProjectStatus string

const (
	ProjectOnTrack  ProjectStatus = "on-track"
	ProjectRedesign ProjectStatus = "redesign"
	ProjectInitial  ProjectStatus = "initial"
)

type Project struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Market    Market        `json:"market"`
	Status    ProjectStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func NewProject(name string, market Market) *Project {
	now := time.Now()
	return &Project{
		ID:        uuid.New().String(),
		Name:      name,
		Market:    SafeMarket(market),
		Status:    ProjectInitial,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type ProjectRepository interface {
	CreateProject(project *Project) error
	GetProject(id string) (*Project, error)
	ListProjects() ([]*Project, error)
	SetCurrentProject(id string) error
	GetCurrentProject() (*Project, error)
}
