package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rcliao/certimatch/internal/catalog"
	"github.com/rcliao/certimatch/internal/domain"
)

// DiagnosisRun is the outcome of one simulated diagnosis.
type DiagnosisRun struct {
	ID        string                   `json:"id"`
	ProjectID string                   `json:"projectId"`
	Market    domain.Market            `json:"market"`
	Items     []domain.RemediationItem `json:"items"`
	Started   time.Time                `json:"started"`
	Finished  time.Time                `json:"finished"`
}

// DiagnosisService simulates an analysis run and publishes the market's
// action items when it completes.
type DiagnosisService struct {
	projects    *ProjectService
	remediation *RemediationService
	catalog     *catalog.Catalog
	step        int
	interval    time.Duration
}

func NewDiagnosisService(projects *ProjectService, remediation *RemediationService, cat *catalog.Catalog, step int, interval time.Duration) *DiagnosisService {
	return &DiagnosisService{
		projects:    projects,
		remediation: remediation,
		catalog:     cat,
		step:        step,
		interval:    interval,
	}
}

// Run blocks until the simulated analysis reaches 100 or ctx ends. Nothing is
// published for a cancelled run.
func (s *DiagnosisService) Run(ctx context.Context, projectID string, market domain.Market, onProgress ProgressFunc) (*DiagnosisRun, error) {
	project, err := s.projects.Resolve(projectID)
	if err != nil {
		return nil, err
	}
	m := marketFor(project, market)

	run := &DiagnosisRun{
		ID:        uuid.New().String(),
		ProjectID: project.ID,
		Market:    m,
		Started:   time.Now(),
	}
	slog.Debug("diagnosis started", "run", run.ID, "project", project.ID, "market", m)

	if err := runProgress(ctx, s.step, s.interval, onProgress); err != nil {
		slog.Debug("diagnosis cancelled", "run", run.ID, "error", err)
		return nil, fmt.Errorf("diagnosis cancelled: %w", err)
	}

	items, err := s.remediation.Publish(project.ID, m, s.catalog.SeedRemediation(m))
	if err != nil {
		return nil, err
	}
	run.Items = items
	run.Finished = time.Now()
	slog.Debug("diagnosis finished", "run", run.ID, "items", len(items))
	return run, nil
}
