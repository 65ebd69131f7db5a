package service

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/rcliao/certimatch/internal/domain"
	"github.com/rcliao/certimatch/internal/search"
	"github.com/rcliao/certimatch/internal/triage"
)

// RemediationService owns the per-market action item lists that diagnosis
// runs publish and the dashboard and assistant read.
type RemediationService struct {
	projects *ProjectService
	storage  RemediationStorage
	searcher *search.HybridSearch
	limit    int
}

func NewRemediationService(projects *ProjectService, storage RemediationStorage, limit int) *RemediationService {
	if limit <= 0 {
		limit = triage.DefaultLimit
	}
	return &RemediationService{
		projects: projects,
		storage:  storage,
		searcher: search.NewHybridSearch(storage),
		limit:    limit,
	}
}

// Publish replaces the market's list with items. Items without a status are
// stored as pending.
func (s *RemediationService) Publish(projectID string, market domain.Market, items []domain.RemediationItem) ([]domain.RemediationItem, error) {
	project, err := s.projects.Resolve(projectID)
	if err != nil {
		return nil, err
	}
	m := marketFor(project, market)

	cleaned := make([]domain.RemediationItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		item.ID = strings.TrimSpace(item.ID)
		if item.ID == "" {
			return nil, fmt.Errorf("item %d: id is required", i)
		}
		if seen[item.ID] {
			return nil, fmt.Errorf("item %d: duplicate id %q", i, item.ID)
		}
		seen[item.ID] = true
		if item.Status == "" {
			item.Status = domain.RemediationPending
		}
		if !item.Status.Valid() {
			return nil, fmt.Errorf("item %s: invalid status %q", item.ID, item.Status)
		}
		cleaned = append(cleaned, item)
	}

	if err := s.storage.SaveRemediation(project.ID, m, cleaned); err != nil {
		return nil, fmt.Errorf("failed to publish remediation: %w", err)
	}
	slog.Debug("remediation published", "project", project.ID, "market", m, "items", len(cleaned))
	return cleaned, nil
}

func (s *RemediationService) List(projectID string, market domain.Market) ([]domain.RemediationItem, error) {
	project, err := s.projects.Resolve(projectID)
	if err != nil {
		return nil, err
	}
	return s.storage.ListRemediation(project.ID, marketFor(project, market))
}

func (s *RemediationService) Get(projectID string, market domain.Market, itemID string) (domain.RemediationItem, error) {
	items, err := s.List(projectID, market)
	if err != nil {
		return domain.RemediationItem{}, err
	}
	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}
	return domain.RemediationItem{}, fmt.Errorf("remediation item %s: %w", itemID, domain.ErrNotFound)
}

func (s *RemediationService) UpdateStatus(projectID string, market domain.Market, itemID string, status domain.RemediationStatus) (domain.RemediationItem, error) {
	if !status.Valid() {
		return domain.RemediationItem{}, fmt.Errorf("invalid status %q", status)
	}
	project, err := s.projects.Resolve(projectID)
	if err != nil {
		return domain.RemediationItem{}, err
	}
	m := marketFor(project, market)

	items, err := s.storage.ListRemediation(project.ID, m)
	if err != nil {
		return domain.RemediationItem{}, err
	}
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		items[i].Status = status
		if err := s.storage.SaveRemediation(project.ID, m, items); err != nil {
			return domain.RemediationItem{}, fmt.Errorf("failed to update remediation: %w", err)
		}
		return items[i], nil
	}
	return domain.RemediationItem{}, fmt.Errorf("remediation item %s: %w", itemID, domain.ErrNotFound)
}

// Triage returns the top open items. A limit <= 0 uses the configured limit.
func (s *RemediationService) Triage(projectID string, market domain.Market, limit int) ([]domain.RemediationItem, error) {
	items, err := s.List(projectID, market)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.limit
	}
	return triage.TopOpen(items, limit), nil
}

func (s *RemediationService) Limit() int {
	return s.limit
}

func (s *RemediationService) Counts(projectID string, market domain.Market) (domain.RemediationCounts, error) {
	items, err := s.List(projectID, market)
	if err != nil {
		return domain.RemediationCounts{}, err
	}
	return domain.CountRemediation(items), nil
}

func (s *RemediationService) CompletionRate(projectID string, market domain.Market) (int, error) {
	items, err := s.List(projectID, market)
	if err != nil {
		return 0, err
	}
	return triage.CompletionRate(items), nil
}

func (s *RemediationService) Search(projectID, query string, opts domain.SearchOptions) ([]*domain.SearchResult, error) {
	project, err := s.projects.Resolve(projectID)
	if err != nil {
		return nil, err
	}
	if opts.Market != "" {
		opts.Market = marketFor(project, opts.Market)
	}
	return s.searcher.Search(project.ID, query, opts)
}
