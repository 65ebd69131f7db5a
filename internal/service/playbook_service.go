package service

import (
	"fmt"
	"log/slog"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rcliao/certimatch/internal/domain"
	"github.com/rcliao/certimatch/internal/playbook"
)

// PlaybookService builds playbooks for stored items. Results are cached by
// the item's content, so a status change produces a fresh playbook.
type PlaybookService struct {
	builder     *playbook.Builder
	remediation *RemediationService
	cache       *lru.Cache[string, domain.Playbook]
}

func NewPlaybookService(remediation *RemediationService, builder *playbook.Builder, cacheSize int) (*PlaybookService, error) {
	if builder == nil {
		builder = playbook.NewBuilder()
	}
	cache, err := lru.New[string, domain.Playbook](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create playbook cache: %w", err)
	}
	return &PlaybookService{
		builder:     builder,
		remediation: remediation,
		cache:       cache,
	}, nil
}

func (s *PlaybookService) Build(item domain.RemediationItem) domain.Playbook {
	key := cacheKey(item)
	if pb, ok := s.cache.Get(key); ok {
		return pb
	}
	slog.Debug("playbook cache miss", "item", item.ID)
	pb := s.builder.Build(item)
	s.cache.Add(key, pb)
	return pb
}

// ForItem builds the playbook of a stored remediation item.
func (s *PlaybookService) ForItem(projectID string, market domain.Market, itemID string) (domain.Playbook, error) {
	item, err := s.remediation.Get(projectID, market, itemID)
	if err != nil {
		return domain.Playbook{}, err
	}
	return s.Build(item), nil
}

// ForTask builds a playbook for free task text with no stored item.
func (s *PlaybookService) ForTask(task string) domain.Playbook {
	return s.Build(domain.RemediationItem{Task: task})
}

func (s *PlaybookService) Builder() *playbook.Builder {
	return s.builder
}

func cacheKey(item domain.RemediationItem) string {
	return strings.Join([]string{item.ID, item.Task, string(item.Status), string(item.Priority), item.Type}, "\x1f")
}
