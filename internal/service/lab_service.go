package service

import (
	"sort"
	"strings"

	"github.com/rcliao/certimatch/internal/catalog"
	"github.com/rcliao/certimatch/internal/domain"
)

type LabService struct {
	catalog *catalog.Catalog
}

func NewLabService(cat *catalog.Catalog) *LabService {
	return &LabService{catalog: cat}
}

// Rank orders labs by the criterion's score, highest first. Ties keep
// catalog order.
func (s *LabService) Rank(criterion domain.LabCriterion) []domain.Lab {
	labs := s.catalog.AllLabs()
	sort.SliceStable(labs, func(i, j int) bool {
		return labs[i].Score(criterion) > labs[j].Score(criterion)
	})
	return labs
}

// ParseCriterion maps user input to a criterion, defaulting to total.
func ParseCriterion(raw string) domain.LabCriterion {
	switch c := domain.LabCriterion(strings.ToLower(strings.TrimSpace(raw))); c {
	case domain.CriterionTech, domain.CriterionCost, domain.CriterionTime, domain.CriterionDist:
		return c
	default:
		return domain.CriterionTotal
	}
}
