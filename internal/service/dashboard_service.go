package service

import (
	"fmt"
	"time"

	"github.com/rcliao/certimatch/internal/domain"
	"github.com/rcliao/certimatch/internal/triage"
)

type DashboardService struct {
	projects    *ProjectService
	repository  *RepositoryService
	remediation *RemediationService
}

func NewDashboardService(projects *ProjectService, repository *RepositoryService, remediation *RemediationService) *DashboardService {
	return &DashboardService{
		projects:    projects,
		repository:  repository,
		remediation: remediation,
	}
}

type Dashboard struct {
	Project         *domain.Project        `json:"project"`
	Checklist       domain.ChecklistResult `json:"checklist"`
	FileCount       int                    `json:"fileCount"`
	Markets         []MarketProgress       `json:"markets"`
	Recommendations []string               `json:"recommendations"`
	GeneratedAt     time.Time              `json:"generatedAt"`
}

// MarketProgress is the remediation status of one active market.
type MarketProgress struct {
	Market         domain.Market            `json:"market"`
	Label          string                   `json:"label"`
	Counts         domain.RemediationCounts `json:"counts"`
	CompletionRate int                      `json:"completionRate"`
	TopOpen        []domain.RemediationItem `json:"topOpen"`
}

func (s *DashboardService) Generate(projectID string) (*Dashboard, error) {
	project, err := s.projects.Resolve(projectID)
	if err != nil {
		return nil, err
	}

	files, err := s.repository.List(project.ID)
	if err != nil {
		return nil, err
	}
	checklist, err := s.repository.Checklist(project.ID)
	if err != nil {
		return nil, err
	}

	markets := make([]MarketProgress, 0, len(domain.ActiveMarkets))
	for _, m := range domain.ActiveMarkets {
		items, err := s.remediation.List(project.ID, m)
		if err != nil {
			return nil, err
		}
		markets = append(markets, MarketProgress{
			Market:         m,
			Label:          m.Label(),
			Counts:         domain.CountRemediation(items),
			CompletionRate: triage.CompletionRate(items),
			TopOpen:        triage.TopOpen(items, s.remediation.Limit()),
		})
	}

	return &Dashboard{
		Project:         project,
		Checklist:       checklist,
		FileCount:       len(files),
		Markets:         markets,
		Recommendations: recommendations(checklist, markets),
		GeneratedAt:     time.Now(),
	}, nil
}

func recommendations(checklist domain.ChecklistResult, markets []MarketProgress) []string {
	recs := make([]string, 0)

	// Missing documents
	if missing := checklist.Missing(); len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("필수 서류 %d건이 저장소에 없습니다. 먼저 '%s'부터 업로드하세요.", len(missing), missing[0]))
	}

	for _, mp := range markets {
		// Nothing diagnosed yet
		if mp.Counts.Total == 0 {
			recs = append(recs, fmt.Sprintf("%s 진단 결과가 없습니다. 규제 진단을 실행하세요.", mp.Label))
			continue
		}
		if len(mp.TopOpen) > 0 {
			top := mp.TopOpen[0]
			recs = append(recs, fmt.Sprintf("%s 미완료 %d건 중 최우선: [%s] %s", mp.Label, mp.Counts.Pending, orDash(string(top.Priority)), top.Task))
		}
	}

	if len(recs) == 0 {
		recs = append(recs, "모든 서류와 조치 항목이 준비되었습니다. 제출 서류 생성으로 진행하세요.")
	}
	return recs
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
