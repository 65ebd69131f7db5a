package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rcliao/certimatch/internal/catalog"
	"github.com/rcliao/certimatch/internal/domain"
)

// Generation is the result of a simulated submission package run.
type Generation struct {
	Market  domain.Market            `json:"market"`
	Draft   bool                     `json:"draft"`
	Missing []string                 `json:"missing"`
	Logs    []string                 `json:"logs"`
	Outputs []domain.GeneratedOutput `json:"outputs"`
}

type SubmissionService struct {
	catalog  *catalog.Catalog
	step     int
	interval time.Duration
}

func NewSubmissionService(cat *catalog.Catalog, step int, interval time.Duration) *SubmissionService {
	return &SubmissionService{catalog: cat, step: step, interval: interval}
}

func (s *SubmissionService) Inputs(market domain.Market) []domain.SubmissionInput {
	return s.catalog.Inputs(domain.SafeMarket(market))
}

// Readiness reports which required inputs are still missing given the IDs of
// the inputs that have an upload. A draft needs at least one upload.
func (s *SubmissionService) Readiness(market domain.Market, uploadedIDs []string) domain.SubmissionReadiness {
	m := domain.SafeMarket(market)
	uploaded := make(map[string]bool, len(uploadedIDs))
	for _, id := range uploadedIDs {
		uploaded[id] = true
	}

	r := domain.SubmissionReadiness{Market: m, Missing: make([]string, 0)}
	for _, in := range s.catalog.Inputs(m) {
		if in.Required {
			r.Required++
		}
		if uploaded[in.ID] {
			r.Uploaded++
		} else if in.Required {
			r.Missing = append(r.Missing, in.Name)
		}
	}
	r.CanDraft = len(uploaded) > 0
	r.FullyReady = len(r.Missing) == 0
	return r
}

// Generate runs the simulated generation. Missing required inputs produce a
// draft package instead of failing.
func (s *SubmissionService) Generate(ctx context.Context, market domain.Market, uploadedIDs []string, onProgress ProgressFunc) (*Generation, error) {
	r := s.Readiness(market, uploadedIDs)
	if !r.CanDraft {
		return nil, fmt.Errorf("no inputs uploaded for %s", r.Market)
	}

	if err := runProgress(ctx, s.step, s.interval, onProgress); err != nil {
		return nil, fmt.Errorf("generation cancelled: %w", err)
	}

	return &Generation{
		Market:  r.Market,
		Draft:   !r.FullyReady,
		Missing: r.Missing,
		Logs:    generationLogs(r.Market),
		Outputs: s.catalog.Outputs(r.Market),
	}, nil
}

func generationLogs(m domain.Market) []string {
	return []string{
		"📝 설계 데이터 분석 시작...",
		fmt.Sprintf("🌍 %s 규제 DB 매핑 중...", m),
		"🔎 위험성 평가 시나리오 생성...",
		"🚀 TCF 및 DoC 초안 작성 완료!",
	}
}
