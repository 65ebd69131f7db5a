package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rcliao/certimatch/internal/catalog"
	"github.com/rcliao/certimatch/internal/domain"
	"github.com/rcliao/certimatch/internal/storage"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)

	svcs, err := New(storage.NewMemoryStorage(), cat, Options{
		TriageLimit:       3,
		PlaybookCacheSize: 8,
		ProgressStep:      50,
		ProgressInterval:  time.Millisecond,
	})
	require.NoError(t, err)
	return svcs
}

func newTestProject(t *testing.T, svcs *Services, market domain.Market) *domain.Project {
	t.Helper()
	project, err := svcs.Projects.CreateNamed("RT100 Tractor", market)
	require.NoError(t, err)
	return project
}

func seedRemediation(t *testing.T, svcs *Services, project *domain.Project, market domain.Market) []domain.RemediationItem {
	t.Helper()
	items, err := svcs.Remediation.Publish(project.ID, market, svcs.Catalog.SeedRemediation(market))
	require.NoError(t, err)
	return items
}
