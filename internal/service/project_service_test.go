package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/certimatch/internal/domain"
)

func TestProjectService_CreateNamed(t *testing.T) {
	svcs := newTestServices(t)

	project, err := svcs.Projects.CreateNamed("  RT100  ", domain.MarketUS)
	require.NoError(t, err)
	assert.Equal(t, "RT100", project.Name)
	assert.Equal(t, domain.MarketUS, project.Market)

	current, err := svcs.Projects.GetCurrent()
	require.NoError(t, err)
	assert.Equal(t, project.ID, current.ID)

	_, err = svcs.Projects.CreateNamed("   ", domain.MarketEU)
	assert.Error(t, err)
}

func TestProjectService_CreateNamed_SuppressedMarket(t *testing.T) {
	svcs := newTestServices(t)

	project, err := svcs.Projects.CreateNamed("China build", domain.MarketCN)
	require.NoError(t, err)
	assert.Equal(t, domain.MarketEU, project.Market)
}

func TestProjectService_Resolve(t *testing.T) {
	svcs := newTestServices(t)

	_, err := svcs.Projects.Resolve("")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	first := newTestProject(t, svcs, domain.MarketEU)
	second := newTestProject(t, svcs, domain.MarketUS)

	resolved, err := svcs.Projects.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, second.ID, resolved.ID)

	resolved, err = svcs.Projects.Resolve(first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, resolved.ID)

	_, err = svcs.Projects.Resolve("missing")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestMarketFor(t *testing.T) {
	project := domain.NewProject("p", domain.MarketUS)

	assert.Equal(t, domain.MarketUS, marketFor(project, ""))
	assert.Equal(t, domain.MarketEU, marketFor(project, "eu"))
	assert.Equal(t, domain.MarketEU, marketFor(project, domain.MarketCN))
	assert.Equal(t, domain.MarketEU, marketFor(project, "JP"))
}
