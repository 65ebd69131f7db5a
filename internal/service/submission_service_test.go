package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/certimatch/internal/domain"
)

func TestSubmissionService_Inputs(t *testing.T) {
	svcs := newTestServices(t)

	inputs := svcs.Submission.Inputs(domain.MarketUS)
	require.Len(t, inputs, 8)
	assert.Equal(t, domain.SectionTechnical, inputs[0].Section)
	assert.Equal(t, domain.SectionAdmin, inputs[7].Section)
}

func TestSubmissionService_Readiness(t *testing.T) {
	svcs := newTestServices(t)

	r := svcs.Submission.Readiness(domain.MarketEU, nil)
	assert.Equal(t, 6, r.Required)
	assert.Equal(t, 0, r.Uploaded)
	assert.Len(t, r.Missing, 6)
	assert.False(t, r.CanDraft)
	assert.False(t, r.FullyReady)

	r = svcs.Submission.Readiness(domain.MarketEU, []string{"eu_tech_1", "eu_admin_1"})
	assert.Equal(t, 2, r.Uploaded)
	assert.Len(t, r.Missing, 4)
	assert.True(t, r.CanDraft)
	assert.False(t, r.FullyReady)

	// The optional IPI checklist is not needed for a full package.
	r = svcs.Submission.Readiness(domain.MarketUS, []string{"us_tech_1", "us_tech_2", "us_tech_3", "us_tech_4", "us_admin_1", "us_admin_2", "us_admin_3"})
	assert.Equal(t, 7, r.Required)
	assert.Empty(t, r.Missing)
	assert.True(t, r.FullyReady)
}

func TestSubmissionService_Generate(t *testing.T) {
	svcs := newTestServices(t)

	gen, err := svcs.Submission.Generate(context.Background(), domain.MarketEU, []string{"eu_tech_1"}, nil)
	require.NoError(t, err)
	assert.True(t, gen.Draft)
	assert.Len(t, gen.Missing, 5)
	assert.Len(t, gen.Logs, 4)
	assert.Contains(t, gen.Logs[1], "EU")
	assert.Len(t, gen.Outputs, 4)

	_, err = svcs.Submission.Generate(context.Background(), domain.MarketEU, nil, nil)
	assert.Error(t, err)
}

func TestSubmissionService_Generate_Cancelled(t *testing.T) {
	svcs := newTestServices(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := svcs.Submission.Generate(ctx, domain.MarketUS, []string{"us_tech_1"}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
