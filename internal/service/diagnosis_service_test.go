package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/certimatch/internal/domain"
)

func TestDiagnosisService_Run(t *testing.T) {
	svcs := newTestServices(t)
	project := newTestProject(t, svcs, domain.MarketUS)

	var progress []int
	run, err := svcs.Diagnosis.Run(context.Background(), project.ID, "", func(p int) {
		progress = append(progress, p)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{50, 100}, progress)
	assert.Equal(t, domain.MarketUS, run.Market)
	assert.NotEmpty(t, run.ID)
	assert.Len(t, run.Items, 3)

	stored, err := svcs.Remediation.List(project.ID, domain.MarketUS)
	require.NoError(t, err)
	assert.Equal(t, run.Items, stored)
}

func TestDiagnosisService_Run_Cancelled(t *testing.T) {
	svcs := newTestServices(t)
	project := newTestProject(t, svcs, domain.MarketEU)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svcs.Diagnosis.Run(ctx, project.ID, "", nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	stored, err := svcs.Remediation.List(project.ID, domain.MarketEU)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestRunProgress(t *testing.T) {
	var got []int
	err := runProgress(context.Background(), 30, time.Millisecond, func(p int) { got = append(got, p) })
	require.NoError(t, err)
	assert.Equal(t, []int{30, 60, 90, 100}, got)
}

func TestRunProgress_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	err := runProgress(ctx, 1, time.Hour, nil)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
