package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/certimatch/internal/domain"
)

func TestRepositoryService_UploadAndChecklist(t *testing.T) {
	svcs := newTestServices(t)
	project := newTestProject(t, svcs, domain.MarketEU)

	result, err := svcs.Repository.Checklist(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, result.TotalRequired)
	assert.Equal(t, 0, result.DoneCount)
	assert.Equal(t, 0, result.Percent)

	_, err = svcs.Repository.Upload(project.ID, "RT100_회로도-블록도.pdf", 2048)
	require.NoError(t, err)
	cad, err := svcs.Repository.Upload(project.ID, "rt100 트랙터 cad.step", 10<<20)
	require.NoError(t, err)

	result, err = svcs.Repository.Checklist(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.DoneCount)
	assert.Equal(t, 20, result.Percent)
	assert.Len(t, result.Missing(), 8)

	require.NoError(t, svcs.Repository.Remove(project.ID, cad.ID))
	result, err = svcs.Repository.Checklist(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DoneCount)
}

func TestRepositoryService_Checklist_NoRequiredDocs(t *testing.T) {
	svcs := newTestServices(t)
	project := newTestProject(t, svcs, domain.MarketUS)

	_, err := svcs.Repository.Upload(project.ID, "anything.pdf", 1)
	require.NoError(t, err)

	result, err := svcs.Repository.Checklist(project.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalRequired)
	assert.Equal(t, 0, result.Percent)
	assert.Empty(t, result.Entries)
}

func TestRepositoryService_Upload_Validation(t *testing.T) {
	svcs := newTestServices(t)
	project := newTestProject(t, svcs, domain.MarketEU)

	_, err := svcs.Repository.Upload(project.ID, " ", 1)
	assert.Error(t, err)
	_, err = svcs.Repository.Upload(project.ID, "a.pdf", -1)
	assert.Error(t, err)
	_, err = svcs.Repository.Upload("missing", "a.pdf", 1)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestRepositoryService_List_UploadOrder(t *testing.T) {
	svcs := newTestServices(t)
	project := newTestProject(t, svcs, domain.MarketEU)

	for _, name := range []string{"c.pdf", "a.pdf", "b.pdf"} {
		_, err := svcs.Repository.Upload("", name, 1)
		require.NoError(t, err)
	}

	files, err := svcs.Repository.List(project.ID)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, "c.pdf", files[0].Name)
	assert.Equal(t, "a.pdf", files[1].Name)
	assert.Equal(t, "b.pdf", files[2].Name)
}

func TestHumanSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HumanSize(tt.bytes), "bytes=%d", tt.bytes)
	}
}
