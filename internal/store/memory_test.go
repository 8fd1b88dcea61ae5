package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/upskill-agent/internal/types"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	state := &types.PipelineState{
		RunID:  "run-1",
		UserID: "user-1",
		Status: types.StatusRoadmapGenerated,
		GapAnalysis: &types.SkillGapAnalysis{
			MissingSkills: []string{"Airflow"},
		},
	}

	require.NoError(t, s.SaveAnalysis(ctx, "user-1", state))

	loaded, err := s.GetAnalysis(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", loaded.RunID)
	assert.Equal(t, types.StatusRoadmapGenerated, loaded.Status)
	require.NotNil(t, loaded.GapAnalysis)
	assert.Equal(t, []string{"Airflow"}, loaded.GapAnalysis.MissingSkills)
}

func TestMemoryStoreReplacesPriorAnalysis(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.SaveAnalysis(ctx, "user-1", &types.PipelineState{RunID: "run-1"}))
	require.NoError(t, s.SaveAnalysis(ctx, "user-1", &types.PipelineState{RunID: "run-2"}))

	loaded, err := s.GetAnalysis(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "run-2", loaded.RunID)
}

func TestMemoryStoreNotFound(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.GetAnalysis(context.Background(), "nobody")

	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "nobody", notFound.UserID)
}

func TestMemoryStoreRequiresUserID(t *testing.T) {
	s := NewMemoryStore()
	err := s.SaveAnalysis(context.Background(), "", &types.PipelineState{})
	assert.Error(t, err)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	state := &types.PipelineState{RunID: "run-1", ResearchSummary: "original"}
	require.NoError(t, s.SaveAnalysis(ctx, "user-1", state))

	state.ResearchSummary = "mutated after save"

	loaded, err := s.GetAnalysis(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "original", loaded.ResearchSummary)
}
