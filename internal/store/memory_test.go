package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yvoderooij/preptalk-curriculum/internal/provider"
	"github.com/yvoderooij/preptalk-curriculum/internal/types"
)

func TestMemory_RunLifecycle(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	userID := uuid.New()

	runID, err := m.CreateRun(ctx, userID, "job-1", "init")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, runID)

	require.NoError(t, m.UpdateRunState(ctx, runID, "extracting"))

	run, err := m.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, "extracting", run.State)
	assert.Equal(t, userID, run.UserID)
	assert.Nil(t, run.CompletedAt)

	require.NoError(t, m.CompleteRun(ctx, runID, "persisted"))
	run, err = m.GetRun(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", run.State)
	assert.NotNil(t, run.CompletedAt)
}

func TestMemory_RunNotFound(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.GetRun(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.UpdateRunState(ctx, uuid.New(), "x"), ErrNotFound)
	assert.ErrorIs(t, m.CompleteRun(ctx, uuid.New(), "x"), ErrNotFound)
}

func TestMemory_Artifacts(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	runID, err := m.CreateRun(ctx, uuid.New(), "", "init")
	require.NoError(t, err)

	require.NoError(t, m.SaveArtifact(ctx, runID, "extraction", map[string]string{"full_name": "Ada"}))

	content, err := m.GetArtifact(ctx, runID, "extraction")
	require.NoError(t, err)
	assert.JSONEq(t, `{"full_name": "Ada"}`, string(content))

	// replacing the same stage overwrites
	require.NoError(t, m.SaveArtifact(ctx, runID, "extraction", map[string]string{"full_name": "Grace"}))
	content, err = m.GetArtifact(ctx, runID, "extraction")
	require.NoError(t, err)
	assert.JSONEq(t, `{"full_name": "Grace"}`, string(content))

	_, err = m.GetArtifact(ctx, runID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Costs(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	runID, err := m.CreateRun(ctx, uuid.New(), "", "init")
	require.NoError(t, err)

	require.NoError(t, m.SaveCosts(ctx, runID, []provider.CostRecord{
		{Provider: provider.IDGemini, Capability: provider.CapabilityOCRExtract, Units: 2, Cost: 0.02},
	}))
	require.NoError(t, m.SaveCosts(ctx, runID, []provider.CostRecord{
		{Provider: provider.IDOpenAI, Capability: provider.CapabilityTextGenerate, Units: 1, Cost: 0.002},
	}))

	costs := m.Costs(runID)
	require.Len(t, costs, 2)
	assert.Equal(t, provider.IDGemini, costs[0].Provider)
}

func TestMemory_Curricula(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	userID := uuid.New()

	older := &types.Curriculum{
		ID: uuid.New(), UserID: userID, Title: "Older",
		TotalRounds: 1, CreatedAt: time.Now().Add(-time.Hour),
		Rounds: []types.CurriculumRound{{RoundNumber: 1, Type: types.RoundTechnical, PassingScore: 70}},
	}
	newer := &types.Curriculum{
		ID: uuid.New(), UserID: userID, Title: "Newer",
		TotalRounds: 1, CreatedAt: time.Now(),
		Rounds: []types.CurriculumRound{{RoundNumber: 1, Type: types.RoundBehavioral, PassingScore: 60}},
	}
	other := &types.Curriculum{
		ID: uuid.New(), UserID: uuid.New(), Title: "Someone else's",
		TotalRounds: 1, CreatedAt: time.Now(),
		Rounds: []types.CurriculumRound{{RoundNumber: 1, Type: types.RoundOnsite, PassingScore: 50}},
	}

	for _, c := range []*types.Curriculum{older, newer, other} {
		require.NoError(t, m.SaveCurriculum(ctx, uuid.New(), c))
	}

	got, err := m.GetCurriculum(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "Older", got.Title)

	list, err := m.ListCurricula(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, list, 2, "only the owner's curricula are listed")
	assert.Equal(t, "Newer", list[0].Title, "newest first")

	_, err = m.GetCurriculum(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_Credits(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	userID := uuid.New()

	_, err := m.GetCredits(ctx, userID)
	assert.ErrorIs(t, err, ErrNotFound)

	m.SetCredits(userID, 2)

	require.NoError(t, m.DebitCredit(ctx, userID))
	require.NoError(t, m.DebitCredit(ctx, userID))

	balance, err := m.GetCredits(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, balance)

	assert.ErrorIs(t, m.DebitCredit(ctx, userID), ErrInsufficientCredits)
	assert.ErrorIs(t, m.DebitCredit(ctx, uuid.New()), ErrNotFound)
}

func TestMemory_Jobs(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	_, err := m.GetJob(ctx, "job-1")
	assert.ErrorIs(t, err, ErrNotFound)

	job := &types.JobRequirements{
		JobID:          "job-1",
		RoleTitle:      "Backend Engineer",
		RequiredSkills: []string{"go"},
	}
	require.NoError(t, m.SaveJob(ctx, job))

	got, err := m.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", got.RoleTitle)

	// Saving again replaces the record.
	job.RoleTitle = "Staff Engineer"
	require.NoError(t, m.SaveJob(ctx, job))
	got, err = m.GetJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, "Staff Engineer", got.RoleTitle)

	assert.Error(t, m.SaveJob(ctx, &types.JobRequirements{RoleTitle: "No ID"}))
}
