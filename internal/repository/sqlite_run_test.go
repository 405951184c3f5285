package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroplot/orrery/internal/testutil"
	"github.com/astroplot/orrery/internal/types"
)

func newRun(command string, ts time.Time) *types.RunResult {
	return &types.RunResult{
		ID:        uuid.New().String(),
		Command:   command,
		Status:    types.StatusOK,
		Artifacts: []string{"orbits.png", "dashboard.png"},
		Metadata: types.RunMetadata{
			CatalogFile: "planets.json",
			BodyCount:   9,
			Parameters:  map[string]any{"width": float64(900)},
			Version:     "1.0.0",
		},
		Timestamp: ts,
		Duration:  1500 * time.Millisecond,
	}
}

func TestRunRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	run := newRun("render dashboard", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)

	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, "render dashboard", got.Command)
	assert.Equal(t, types.StatusOK, got.Status)
	assert.Equal(t, run.Artifacts, got.Artifacts)
	assert.Equal(t, "planets.json", got.Metadata.CatalogFile)
	assert.Equal(t, 9, got.Metadata.BodyCount)
	assert.Equal(t, map[string]any{"width": float64(900)}, got.Metadata.Parameters)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.WithinDuration(t, run.Timestamp, got.Timestamp, time.Millisecond)
}

func TestRunRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), uuid.New().String())
	assert.ErrorContains(t, err, "not found")
}

func TestRunRepo_ListNewestFirst(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	old := newRun("render orbits", base)
	mid := newRun("simulate", base.Add(time.Hour))
	recent := newRun("render orbits", base.Add(2*time.Hour))
	for _, r := range []*types.RunResult{old, mid, recent} {
		require.NoError(t, repo.Create(ctx, r))
	}

	runs, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, recent.ID, runs[0].ID)
	assert.Equal(t, old.ID, runs[2].ID)
}

func TestRunRepo_ListNewestFirst_SubSecond(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	// RFC3339Nano trims trailing fraction zeros, so these timestamps
	// only sort correctly with a fixed-width encoding: ".5" vs ".55"
	// vs a whole second.
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	whole := newRun("render orbits", base)
	half := newRun("render orbits", base.Add(500*time.Millisecond))
	later := newRun("render orbits", base.Add(550*time.Millisecond))
	for _, r := range []*types.RunResult{half, whole, later} {
		require.NoError(t, repo.Create(ctx, r))
	}

	runs, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, later.ID, runs[0].ID, "newest run must be listed first")
	assert.Equal(t, half.ID, runs[1].ID)
	assert.Equal(t, whole.ID, runs[2].ID)
}

func TestRunRepo_Prune_SubSecond(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	old := newRun("simulate", base)
	newest := newRun("simulate", base.Add(500*time.Millisecond))
	require.NoError(t, repo.Create(ctx, old))
	require.NoError(t, repo.Create(ctx, newest))

	removed, err := repo.Prune(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	kept, err := repo.GetByID(ctx, newest.ID)
	require.NoError(t, err, "pruning must keep the newest run")
	assert.Equal(t, newest.ID, kept.ID)
	assert.WithinDuration(t, newest.Timestamp, kept.Timestamp, time.Microsecond)

	_, err = repo.GetByID(ctx, old.ID)
	assert.Error(t, err)
}

func TestRunRepo_ListFilterAndLimit(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newRun("simulate", base.Add(time.Duration(i)*time.Minute))))
	}
	require.NoError(t, repo.Create(ctx, newRun("render orbits", base.Add(time.Hour))))

	runs, err := repo.List(ctx, "simulate", 3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
	for _, r := range runs {
		assert.Equal(t, "simulate", r.Command)
	}
}

func TestRunRepo_DeleteCascadesArtifacts(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteRunRepo(database)
	ctx := context.Background()

	run := newRun("simulate", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, run))
	require.NoError(t, repo.Delete(ctx, run.ID))

	_, err := repo.GetByID(ctx, run.ID)
	assert.Error(t, err)

	var n int
	require.NoError(t, database.QueryRow(
		`SELECT COUNT(*) FROM artifacts WHERE run_id = ?`, run.ID).Scan(&n))
	assert.Zero(t, n, "artifact rows must be removed with the run")
}

func TestRunRepo_Prune(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	var newest string
	for i := 0; i < 6; i++ {
		r := newRun("render dashboard", base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, repo.Create(ctx, r))
		newest = r.ID
	}

	removed, err := repo.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 4, removed)

	runs, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newest, runs[0].ID)
}

func TestRunRepo_FailedRunKeepsError(t *testing.T) {
	repo := NewSQLiteRunRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	run := newRun("stats kepler", time.Now().UTC())
	run.Status = types.StatusFailed
	run.Error = "catalog has no planets"
	run.Artifacts = nil
	require.NoError(t, repo.Create(ctx, run))

	got, err := repo.GetByID(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, types.StatusFailed, got.Status)
	assert.Equal(t, "catalog has no planets", got.Error)
	assert.Empty(t, got.Artifacts)
}
