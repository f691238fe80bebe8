package repositories_test

import (
	"context"
	"testing"

	"github.com/sleuthling/sleuthling/internal/models"
	"github.com/sleuthling/sleuthling/internal/repositories"
	"github.com/stretchr/testify/require"
)

func TestAnalysisRepository_CacheRoundTrip(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	logger := testLogger()
	cases := repositories.NewCaseRepository(dbs, logger)
	repo := repositories.NewAnalysisRepository(dbs, logger)
	ctx := context.Background()
	require.NoError(t, cases.SaveBundle(ctx, testBundle()))

	_, err := repo.CachedClueAnalysis(ctx, "clue-1")
	require.ErrorIs(t, err, repositories.ErrNotFound)

	analysis := testBundleClueAnalysis()
	require.NoError(t, repo.CacheClueAnalysis(ctx, "clue-1", "case-1", analysis))

	got, err := repo.CachedClueAnalysis(ctx, "clue-1")
	require.NoError(t, err)
	require.Equal(t, analysis, got)
}

func TestAnalysisRepository_CacheOverwrites(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	logger := testLogger()
	cases := repositories.NewCaseRepository(dbs, logger)
	repo := repositories.NewAnalysisRepository(dbs, logger)
	ctx := context.Background()
	require.NoError(t, cases.SaveBundle(ctx, testBundle()))

	require.NoError(t, repo.CacheClueAnalysis(ctx, "clue-1", "case-1", testBundleClueAnalysis()))

	updated := models.ClueAnalysis{
		Summary:     "On closer look, the footprints are too small for an adult.",
		Connections: []models.ClueConnection{},
		NextSteps:   []string{"Talk to the students"},
	}
	require.NoError(t, repo.CacheClueAnalysis(ctx, "clue-1", "case-1", updated))

	got, err := repo.CachedClueAnalysis(ctx, "clue-1")
	require.NoError(t, err)
	require.Equal(t, updated, got)

	var count int
	require.NoError(t, dbs.ReadOnly.Get(&count, `SELECT COUNT(*) FROM clue_analyses`))
	require.Equal(t, 1, count)
}
