package repositories_test

import (
	"context"
	"testing"

	"github.com/sleuthling/sleuthling/internal/repositories"
	"github.com/stretchr/testify/require"
)

func TestCaseRepository_SaveBundleAndGet(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	repo := repositories.NewCaseRepository(dbs, testLogger())
	ctx := context.Background()
	bundle := testBundle()

	require.NoError(t, repo.SaveBundle(ctx, bundle))

	got, err := repo.Get(ctx, bundle.Case.ID)
	require.NoError(t, err)
	require.Equal(t, bundle.Case.Title, got.Title)
	require.Equal(t, bundle.Case.Solution, got.Solution)
	require.True(t, got.Generated)

	gotClueIDs := map[string]bool{}
	for _, clue := range got.Clues {
		gotClueIDs[clue.ID] = true
	}
	require.Equal(t, map[string]bool{"clue-1": true, "clue-2": true}, gotClueIDs)

	gotSuspectIDs := map[string]bool{}
	guiltyCount := 0
	for _, suspect := range got.Suspects {
		gotSuspectIDs[suspect.ID] = true
		if suspect.Guilty {
			guiltyCount++
		}
	}
	require.Equal(t, map[string]bool{"suspect-1": true, "suspect-2": true}, gotSuspectIDs)
	require.Equal(t, 1, guiltyCount)
}

func TestCaseRepository_SaveBundleIsIdempotent(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	repo := repositories.NewCaseRepository(dbs, testLogger())
	ctx := context.Background()
	bundle := testBundle()

	require.NoError(t, repo.SaveBundle(ctx, bundle))

	// Saving again with a changed title replaces the bundle instead of
	// duplicating child rows.
	bundle.Case.Title = "The Recovered Cookie Recipe"
	require.NoError(t, repo.SaveBundle(ctx, bundle))

	got, err := repo.Get(ctx, bundle.Case.ID)
	require.NoError(t, err)
	require.Equal(t, "The Recovered Cookie Recipe", got.Title)
	require.Len(t, got.Clues, 2)
	require.Len(t, got.Suspects, 2)
}

func TestCaseRepository_GetNotFound(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	repo := repositories.NewCaseRepository(dbs, testLogger())

	_, err := repo.Get(context.Background(), "nonexistent")
	require.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCaseRepository_List(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	repo := repositories.NewCaseRepository(dbs, testLogger())
	ctx := context.Background()

	cases, err := repo.List(ctx)
	require.NoError(t, err)
	require.Empty(t, cases)

	first := testBundle()
	require.NoError(t, repo.SaveBundle(ctx, first))

	second := testBundle()
	second.Case.ID = "case-2"
	second.Case.Title = "The Vanishing Violin"
	for i := range second.Clues {
		second.Clues[i].ID += "-b"
		second.Clues[i].CaseID = second.Case.ID
	}
	for i := range second.Suspects {
		second.Suspects[i].ID += "-b"
		second.Suspects[i].CaseID = second.Case.ID
	}
	require.NoError(t, repo.SaveBundle(ctx, second))

	cases, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cases, 2)
	for _, c := range cases {
		require.Len(t, c.Clues, 2, "case %s", c.ID)
		require.Len(t, c.Suspects, 2, "case %s", c.ID)
		for _, clue := range c.Clues {
			require.Equal(t, c.ID, clue.CaseID)
		}
	}
}

func TestCaseRepository_UpdateFlags(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	repo := repositories.NewCaseRepository(dbs, testLogger())
	ctx := context.Background()
	bundle := testBundle()
	require.NoError(t, repo.SaveBundle(ctx, bundle))

	boolPtr := func(v bool) *bool { return &v }

	// Partial update: only solved changes.
	require.NoError(t, repo.UpdateFlags(ctx, bundle.Case.ID, boolPtr(true), nil))
	got, err := repo.Get(ctx, bundle.Case.ID)
	require.NoError(t, err)
	require.True(t, got.Solved)
	require.False(t, got.Archived)

	// Partial update: only archived changes, solved stays.
	require.NoError(t, repo.UpdateFlags(ctx, bundle.Case.ID, nil, boolPtr(true)))
	got, err = repo.Get(ctx, bundle.Case.ID)
	require.NoError(t, err)
	require.True(t, got.Solved)
	require.True(t, got.Archived)

	require.ErrorIs(t, repo.UpdateFlags(ctx, "nonexistent", boolPtr(true), nil),
		repositories.ErrNotFound)
}

func TestCaseRepository_DeleteCascades(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	logger := testLogger()
	repo := repositories.NewCaseRepository(dbs, logger)
	analyses := repositories.NewAnalysisRepository(dbs, logger)
	interviews := repositories.NewInterviewRepository(dbs, logger)
	ctx := context.Background()
	bundle := testBundle()
	require.NoError(t, repo.SaveBundle(ctx, bundle))

	require.NoError(t, analyses.CacheClueAnalysis(ctx, "clue-1", bundle.Case.ID,
		testBundleClueAnalysis()))
	require.NoError(t, interviews.AppendInterview(ctx, testBundleInterviewTurn()))

	require.NoError(t, repo.Delete(ctx, bundle.Case.ID))

	_, err := repo.Get(ctx, bundle.Case.ID)
	require.ErrorIs(t, err, repositories.ErrNotFound)

	var count int
	require.NoError(t, dbs.ReadOnly.Get(&count, `SELECT COUNT(*) FROM clues`))
	require.Zero(t, count)
	require.NoError(t, dbs.ReadOnly.Get(&count, `SELECT COUNT(*) FROM suspects`))
	require.Zero(t, count)
	require.NoError(t, dbs.ReadOnly.Get(&count, `SELECT COUNT(*) FROM clue_analyses`))
	require.Zero(t, count)
	require.NoError(t, dbs.ReadOnly.Get(&count, `SELECT COUNT(*) FROM suspect_interviews`))
	require.Zero(t, count)

	require.ErrorIs(t, repo.Delete(ctx, bundle.Case.ID), repositories.ErrNotFound)
}

func TestCaseRepository_MarkFlags(t *testing.T) {
	t.Parallel()
	dbs := newTestDB(t)
	repo := repositories.NewCaseRepository(dbs, testLogger())
	ctx := context.Background()
	bundle := testBundle()
	require.NoError(t, repo.SaveBundle(ctx, bundle))

	require.NoError(t, repo.MarkClueExamined(ctx, "clue-1"))
	// Idempotent: a second mark neither errors nor clears the flag.
	require.NoError(t, repo.MarkClueExamined(ctx, "clue-1"))
	require.NoError(t, repo.MarkSuspectInterviewed(ctx, "suspect-1"))

	got, err := repo.Get(ctx, bundle.Case.ID)
	require.NoError(t, err)
	for _, clue := range got.Clues {
		require.Equal(t, clue.ID == "clue-1", clue.Examined)
	}
	for _, suspect := range got.Suspects {
		require.Equal(t, suspect.ID == "suspect-1", suspect.Interviewed)
	}

	require.ErrorIs(t, repo.MarkClueExamined(ctx, "nonexistent"), repositories.ErrNotFound)
	require.ErrorIs(t, repo.MarkSuspectInterviewed(ctx, "nonexistent"), repositories.ErrNotFound)
}
