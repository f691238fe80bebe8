package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"

	"github.com/sleuthling/sleuthling/internal/db"
	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/models"
)

// AnalysisRepository caches clue analyses so repeated examinations of the
// same clue don't burn another model round trip.
type AnalysisRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewAnalysisRepository(dbs *db.Database, logger *slog.Logger) *AnalysisRepository {
	return &AnalysisRepository{
		dbs:    dbs,
		logger: logger.With("source", "AnalysisRepository"),
	}
}

// CacheClueAnalysis stores an analysis keyed by clue ID, overwriting any
// previous one. Connections and next steps serialize to JSON text columns.
func (r *AnalysisRepository) CacheClueAnalysis(
	ctx context.Context,
	clueID string,
	caseID string,
	analysis models.ClueAnalysis,
) error {
	connections, err := json.Marshal(analysis.Connections)
	if err != nil {
		return errors.Wrap(err, "marshal connections")
	}
	nextSteps, err := json.Marshal(analysis.NextSteps)
	if err != nil {
		return errors.Wrap(err, "marshal next steps")
	}

	stmt := `INSERT INTO clue_analyses (clue_id, case_id, summary, connections, next_steps)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (clue_id) DO UPDATE SET summary     = excluded.summary,
                                    connections = excluded.connections,
                                    next_steps  = excluded.next_steps`
	if _, err = r.dbs.ReadWrite.ExecContext(ctx, stmt,
		clueID, caseID, analysis.Summary, string(connections), string(nextSteps)); err != nil {
		return errors.Wrap(err, "cache clue analysis", slog.String("clue_id", clueID))
	}
	return nil
}

// CachedClueAnalysis loads a previously cached analysis. Returns ErrNotFound
// when the clue has not been analyzed yet.
func (r *AnalysisRepository) CachedClueAnalysis(
	ctx context.Context,
	clueID string,
) (models.ClueAnalysis, error) {
	var row struct {
		Summary     string `db:"summary"`
		Connections string `db:"connections"`
		NextSteps   string `db:"next_steps"`
	}
	stmt := `SELECT summary, connections, next_steps FROM clue_analyses WHERE clue_id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &row, stmt, clueID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.ClueAnalysis{}, errors.Wrap(ErrNotFound, "read clue analysis",
				slog.String("clue_id", clueID))
		}
		return models.ClueAnalysis{}, errors.Wrap(err, "read clue analysis")
	}

	analysis := models.ClueAnalysis{
		Summary:     row.Summary,
		Connections: []models.ClueConnection{},
		NextSteps:   []string{},
	}
	if err := json.Unmarshal([]byte(row.Connections), &analysis.Connections); err != nil {
		return models.ClueAnalysis{}, errors.Wrap(err, "unmarshal connections")
	}
	if err := json.Unmarshal([]byte(row.NextSteps), &analysis.NextSteps); err != nil {
		return models.ClueAnalysis{}, errors.Wrap(err, "unmarshal next steps")
	}
	return analysis, nil
}
