package repositories

import (
	"context"
	"log/slog"

	"github.com/sleuthling/sleuthling/internal/db"
	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/models"
)

// InterviewRepository persists suspect interview transcripts so conversations
// resume with full history.
type InterviewRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewInterviewRepository(dbs *db.Database, logger *slog.Logger) *InterviewRepository {
	return &InterviewRepository{
		dbs:    dbs,
		logger: logger.With("source", "InterviewRepository"),
	}
}

// AppendInterview adds one question and answer to the end of a suspect's
// transcript.
func (r *InterviewRepository) AppendInterview(ctx context.Context, turn models.InterviewTurn) error {
	stmt := `INSERT INTO suspect_interviews (suspect_id, case_id, question, answer)
VALUES (:suspect_id, :case_id, :question, :answer)`
	if _, err := r.dbs.ReadWrite.NamedExecContext(ctx, stmt, turn); err != nil {
		return errors.Wrap(err, "insert interview turn",
			slog.String("suspect_id", turn.SuspectID))
	}
	return nil
}

// InterviewHistory returns a suspect's transcript in chronological order. An
// uninterviewed suspect yields an empty slice, not an error.
func (r *InterviewRepository) InterviewHistory(
	ctx context.Context,
	suspectID string,
) ([]models.InterviewTurn, error) {
	turns := []models.InterviewTurn{}
	stmt := `SELECT id, suspect_id, case_id, question, answer, created_at
FROM suspect_interviews
WHERE suspect_id = ?
ORDER BY id`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &turns, stmt, suspectID); err != nil {
		return nil, errors.Wrap(err, "read interview history",
			slog.String("suspect_id", suspectID))
	}
	return turns, nil
}
