package repositories

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/sleuthling/sleuthling/internal/db"
	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/models"
)

// ErrNotFound signals that the requested row does not exist.
var ErrNotFound = errors.NewSentinel("not found")

type CaseRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewCaseRepository(dbs *db.Database, logger *slog.Logger) *CaseRepository {
	return &CaseRepository{
		dbs:    dbs,
		logger: logger.With("source", "CaseRepository"),
	}
}

// SaveBundle upserts a case together with its clues and suspects in one
// transaction. Saving an existing case ID replaces its clue and suspect rows
// wholesale so the bundle stays internally consistent.
func (r *CaseRepository) SaveBundle(ctx context.Context, bundle models.GeneratedCase) error {
	tx, err := r.dbs.ReadWrite.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin transaction")
	}
	defer func() {
		if err = tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			r.logger.Error("could not roll back transaction", errors.SlogError(err))
		}
	}()

	stmt := `INSERT INTO cases (id, title, description, summary, difficulty, solved, archived,
                   location, date_time, image_url, generated, solution)
VALUES (:id, :title, :description, :summary, :difficulty, :solved, :archived,
        :location, :date_time, :image_url, :generated, :solution)
ON CONFLICT (id) DO UPDATE SET title       = excluded.title,
                               description = excluded.description,
                               summary     = excluded.summary,
                               difficulty  = excluded.difficulty,
                               solved      = excluded.solved,
                               archived    = excluded.archived,
                               location    = excluded.location,
                               date_time   = excluded.date_time,
                               image_url   = excluded.image_url,
                               generated   = excluded.generated,
                               solution    = excluded.solution`
	if _, err = tx.NamedExecContext(ctx, stmt, bundle.Case); err != nil {
		return errors.Wrap(err, "upsert case", slog.String("case_id", bundle.Case.ID))
	}

	// Replace child rows instead of diffing them.
	if _, err = tx.ExecContext(ctx, `DELETE FROM clues WHERE case_id = ?`, bundle.Case.ID); err != nil {
		return errors.Wrap(err, "clear clues")
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM suspects WHERE case_id = ?`, bundle.Case.ID); err != nil {
		return errors.Wrap(err, "clear suspects")
	}

	clueStmt := `INSERT INTO clues (id, case_id, title, description, location, type,
                   discovered, examined, relevance, emoji, image_url)
VALUES (:id, :case_id, :title, :description, :location, :type,
        :discovered, :examined, :relevance, :emoji, :image_url)`
	for _, clue := range bundle.Clues {
		if _, err = tx.NamedExecContext(ctx, clueStmt, clue); err != nil {
			return errors.Wrap(err, "insert clue", slog.String("clue_id", clue.ID))
		}
	}

	suspectStmt := `INSERT INTO suspects (id, case_id, name, description, background, motive,
                      alibi, guilty, interviewed, emoji, image_url)
VALUES (:id, :case_id, :name, :description, :background, :motive,
        :alibi, :guilty, :interviewed, :emoji, :image_url)`
	for _, suspect := range bundle.Suspects {
		if _, err = tx.NamedExecContext(ctx, suspectStmt, suspect); err != nil {
			return errors.Wrap(err, "insert suspect", slog.String("suspect_id", suspect.ID))
		}
	}

	if err = tx.Commit(); err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}

// Get loads a case with its clues and suspects. Returns ErrNotFound when the
// case does not exist.
func (r *CaseRepository) Get(ctx context.Context, caseID string) (*models.Case, error) {
	var c models.Case
	stmt := `SELECT id, title, description, summary, difficulty, solved, archived,
       location, date_time, image_url, generated, solution
FROM cases WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &c, stmt, caseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrap(ErrNotFound, "read case", slog.String("case_id", caseID))
		}
		return nil, errors.Wrap(err, "read case")
	}

	stmt = `SELECT id, case_id, title, description, location, type,
       discovered, examined, relevance, emoji, image_url
FROM clues WHERE case_id = ? ORDER BY title`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &c.Clues, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "read clues")
	}

	stmt = `SELECT id, case_id, name, description, background, motive,
       alibi, guilty, interviewed, emoji, image_url
FROM suspects WHERE case_id = ? ORDER BY name`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &c.Suspects, stmt, caseID); err != nil {
		return nil, errors.Wrap(err, "read suspects")
	}

	return &c, nil
}

// List returns all cases with their clues and suspects, newest first.
func (r *CaseRepository) List(ctx context.Context) ([]models.Case, error) {
	cases := []models.Case{}
	stmt := `SELECT id, title, description, summary, difficulty, solved, archived,
       location, date_time, image_url, generated, solution
FROM cases ORDER BY created_at DESC, id DESC`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &cases, stmt); err != nil {
		return nil, errors.Wrap(err, "list cases")
	}

	var (
		clues    []models.Clue
		suspects []models.Suspect
	)
	stmt = `SELECT id, case_id, title, description, location, type,
       discovered, examined, relevance, emoji, image_url
FROM clues ORDER BY title`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &clues, stmt); err != nil {
		return nil, errors.Wrap(err, "list clues")
	}
	stmt = `SELECT id, case_id, name, description, background, motive,
       alibi, guilty, interviewed, emoji, image_url
FROM suspects ORDER BY name`
	if err := r.dbs.ReadOnly.SelectContext(ctx, &suspects, stmt); err != nil {
		return nil, errors.Wrap(err, "list suspects")
	}

	byID := make(map[string]*models.Case, len(cases))
	for i := range cases {
		byID[cases[i].ID] = &cases[i]
	}
	for _, clue := range clues {
		if c, ok := byID[clue.CaseID]; ok {
			c.Clues = append(c.Clues, clue)
		}
	}
	for _, suspect := range suspects {
		if c, ok := byID[suspect.CaseID]; ok {
			c.Suspects = append(c.Suspects, suspect)
		}
	}
	return cases, nil
}

// UpdateFlags patches the solved and archived flags. Nil pointers leave the
// corresponding flag untouched.
func (r *CaseRepository) UpdateFlags(ctx context.Context, caseID string, solved, archived *bool) error {
	stmt := `UPDATE cases
SET solved   = COALESCE(@solved, solved),
    archived = COALESCE(@archived, archived)
WHERE id = @case_id`
	result, err := r.dbs.ReadWrite.ExecContext(ctx, stmt,
		sql.Named("solved", boolArg(solved)),
		sql.Named("archived", boolArg(archived)),
		sql.Named("case_id", caseID),
	)
	if err != nil {
		return errors.Wrap(err, "update case flags", slog.String("case_id", caseID))
	}
	return requireAffected(result, caseID)
}

// Delete removes a case. Clues, suspects, cached analyses and interview
// transcripts go with it through foreign key cascades.
func (r *CaseRepository) Delete(ctx context.Context, caseID string) error {
	result, err := r.dbs.ReadWrite.ExecContext(ctx, `DELETE FROM cases WHERE id = ?`, caseID)
	if err != nil {
		return errors.Wrap(err, "delete case", slog.String("case_id", caseID))
	}
	return requireAffected(result, caseID)
}

// MarkClueExamined flags a clue as examined by the player.
func (r *CaseRepository) MarkClueExamined(ctx context.Context, clueID string) error {
	result, err := r.dbs.ReadWrite.ExecContext(ctx,
		`UPDATE clues SET examined = 1 WHERE id = ?`, clueID)
	if err != nil {
		return errors.Wrap(err, "mark clue examined", slog.String("clue_id", clueID))
	}
	return requireAffected(result, clueID)
}

// MarkSuspectInterviewed flags a suspect as interviewed at least once.
func (r *CaseRepository) MarkSuspectInterviewed(ctx context.Context, suspectID string) error {
	result, err := r.dbs.ReadWrite.ExecContext(ctx,
		`UPDATE suspects SET interviewed = 1 WHERE id = ?`, suspectID)
	if err != nil {
		return errors.Wrap(err, "mark suspect interviewed", slog.String("suspect_id", suspectID))
	}
	return requireAffected(result, suspectID)
}

// SetEntityImageURL records where a generated image for a case, clue or
// suspect can be fetched from.
func (r *CaseRepository) SetEntityImageURL(ctx context.Context, table EntityTable, id, imageURL string) error {
	var stmt string
	switch table {
	case entityCases:
		stmt = `UPDATE cases SET image_url = ? WHERE id = ?`
	case entityClues:
		stmt = `UPDATE clues SET image_url = ? WHERE id = ?`
	case entitySuspects:
		stmt = `UPDATE suspects SET image_url = ? WHERE id = ?`
	default:
		return errors.New("unknown entity table", slog.String("table", string(table)))
	}
	result, err := r.dbs.ReadWrite.ExecContext(ctx, stmt, imageURL, id)
	if err != nil {
		return errors.Wrap(err, "set image url", slog.String("id", id))
	}
	return requireAffected(result, id)
}

type EntityTable string

const (
	entityCases    EntityTable = "cases"
	entityClues    EntityTable = "clues"
	entitySuspects EntityTable = "suspects"
)

// EntityTableFor maps an image entity type to its table. The second return
// value is false for unknown entity types.
func EntityTableFor(entityType string) (EntityTable, bool) {
	switch entityType {
	case "case":
		return entityCases, true
	case "clue":
		return entityClues, true
	case "suspect":
		return entitySuspects, true
	default:
		return "", false
	}
}

func boolArg(v *bool) any {
	if v == nil {
		return nil
	}
	return *v
}

func requireAffected(result sql.Result, id string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "rows affected")
	}
	if affected == 0 {
		return errors.Wrap(ErrNotFound, "no rows affected", slog.String("id", id))
	}
	return nil
}
