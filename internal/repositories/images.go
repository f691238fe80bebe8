package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/sleuthling/sleuthling/internal/db"
	"github.com/sleuthling/sleuthling/internal/errors"
	"github.com/sleuthling/sleuthling/internal/models"
)

// ImageRepository stores generated images in the database keyed by
// "<entity-type>/<entity-id>". Keeping them next to the case rows means a
// single-file backup carries the whole game state.
type ImageRepository struct {
	dbs    *db.Database
	logger *slog.Logger
}

func NewImageRepository(dbs *db.Database, logger *slog.Logger) *ImageRepository {
	return &ImageRepository{
		dbs:    dbs,
		logger: logger.With("source", "ImageRepository"),
	}
}

// ImageKey builds the storage key for an entity's image.
func ImageKey(entityType, entityID string) string {
	return fmt.Sprintf("%s/%s", entityType, entityID)
}

// PutImage stores an image, replacing any previous one under the same key.
func (r *ImageRepository) PutImage(ctx context.Context, image models.Image) error {
	stmt := `INSERT INTO images (key, data, content_type)
VALUES (:key, :data, :content_type)
ON CONFLICT (key) DO UPDATE SET data         = excluded.data,
                                content_type = excluded.content_type`
	if _, err := r.dbs.ReadWrite.NamedExecContext(ctx, stmt, image); err != nil {
		return errors.Wrap(err, "store image", slog.String("key", image.Key))
	}
	return nil
}

// GetImage loads an image by key. Returns ErrNotFound when no image has been
// generated for the key.
func (r *ImageRepository) GetImage(ctx context.Context, key string) (models.Image, error) {
	var image models.Image
	stmt := `SELECT key, data, content_type FROM images WHERE key = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &image, stmt, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Image{}, errors.Wrap(ErrNotFound, "read image", slog.String("key", key))
		}
		return models.Image{}, errors.Wrap(err, "read image")
	}
	return image, nil
}
