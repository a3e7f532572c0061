package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
)

// MediaRepository работает с таблицей media_files.
type MediaRepository struct {
	db *sqlx.DB
}

// NewMediaRepository создаёт экземпляр.
func NewMediaRepository(db *sqlx.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// Create сохраняет запись о файле.
func (r *MediaRepository) Create(ctx context.Context, media *models.MediaFile) error {
	if media.ID == "" {
		media.ID = models.NewID()
	}

	query := `
		INSERT INTO media_files
			(id, filename, original_name, url, type, size, mime_type, dimensions, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		media.ID,
		media.Filename,
		media.OriginalName,
		media.URL,
		media.Type,
		media.Size,
		media.MimeType,
		media.Dimensions,
		media.UploadedBy,
	).Scan(&media.CreatedAt, &media.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrMediaFilenameExists
		}
		return fmt.Errorf("media repository: create %w", err)
	}
	return nil
}

// GetByID возвращает запись о файле.
func (r *MediaRepository) GetByID(ctx context.Context, id string) (*models.MediaFile, error) {
	return getByID[models.MediaFile](ctx, r.db, "media_files", id, repository.ErrMediaFileNotFound)
}

// List возвращает файлы от новых к старым.
func (r *MediaRepository) List(ctx context.Context) ([]models.MediaFile, error) {
	files := make([]models.MediaFile, 0)
	if err := r.db.SelectContext(ctx, &files, `SELECT * FROM media_files ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("media repository: list %w", err)
	}
	return files, nil
}

// Delete удаляет запись о файле.
func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	if err := deleteByID(ctx, r.db, "media_files", id, repository.ErrMediaFileNotFound); err != nil {
		if errors.Is(err, repository.ErrMediaFileNotFound) {
			return err
		}
		return fmt.Errorf("media repository: %w", err)
	}
	return nil
}
