package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
)

// MediaRepository хранит сведения о загруженных файлах в коллекции media_files.
type MediaRepository struct {
	col *mongo.Collection
}

// NewMediaRepository создаёт экземпляр репозитория.
func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{col: db.Collection(MediaFilesCollection)}
}

// Create сохраняет запись о файле.
func (r *MediaRepository) Create(ctx context.Context, media *models.MediaFile) error {
	now := time.Now().UTC()
	if media.ID == "" {
		media.ID = models.NewID()
	}
	media.CreatedAt = now
	media.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, media); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrMediaFilenameExists
		}
		return fmt.Errorf("media repository: insert %w", err)
	}
	return nil
}

// GetByID возвращает запись о файле.
func (r *MediaRepository) GetByID(ctx context.Context, id string) (*models.MediaFile, error) {
	var media models.MediaFile
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&media); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrMediaFileNotFound
		}
		return nil, fmt.Errorf("media repository: get by id %w", err)
	}
	return &media, nil
}

// List возвращает файлы от новых к старым.
func (r *MediaRepository) List(ctx context.Context) ([]models.MediaFile, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("media repository: list %w", err)
	}
	defer cur.Close(ctx)

	files := make([]models.MediaFile, 0)
	if err := cur.All(ctx, &files); err != nil {
		return nil, fmt.Errorf("media repository: decode list %w", err)
	}
	return files, nil
}

// Delete удаляет запись о файле.
func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("media repository: delete %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrMediaFileNotFound
	}
	return nil
}
