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

// PortfolioRepository хранит работы портфолио в коллекции portfolio_items.
type PortfolioRepository struct {
	col *mongo.Collection
}

// NewPortfolioRepository создаёт экземпляр репозитория.
func NewPortfolioRepository(db *mongo.Database) *PortfolioRepository {
	return &PortfolioRepository{col: db.Collection(PortfolioItemsCollection)}
}

// Create создаёт новую работу в портфолио.
func (r *PortfolioRepository) Create(ctx context.Context, item *models.PortfolioItem) error {
	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = models.NewID()
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, item); err != nil {
		return fmt.Errorf("portfolio repository: insert %w", err)
	}
	return nil
}

// GetByID возвращает работу по идентификатору.
func (r *PortfolioRepository) GetByID(ctx context.Context, id string) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrPortfolioItemNotFound
		}
		return nil, fmt.Errorf("portfolio repository: get by id %w", err)
	}
	return &item, nil
}

// List возвращает все работы: сначала по display_order, затем от новых к старым.
func (r *PortfolioRepository) List(ctx context.Context) ([]models.PortfolioItem, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "display_order", Value: 1},
		{Key: "createdAt", Value: -1},
	})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("portfolio repository: list %w", err)
	}
	defer cur.Close(ctx)

	items := make([]models.PortfolioItem, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("portfolio repository: decode list %w", err)
	}
	return items, nil
}

// Count возвращает количество работ.
func (r *PortfolioRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("portfolio repository: count %w", err)
	}
	return n, nil
}

// Update применяет частичное обновление и возвращает обновлённую запись.
func (r *PortfolioRepository) Update(ctx context.Context, id string, patch models.PortfolioPatch) (*models.PortfolioItem, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Category != nil {
		set["category"] = *patch.Category
	}
	if patch.Client != nil {
		set["client"] = *patch.Client
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.ThumbnailURL != nil {
		set["thumbnail_url"] = *patch.ThumbnailURL
	}
	if patch.VideoURL != nil {
		set["video_url"] = *patch.VideoURL
	}
	if patch.Featured != nil {
		set["featured"] = *patch.Featured
	}
	if patch.DisplayOrder != nil {
		set["display_order"] = *patch.DisplayOrder
	}
	if patch.Metadata != nil {
		set["metadata"] = patch.Metadata
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item models.PortfolioItem
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrPortfolioItemNotFound
		}
		return nil, fmt.Errorf("portfolio repository: update %w", err)
	}
	return &item, nil
}

// Delete удаляет работу.
func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("portfolio repository: delete %w", err)
	}
	if res.DeletedCount == 0 {
		return repository.ErrPortfolioItemNotFound
	}
	return nil
}

// Reorder выставляет display_order равным позиции идентификатора в списке.
// Операции отправляются одним упорядоченным пакетом без транзакции:
// при повторе идентификатора побеждает последняя позиция, неизвестные id пропускаются.
func (r *PortfolioRepository) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	now := time.Now().UTC()
	writes := make([]mongo.WriteModel, 0, len(ids))
	for position, id := range ids {
		writes = append(writes, mongo.NewUpdateOneModel().
			SetFilter(bson.M{"_id": id}).
			SetUpdate(bson.M{"$set": bson.M{"display_order": position, "updatedAt": now}}))
	}

	if _, err := r.col.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("portfolio repository: reorder %w", err)
	}
	return nil
}
