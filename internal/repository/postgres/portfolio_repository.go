package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
)

// PortfolioRepository работает с таблицей portfolio_items.
type PortfolioRepository struct {
	db *sqlx.DB
}

// NewPortfolioRepository создаёт экземпляр репозитория.
func NewPortfolioRepository(db *sqlx.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Create создаёт новую работу в портфолио.
func (r *PortfolioRepository) Create(ctx context.Context, item *models.PortfolioItem) error {
	if item.ID == "" {
		item.ID = models.NewID()
	}

	query := `
		INSERT INTO portfolio_items
			(id, title, category, client, description, thumbnail_url, video_url, featured, display_order, metadata)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		item.ID,
		item.Title,
		item.Category,
		item.Client,
		item.Description,
		item.ThumbnailURL,
		item.VideoURL,
		item.Featured,
		item.DisplayOrder,
		item.Metadata,
	).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		return fmt.Errorf("portfolio repository: insert %w", err)
	}
	return nil
}

// GetByID возвращает работу по идентификатору.
func (r *PortfolioRepository) GetByID(ctx context.Context, id string) (*models.PortfolioItem, error) {
	return getByID[models.PortfolioItem](ctx, r.db, "portfolio_items", id, repository.ErrPortfolioItemNotFound)
}

// List возвращает все работы: сначала по display_order, затем от новых к старым.
func (r *PortfolioRepository) List(ctx context.Context) ([]models.PortfolioItem, error) {
	items := make([]models.PortfolioItem, 0)
	query := `SELECT * FROM portfolio_items ORDER BY display_order ASC, created_at DESC`
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("portfolio repository: list %w", err)
	}
	return items, nil
}

// Count возвращает количество работ.
func (r *PortfolioRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM portfolio_items`); err != nil {
		return 0, fmt.Errorf("portfolio repository: count %w", err)
	}
	return n, nil
}

// Update применяет частичное обновление и возвращает обновлённую запись.
func (r *PortfolioRepository) Update(ctx context.Context, id string, patch models.PortfolioPatch) (*models.PortfolioItem, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var b updateBuilder
	if patch.Title != nil {
		b.set("title", *patch.Title)
	}
	if patch.Category != nil {
		b.set("category", *patch.Category)
	}
	if patch.Client != nil {
		b.set("client", *patch.Client)
	}
	if patch.Description != nil {
		b.set("description", *patch.Description)
	}
	if patch.ThumbnailURL != nil {
		b.set("thumbnail_url", *patch.ThumbnailURL)
	}
	if patch.VideoURL != nil {
		b.set("video_url", *patch.VideoURL)
	}
	if patch.Featured != nil {
		b.set("featured", *patch.Featured)
	}
	if patch.DisplayOrder != nil {
		b.set("display_order", *patch.DisplayOrder)
	}
	if patch.Metadata != nil {
		b.set("metadata", patch.Metadata)
	}

	query, args := b.build("portfolio_items", id)
	var item models.PortfolioItem
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrPortfolioItemNotFound
		}
		return nil, fmt.Errorf("portfolio repository: update %w", err)
	}
	return &item, nil
}

// Delete удаляет работу.
func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	if err := deleteByID(ctx, r.db, "portfolio_items", id, repository.ErrPortfolioItemNotFound); err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			return err
		}
		return fmt.Errorf("portfolio repository: %w", err)
	}
	return nil
}

// Reorder выставляет display_order равным позиции идентификатора в списке.
// Каждое обновление выполняется отдельным запросом без транзакции;
// неизвестные id пропускаются, при повторе побеждает последняя позиция.
func (r *PortfolioRepository) Reorder(ctx context.Context, ids []string) error {
	query := `UPDATE portfolio_items SET display_order = $1, updated_at = NOW() WHERE id = $2`
	for position, id := range ids {
		if _, err := r.db.ExecContext(ctx, query, position, id); err != nil {
			return fmt.Errorf("portfolio repository: reorder %s %w", id, err)
		}
	}
	return nil
}
