package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/pkg/apperror"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
	"github.com/ignatzorin/videocrew-backend/internal/validation"
)

// PortfolioRepository описывает взаимодействие сервиса с хранилищем портфолио.
type PortfolioRepository interface {
	Create(ctx context.Context, item *models.PortfolioItem) error
	GetByID(ctx context.Context, id string) (*models.PortfolioItem, error)
	List(ctx context.Context) ([]models.PortfolioItem, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, patch models.PortfolioPatch) (*models.PortfolioItem, error)
	Delete(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error
}

// PortfolioService содержит бизнес-логику работы с портфолио.
type PortfolioService struct {
	repo     PortfolioRepository
	cache    *CacheService
	cacheTTL time.Duration
}

// CreatePortfolioInput данные новой работы.
type CreatePortfolioInput struct {
	Title        string
	Category     string
	Client       string
	Description  string
	ThumbnailURL string
	VideoURL     string
	Featured     *bool
	DisplayOrder *int
	Metadata     *models.PortfolioMetadata
}

// NewPortfolioService создаёт новый сервис портфолио.
func NewPortfolioService(repo PortfolioRepository) *PortfolioService {
	return &PortfolioService{repo: repo}
}

// WithListCache включает кэширование публичного списка работ.
// Любое изменение портфолио через сервис сбрасывает кэш.
func (s *PortfolioService) WithListCache(cache *CacheService, ttl time.Duration) *PortfolioService {
	s.cache = cache
	s.cacheTTL = ttl
	return s
}

// List возвращает все работы в порядке показа.
func (s *PortfolioService) List(ctx context.Context) ([]models.PortfolioItem, error) {
	if s.cache == nil {
		return s.list(ctx)
	}

	cached, err := s.cache.GetOrSet(PortfolioListCacheKey, s.cacheTTL, func() (interface{}, error) {
		return s.list(ctx)
	})
	if err != nil {
		return nil, err
	}

	items := cached.([]models.PortfolioItem)
	out := make([]models.PortfolioItem, len(items))
	copy(out, items)
	return out, nil
}

func (s *PortfolioService) list(ctx context.Context) ([]models.PortfolioItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("portfolio service: %w", err))
	}
	return items, nil
}

// Get возвращает работу. Некорректный идентификатор трактуется как отсутствующая запись.
func (s *PortfolioService) Get(ctx context.Context, id string) (*models.PortfolioItem, error) {
	if !models.IsValidID(id) {
		return nil, apperror.ErrPortfolioItemNotFound
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapPortfolioErr(err)
	}
	return item, nil
}

// Create проверяет входные данные и создаёт работу.
func (s *PortfolioService) Create(ctx context.Context, in CreatePortfolioInput) (*models.PortfolioItem, error) {
	var errs validation.Errors
	errs.Check("title", validation.ValidateRequired("Title", in.Title, validation.MaxTitleLength))
	errs.Check("category", validation.ValidateRequired("Category", in.Category, validation.MaxCategoryLength))
	errs.Check("thumbnail_url", validation.ValidateURL("thumbnail URL", in.ThumbnailURL))
	errs.Check("video_url", validation.ValidateURL("video URL", in.VideoURL))
	errs.Check("client", validation.ValidateLength("Client", strings.TrimSpace(in.Client), 0, validation.MaxClientLength))
	errs.Check("description", validation.ValidateLength("Description", strings.TrimSpace(in.Description), 0, validation.MaxDescriptionLength))
	if in.DisplayOrder != nil {
		errs.Check("display_order", validation.ValidateDisplayOrder(*in.DisplayOrder))
	}
	if in.Metadata != nil {
		errs.Check("metadata.tags", validation.ValidateTags(in.Metadata.Tags))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	item := &models.PortfolioItem{
		Title:        strings.TrimSpace(in.Title),
		Category:     strings.TrimSpace(in.Category),
		Client:       strings.TrimSpace(in.Client),
		Description:  strings.TrimSpace(in.Description),
		ThumbnailURL: strings.TrimSpace(in.ThumbnailURL),
		VideoURL:     strings.TrimSpace(in.VideoURL),
		Metadata:     in.Metadata,
	}
	if in.Featured != nil {
		item.Featured = *in.Featured
	}
	if in.DisplayOrder != nil {
		item.DisplayOrder = *in.DisplayOrder
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, apperror.Internal(fmt.Errorf("portfolio service: %w", err))
	}
	s.invalidate()
	return item, nil
}

// Update применяет частичное обновление. Пустой патч возвращает запись без записи в хранилище.
func (s *PortfolioService) Update(ctx context.Context, id string, patch models.PortfolioPatch) (*models.PortfolioItem, error) {
	var errs validation.Errors
	errs.Check("id", validation.ValidateObjectID(id))
	if patch.Title != nil {
		errs.Check("title", validation.ValidateRequired("Title", *patch.Title, validation.MaxTitleLength))
		patch.Title = trimmed(patch.Title)
	}
	if patch.Category != nil {
		errs.Check("category", validation.ValidateRequired("Category", *patch.Category, validation.MaxCategoryLength))
		patch.Category = trimmed(patch.Category)
	}
	if patch.ThumbnailURL != nil {
		errs.Check("thumbnail_url", validation.ValidateURL("thumbnail URL", *patch.ThumbnailURL))
		patch.ThumbnailURL = trimmed(patch.ThumbnailURL)
	}
	if patch.VideoURL != nil {
		errs.Check("video_url", validation.ValidateURL("video URL", *patch.VideoURL))
		patch.VideoURL = trimmed(patch.VideoURL)
	}
	if patch.Client != nil {
		patch.Client = trimmed(patch.Client)
		errs.Check("client", validation.ValidateLength("Client", *patch.Client, 0, validation.MaxClientLength))
	}
	if patch.Description != nil {
		patch.Description = trimmed(patch.Description)
		errs.Check("description", validation.ValidateLength("Description", *patch.Description, 0, validation.MaxDescriptionLength))
	}
	if patch.DisplayOrder != nil {
		errs.Check("display_order", validation.ValidateDisplayOrder(*patch.DisplayOrder))
	}
	if patch.Metadata != nil {
		errs.Check("metadata.tags", validation.ValidateTags(patch.Metadata.Tags))
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	if patch.IsEmpty() {
		item, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, mapPortfolioErr(err)
		}
		return item, nil
	}

	item, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, mapPortfolioErr(err)
	}
	s.invalidate()
	return item, nil
}

// Delete удаляет работу. Связанные медиа-файлы не затрагиваются.
func (s *PortfolioService) Delete(ctx context.Context, id string) error {
	if err := validation.ValidateObjectID(id); err != nil {
		return apperror.Validation([]apperror.FieldError{{Field: "id", Message: err.Error()}})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapPortfolioErr(err)
	}
	s.invalidate()
	return nil
}

// Reorder выставляет display_order по позиции в списке.
// Полнота и уникальность списка не проверяются: неизвестные id пропускаются,
// при повторе побеждает последняя позиция.
func (s *PortfolioService) Reorder(ctx context.Context, ids []string) error {
	var errs validation.Errors
	if len(ids) == 0 {
		errs.Add("order", "Order array is required")
	}
	for i, id := range ids {
		if !models.IsValidID(id) {
			errs.Add(fmt.Sprintf("order[%d]", i), "All order items must be valid IDs")
		}
	}
	if err := errs.Err(); err != nil {
		return err
	}

	// Пакет без транзакции: даже при ошибке часть позиций могла записаться.
	err := s.repo.Reorder(ctx, ids)
	s.invalidate()
	if err != nil {
		return apperror.Internal(fmt.Errorf("portfolio service: %w", err))
	}
	return nil
}

func (s *PortfolioService) invalidate() {
	if s.cache != nil {
		s.cache.InvalidateByPrefix(PortfolioCachePrefix)
	}
}

func mapPortfolioErr(err error) error {
	if errors.Is(err, repository.ErrPortfolioItemNotFound) {
		return apperror.ErrPortfolioItemNotFound
	}
	return apperror.Internal(fmt.Errorf("portfolio service: %w", err))
}

func trimmed(s *string) *string {
	v := strings.TrimSpace(*s)
	return &v
}
