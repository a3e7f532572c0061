package router

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
)

// memStore общие часы для in-memory хранилищ: каждая запись получает
// строго возрастающее время создания.
type memStore struct {
	mu    sync.Mutex
	clock time.Time
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

type memAdminRepo struct {
	memStore
	byID map[string]*models.AdminUser
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{byID: make(map[string]*models.AdminUser)}
}

func (r *memAdminRepo) Create(ctx context.Context, user *models.AdminUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return repository.ErrAdminUserExists
		}
	}
	user.ID = models.NewID()
	user.CreatedAt = r.tick()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *memAdminRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrAdminUserNotFound
}

func (r *memAdminRepo) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, repository.ErrAdminUserNotFound
}

func (r *memAdminRepo) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
}

type memPortfolioRepo struct {
	memStore
	items  map[string]*models.PortfolioItem
	writes int
}

func newMemPortfolioRepo() *memPortfolioRepo {
	return &memPortfolioRepo{items: make(map[string]*models.PortfolioItem)}
}

func (r *memPortfolioRepo) Create(ctx context.Context, item *models.PortfolioItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	item.ID = models.NewID()
	item.CreatedAt = r.tick()
	item.UpdatedAt = item.CreatedAt
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *memPortfolioRepo) GetByID(ctx context.Context, id string) (*models.PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, repository.ErrPortfolioItemNotFound
}

func (r *memPortfolioRepo) List(ctx context.Context) ([]models.PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.PortfolioItem, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memPortfolioRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

func (r *memPortfolioRepo) Update(ctx context.Context, id string, patch models.PortfolioPatch) (*models.PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrPortfolioItemNotFound
	}
	r.writes++
	patch.Apply(item)
	item.UpdatedAt = r.tick()
	cp := *item
	return &cp, nil
}

func (r *memPortfolioRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrPortfolioItemNotFound
	}
	r.writes++
	delete(r.items, id)
	return nil
}

func (r *memPortfolioRepo) Reorder(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for position, id := range ids {
		if item, ok := r.items[id]; ok {
			r.writes++
			item.DisplayOrder = position
			item.UpdatedAt = r.tick()
		}
	}
	return nil
}

func (r *memPortfolioRepo) writeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

type memContactRepo struct {
	memStore
	items map[string]*models.ContactInquiry
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{items: make(map[string]*models.ContactInquiry)}
}

func (r *memContactRepo) Create(ctx context.Context, inquiry *models.ContactInquiry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	inquiry.ID = models.NewID()
	inquiry.CreatedAt = r.tick()
	inquiry.UpdatedAt = inquiry.CreatedAt
	cp := *inquiry
	r.items[inquiry.ID] = &cp
	return nil
}

func (r *memContactRepo) GetByID(ctx context.Context, id string) (*models.ContactInquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, repository.ErrContactInquiryNotFound
}

func (r *memContactRepo) List(ctx context.Context) ([]models.ContactInquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ContactInquiry, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memContactRepo) Update(ctx context.Context, id string, patch models.ContactPatch) (*models.ContactInquiry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrContactInquiryNotFound
	}
	if patch.Status != nil {
		item.Status = *patch.Status
	}
	if patch.AdminNotes != nil {
		item.AdminNotes = *patch.AdminNotes
	}
	item.UpdatedAt = r.tick()
	cp := *item
	return &cp, nil
}

type memMediaRepo struct {
	memStore
	items map[string]*models.MediaFile
}

func newMemMediaRepo() *memMediaRepo {
	return &memMediaRepo{items: make(map[string]*models.MediaFile)}
}

func (r *memMediaRepo) Create(ctx context.Context, media *models.MediaFile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	media.ID = models.NewID()
	media.CreatedAt = r.tick()
	media.UpdatedAt = media.CreatedAt
	cp := *media
	r.items[media.ID] = &cp
	return nil
}

func (r *memMediaRepo) GetByID(ctx context.Context, id string) (*models.MediaFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, repository.ErrMediaFileNotFound
}

func (r *memMediaRepo) List(ctx context.Context) ([]models.MediaFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.MediaFile, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memMediaRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return repository.ErrMediaFileNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memMediaRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
