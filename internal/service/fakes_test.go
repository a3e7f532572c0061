package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
)

// fakeAdminRepo хранит администраторов в памяти.
type fakeAdminRepo struct {
	byEmail map[string]*models.AdminUser
	byID    map[string]*models.AdminUser
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{
		byEmail: make(map[string]*models.AdminUser),
		byID:    make(map[string]*models.AdminUser),
	}
}

func (r *fakeAdminRepo) Create(ctx context.Context, user *models.AdminUser) error {
	if _, ok := r.byEmail[user.Email]; ok {
		return repository.ErrAdminUserExists
	}
	user.ID = models.NewID()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.byEmail[user.Email] = user
	r.byID[user.ID] = user
	return nil
}

func (r *fakeAdminRepo) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, repository.ErrAdminUserNotFound
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	if u, ok := r.byID[id]; ok {
		return u, nil
	}
	return nil, repository.ErrAdminUserNotFound
}

func (r *fakeAdminRepo) remove(id string) {
	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}

// fakePortfolioRepo повторяет семантику хранилища портфолио в памяти.
type fakePortfolioRepo struct {
	items   map[string]*models.PortfolioItem
	clock   time.Time
	updates int
}

func newFakePortfolioRepo() *fakePortfolioRepo {
	return &fakePortfolioRepo{
		items: make(map[string]*models.PortfolioItem),
		clock: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakePortfolioRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

func (r *fakePortfolioRepo) Create(ctx context.Context, item *models.PortfolioItem) error {
	if item.ID == "" {
		item.ID = models.NewID()
	}
	item.CreatedAt = r.tick()
	item.UpdatedAt = item.CreatedAt
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakePortfolioRepo) GetByID(ctx context.Context, id string) (*models.PortfolioItem, error) {
	if item, ok := r.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, repository.ErrPortfolioItemNotFound
}

func (r *fakePortfolioRepo) List(ctx context.Context) ([]models.PortfolioItem, error) {
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

func (r *fakePortfolioRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.items)), nil
}

func (r *fakePortfolioRepo) Update(ctx context.Context, id string, patch models.PortfolioPatch) (*models.PortfolioItem, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, repository.ErrPortfolioItemNotFound
	}
	r.updates++
	patch.Apply(item)
	item.UpdatedAt = r.tick()
	cp := *item
	return &cp, nil
}

func (r *fakePortfolioRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return repository.ErrPortfolioItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *fakePortfolioRepo) Reorder(ctx context.Context, ids []string) error {
	for position, id := range ids {
		if item, ok := r.items[id]; ok {
			item.DisplayOrder = position
		}
	}
	return nil
}

// fakeContactRepo хранит заявки в памяти.
type fakeContactRepo struct {
	items map[string]*models.ContactInquiry
}

func newFakeContactRepo() *fakeContactRepo {
	return &fakeContactRepo{items: make(map[string]*models.ContactInquiry)}
}

func (r *fakeContactRepo) Create(ctx context.Context, inquiry *models.ContactInquiry) error {
	inquiry.ID = models.NewID()
	inquiry.CreatedAt = time.Now()
	inquiry.UpdatedAt = inquiry.CreatedAt
	cp := *inquiry
	r.items[inquiry.ID] = &cp
	return nil
}

func (r *fakeContactRepo) GetByID(ctx context.Context, id string) (*models.ContactInquiry, error) {
	if item, ok := r.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, repository.ErrContactInquiryNotFound
}

func (r *fakeContactRepo) List(ctx context.Context) ([]models.ContactInquiry, error) {
	out := make([]models.ContactInquiry, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeContactRepo) Update(ctx context.Context, id string, patch models.ContactPatch) (*models.ContactInquiry, error) {
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
	item.UpdatedAt = time.Now()
	cp := *item
	return &cp, nil
}

// mockMediaRepo testify-мок хранилища медиа.
type mockMediaRepo struct {
	mock.Mock
}

func (m *mockMediaRepo) Create(ctx context.Context, media *models.MediaFile) error {
	args := m.Called(ctx, media)
	if args.Error(0) == nil && media.ID == "" {
		media.ID = models.NewID()
	}
	return args.Error(0)
}

func (m *mockMediaRepo) GetByID(ctx context.Context, id string) (*models.MediaFile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MediaFile), args.Error(1)
}

func (m *mockMediaRepo) List(ctx context.Context) ([]models.MediaFile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MediaFile), args.Error(1)
}

func (m *mockMediaRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type publishedEvent struct {
	Type string
	Data interface{}
}

// recordingPublisher запоминает опубликованные события.
type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *recordingPublisher) Publish(eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Data: data})
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
