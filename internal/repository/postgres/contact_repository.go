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

// ContactRepository работает с таблицей contact_inquiries.
type ContactRepository struct {
	db *sqlx.DB
}

// NewContactRepository создаёт экземпляр репозитория.
func NewContactRepository(db *sqlx.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

// Create сохраняет заявку.
func (r *ContactRepository) Create(ctx context.Context, inquiry *models.ContactInquiry) error {
	if inquiry.ID == "" {
		inquiry.ID = models.NewID()
	}

	query := `
		INSERT INTO contact_inquiries (id, name, email, subject, message, status, admin_notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRowxContext(
		ctx,
		query,
		inquiry.ID,
		inquiry.Name,
		inquiry.Email,
		inquiry.Subject,
		inquiry.Message,
		inquiry.Status,
		inquiry.AdminNotes,
	).Scan(&inquiry.CreatedAt, &inquiry.UpdatedAt); err != nil {
		return fmt.Errorf("contact repository: insert %w", err)
	}
	return nil
}

// GetByID возвращает заявку по идентификатору.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.ContactInquiry, error) {
	return getByID[models.ContactInquiry](ctx, r.db, "contact_inquiries", id, repository.ErrContactInquiryNotFound)
}

// List возвращает заявки от новых к старым.
func (r *ContactRepository) List(ctx context.Context) ([]models.ContactInquiry, error) {
	inquiries := make([]models.ContactInquiry, 0)
	if err := r.db.SelectContext(ctx, &inquiries, `SELECT * FROM contact_inquiries ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("contact repository: list %w", err)
	}
	return inquiries, nil
}

// Update меняет статус и/или заметки администратора.
func (r *ContactRepository) Update(ctx context.Context, id string, patch models.ContactPatch) (*models.ContactInquiry, error) {
	if patch.IsEmpty() {
		return r.GetByID(ctx, id)
	}

	var b updateBuilder
	if patch.Status != nil {
		b.set("status", *patch.Status)
	}
	if patch.AdminNotes != nil {
		b.set("admin_notes", *patch.AdminNotes)
	}

	query, args := b.build("contact_inquiries", id)
	var inquiry models.ContactInquiry
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&inquiry); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrContactInquiryNotFound
		}
		return nil, fmt.Errorf("contact repository: update %w", err)
	}
	return &inquiry, nil
}
