package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
)

// AdminUserRepository работает с таблицей admin_users.
type AdminUserRepository struct {
	db *sqlx.DB
}

// NewAdminUserRepository создаёт экземпляр репозитория.
func NewAdminUserRepository(db *sqlx.DB) *AdminUserRepository {
	return &AdminUserRepository{db: db}
}

// Create сохраняет нового администратора.
func (r *AdminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	if user.ID == "" {
		user.ID = models.NewID()
	}

	query := `
		INSERT INTO admin_users (id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`
	if err := r.db.QueryRowxContext(ctx, query, user.ID, user.Email, user.PasswordHash, user.Name).
		Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrAdminUserExists
		}
		return fmt.Errorf("admin user repository: create %w", err)
	}
	return nil
}

// GetByEmail ищет администратора по email.
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return getByField[models.AdminUser](ctx, r.db, "admin_users", "email", email, repository.ErrAdminUserNotFound)
}

// GetByID ищет администратора по идентификатору.
func (r *AdminUserRepository) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	return getByID[models.AdminUser](ctx, r.db, "admin_users", id, repository.ErrAdminUserNotFound)
}
