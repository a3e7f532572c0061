package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ignatzorin/videocrew-backend/internal/models"
	"github.com/ignatzorin/videocrew-backend/internal/repository"
)

// AdminUserRepository хранит администраторов в коллекции admin_users.
type AdminUserRepository struct {
	col *mongo.Collection
}

// NewAdminUserRepository создаёт экземпляр репозитория.
func NewAdminUserRepository(db *mongo.Database) *AdminUserRepository {
	return &AdminUserRepository{col: db.Collection(AdminUsersCollection)}
}

// Create сохраняет нового администратора.
func (r *AdminUserRepository) Create(ctx context.Context, user *models.AdminUser) error {
	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = models.NewID()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrAdminUserExists
		}
		return fmt.Errorf("admin user repository: create %w", err)
	}
	return nil
}

// GetByEmail ищет администратора по email.
func (r *AdminUserRepository) GetByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// GetByID ищет администратора по идентификатору.
func (r *AdminUserRepository) GetByID(ctx context.Context, id string) (*models.AdminUser, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AdminUserRepository) findOne(ctx context.Context, filter bson.M) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.col.FindOne(ctx, filter).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrAdminUserNotFound
		}
		return nil, fmt.Errorf("admin user repository: find %w", err)
	}
	return &user, nil
}
