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

// ContactRepository хранит заявки в коллекции contact_inquiries.
type ContactRepository struct {
	col *mongo.Collection
}

// NewContactRepository создаёт экземпляр репозитория.
func NewContactRepository(db *mongo.Database) *ContactRepository {
	return &ContactRepository{col: db.Collection(ContactInquiriesCollection)}
}

// Create сохраняет заявку.
func (r *ContactRepository) Create(ctx context.Context, inquiry *models.ContactInquiry) error {
	now := time.Now().UTC()
	if inquiry.ID == "" {
		inquiry.ID = models.NewID()
	}
	inquiry.CreatedAt = now
	inquiry.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, inquiry); err != nil {
		return fmt.Errorf("contact repository: insert %w", err)
	}
	return nil
}

// GetByID возвращает заявку по идентификатору.
func (r *ContactRepository) GetByID(ctx context.Context, id string) (*models.ContactInquiry, error) {
	var inquiry models.ContactInquiry
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&inquiry); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrContactInquiryNotFound
		}
		return nil, fmt.Errorf("contact repository: get by id %w", err)
	}
	return &inquiry, nil
}

// List возвращает заявки от новых к старым.
func (r *ContactRepository) List(ctx context.Context) ([]models.ContactInquiry, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("contact repository: list %w", err)
	}
	defer cur.Close(ctx)

	inquiries := make([]models.ContactInquiry, 0)
	if err := cur.All(ctx, &inquiries); err != nil {
		return nil, fmt.Errorf("contact repository: decode list %w", err)
	}
	return inquiries, nil
}

// Update меняет статус и/или заметки администратора.
func (r *ContactRepository) Update(ctx context.Context, id string, patch models.ContactPatch) (*models.ContactInquiry, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.AdminNotes != nil {
		set["admin_notes"] = *patch.AdminNotes
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var inquiry models.ContactInquiry
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&inquiry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrContactInquiryNotFound
		}
		return nil, fmt.Errorf("contact repository: update %w", err)
	}
	return &inquiry, nil
}
