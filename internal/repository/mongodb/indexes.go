package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Имена коллекций.
const (
	AdminUsersCollection       = "admin_users"
	PortfolioItemsCollection   = "portfolio_items"
	ContactInquiriesCollection = "contact_inquiries"
	MediaFilesCollection       = "media_files"
)

// EnsureIndexes создаёт индексы, необходимые для корректной работы репозиториев.
// Вызывается один раз при старте сервера.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	specs := map[string][]mongo.IndexModel{
		AdminUsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		MediaFilesCollection: {
			{Keys: bson.D{{Key: "filename", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		PortfolioItemsCollection: {
			{Keys: bson.D{{Key: "display_order", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		ContactInquiriesCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
	}

	for collection, models := range specs {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongodb: create indexes for %s: %w", collection, err)
		}
	}
	return nil
}
