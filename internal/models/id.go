package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// NewID генерирует идентификатор записи в формате ObjectID (24 hex-символа).
// Один и тот же формат используется и в MongoDB, и в PostgreSQL.
func NewID() string {
	return primitive.NewObjectID().Hex()
}

// IsValidID проверяет, что строка является корректным ObjectID.
func IsValidID(id string) bool {
	if len(id) != 24 {
		return false
	}
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
