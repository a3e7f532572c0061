package models

import "time"

// DefaultAdminName используется, если при создании администратора имя не задано.
const DefaultAdminName = "Admin User"

// AdminUser описывает администратора сайта.
type AdminUser struct {
	ID           string    `db:"id" bson:"_id" json:"_id"`
	Email        string    `db:"email" bson:"email" json:"email"`
	PasswordHash string    `db:"password_hash" bson:"password" json:"-"`
	Name         string    `db:"name" bson:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" bson:"updatedAt" json:"updatedAt"`
}

// AdminUserPublic безопасная проекция администратора без пароля.
type AdminUserPublic struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Public возвращает проекцию для ответа клиенту.
func (u *AdminUser) Public() AdminUserPublic {
	return AdminUserPublic{ID: u.ID, Email: u.Email, Name: u.Name}
}
