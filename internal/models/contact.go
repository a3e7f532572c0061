package models

import "time"

// ContactInquiry описывает заявку, отправленную через форму обратной связи.
type ContactInquiry struct {
	ID         string    `db:"id" bson:"_id" json:"_id"`
	Name       string    `db:"name" bson:"name" json:"name"`
	Email      string    `db:"email" bson:"email" json:"email"`
	Subject    string    `db:"subject" bson:"subject" json:"subject"`
	Message    string    `db:"message" bson:"message" json:"message"`
	Status     string    `db:"status" bson:"status" json:"status"`
	AdminNotes string    `db:"admin_notes" bson:"admin_notes" json:"admin_notes"`
	CreatedAt  time.Time `db:"created_at" bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time `db:"updated_at" bson:"updatedAt" json:"updatedAt"`
}

// ContactPatch содержит изменяемые администратором поля заявки.
type ContactPatch struct {
	Status     *string
	AdminNotes *string
}

// IsEmpty сообщает, что патч ничего не меняет.
func (p ContactPatch) IsEmpty() bool {
	return p.Status == nil && p.AdminNotes == nil
}
