package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// PortfolioMetadata содержит дополнительные сведения о ролике.
type PortfolioMetadata struct {
	Duration   string   `bson:"duration,omitempty" json:"duration,omitempty"`
	Resolution string   `bson:"resolution,omitempty" json:"resolution,omitempty"`
	Tags       []string `bson:"tags,omitempty" json:"tags,omitempty"`
	FileSize   *int64   `bson:"file_size,omitempty" json:"file_size,omitempty"`
}

// Value сериализует метаданные в JSONB.
func (m PortfolioMetadata) Value() (driver.Value, error) {
	return json.Marshal(m)
}

// Scan читает метаданные из JSONB.
func (m *PortfolioMetadata) Scan(src interface{}) error {
	return scanJSON(src, m)
}

// PortfolioItem описывает работу в портфолио студии.
type PortfolioItem struct {
	ID           string             `db:"id" bson:"_id" json:"_id"`
	Title        string             `db:"title" bson:"title" json:"title"`
	Category     string             `db:"category" bson:"category" json:"category"`
	Client       string             `db:"client" bson:"client" json:"client"`
	Description  string             `db:"description" bson:"description" json:"description"`
	ThumbnailURL string             `db:"thumbnail_url" bson:"thumbnail_url" json:"thumbnail_url"`
	VideoURL     string             `db:"video_url" bson:"video_url" json:"video_url"`
	Featured     bool               `db:"featured" bson:"featured" json:"featured"`
	DisplayOrder int                `db:"display_order" bson:"display_order" json:"display_order"`
	Metadata     *PortfolioMetadata `db:"metadata" bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt    time.Time          `db:"created_at" bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `db:"updated_at" bson:"updatedAt" json:"updatedAt"`
}

// PortfolioPatch описывает частичное обновление работы.
// nil означает, что поле не передавалось и остаётся без изменений.
type PortfolioPatch struct {
	Title        *string
	Category     *string
	Client       *string
	Description  *string
	ThumbnailURL *string
	VideoURL     *string
	Featured     *bool
	DisplayOrder *int
	Metadata     *PortfolioMetadata
}

// IsEmpty сообщает, что патч ничего не меняет.
func (p PortfolioPatch) IsEmpty() bool {
	return p.Title == nil && p.Category == nil && p.Client == nil && p.Description == nil &&
		p.ThumbnailURL == nil && p.VideoURL == nil && p.Featured == nil &&
		p.DisplayOrder == nil && p.Metadata == nil
}

// Apply применяет патч к записи в памяти.
func (p PortfolioPatch) Apply(item *PortfolioItem) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Client != nil {
		item.Client = *p.Client
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.ThumbnailURL != nil {
		item.ThumbnailURL = *p.ThumbnailURL
	}
	if p.VideoURL != nil {
		item.VideoURL = *p.VideoURL
	}
	if p.Featured != nil {
		item.Featured = *p.Featured
	}
	if p.DisplayOrder != nil {
		item.DisplayOrder = *p.DisplayOrder
	}
	if p.Metadata != nil {
		item.Metadata = p.Metadata
	}
}

func scanJSON(src interface{}, dest interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("models: неподдерживаемый тип для JSON колонки")
	}
}
