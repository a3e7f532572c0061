package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// MediaDimensions хранит размеры изображения в пикселях.
type MediaDimensions struct {
	Width  int `bson:"width" json:"width"`
	Height int `bson:"height" json:"height"`
}

// Value сериализует размеры в JSONB.
func (d MediaDimensions) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan читает размеры из JSONB.
func (d *MediaDimensions) Scan(src interface{}) error {
	return scanJSON(src, d)
}

// MediaFile описывает загруженный файл.
type MediaFile struct {
	ID           string           `db:"id" bson:"_id" json:"_id"`
	Filename     string           `db:"filename" bson:"filename" json:"filename"`
	OriginalName string           `db:"original_name" bson:"originalName" json:"originalName"`
	URL          string           `db:"url" bson:"url" json:"url"`
	Type         string           `db:"type" bson:"type" json:"type"`
	Size         int64            `db:"size" bson:"size" json:"size"`
	MimeType     string           `db:"mime_type" bson:"mimeType" json:"mimeType"`
	Dimensions   *MediaDimensions `db:"dimensions" bson:"dimensions,omitempty" json:"dimensions,omitempty"`
	UploadedBy   string           `db:"uploaded_by" bson:"uploadedBy" json:"uploadedBy"`
	CreatedAt    time.Time        `db:"created_at" bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time        `db:"updated_at" bson:"updatedAt" json:"updatedAt"`
}
