package models

import (
	"time"

	"github.com/google/uuid"
)

// Document represents a filed association document.
type Document struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID *uuid.UUID `gorm:"column:property_id;type:uuid;index"`
	UnitID     *uuid.UUID `gorm:"column:unit_id;type:uuid;index"`
	Title      string     `gorm:"column:title;not null"`
	DocType    *string    `gorm:"column:doc_type"`
	FileURL    string     `gorm:"column:file_url;not null"`
	UploadedBy *uuid.UUID `gorm:"column:uploaded_by;type:uuid"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
