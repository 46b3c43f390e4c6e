package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// Property represents a managed community property.
type Property struct {
	ID           uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string             `gorm:"column:name;not null"`
	Address      string             `gorm:"column:address;not null"`
	PropertyType enums.PropertyType `gorm:"column:property_type;type:text;not null"`
	TotalUnits   int                `gorm:"column:total_units;not null;default:0"`
	YearBuilt    *int               `gorm:"column:year_built"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
