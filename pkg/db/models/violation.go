package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// Violation records a rules infraction against a unit.
type Violation struct {
	ID           uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UnitID       uuid.UUID               `gorm:"column:unit_id;type:uuid;not null;index"`
	ResidentID   *uuid.UUID              `gorm:"column:resident_id;type:uuid;index"`
	Description  string                  `gorm:"column:description;not null"`
	Severity     enums.ViolationSeverity `gorm:"column:severity;type:text;not null"`
	Status       enums.ViolationStatus   `gorm:"column:status;type:text;not null;default:'open'"`
	FineAmount   decimal.Decimal         `gorm:"column:fine_amount;type:numeric(10,2);not null;default:0"`
	ResolvedDate *time.Time              `gorm:"column:resolved_date"`
	CreatedAt    time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
