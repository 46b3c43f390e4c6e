package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// MaintenanceRequest is the basic work ticket raised against a unit.
type MaintenanceRequest struct {
	ID          uuid.UUID                 `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UnitID      uuid.UUID                 `gorm:"column:unit_id;type:uuid;not null;index"`
	ResidentID  uuid.UUID                 `gorm:"column:resident_id;type:uuid;not null;index"`
	Title       string                    `gorm:"column:title;not null"`
	Description string                    `gorm:"column:description;not null"`
	Category    *string                   `gorm:"column:category"`
	Priority    enums.MaintenancePriority `gorm:"column:priority;type:text;not null;default:'medium'"`
	Status      enums.MaintenanceStatus   `gorm:"column:status;type:text;not null;default:'open'"`
	AssignedTo  *string                   `gorm:"column:assigned_to"`
	ActualCost  *decimal.Decimal          `gorm:"column:actual_cost;type:numeric(10,2)"`
	CreatedAt   time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}
