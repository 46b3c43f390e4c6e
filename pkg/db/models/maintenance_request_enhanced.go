package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// MaintenanceRequestEnhanced extends the work ticket with contractor
// assignment, scheduling, and an owned sequence of work logs.
type MaintenanceRequestEnhanced struct {
	ID            uuid.UUID                 `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UnitID        uuid.UUID                 `gorm:"column:unit_id;type:uuid;not null;index"`
	PropertyID    uuid.UUID                 `gorm:"column:property_id;type:uuid;not null;index"`
	ResidentID    uuid.UUID                 `gorm:"column:resident_id;type:uuid;not null;index"`
	ContractorID  *uuid.UUID                `gorm:"column:contractor_id;type:uuid;index"`
	CreatedBy     uuid.UUID                 `gorm:"column:created_by;type:uuid;not null"`
	Title         string                    `gorm:"column:title;not null"`
	Description   string                    `gorm:"column:description;not null"`
	Category      string                    `gorm:"column:category;not null"`
	Priority      enums.MaintenancePriority `gorm:"column:priority;type:text;not null;default:'medium'"`
	Status        enums.MaintenanceStatus   `gorm:"column:status;type:text;not null;default:'open'"`
	IsEmergency   bool                      `gorm:"column:is_emergency;not null;default:false"`
	EstimatedCost *decimal.Decimal          `gorm:"column:estimated_cost;type:numeric(10,2)"`
	ScheduledDate *time.Time                `gorm:"column:scheduled_date"`
	CompletedDate *time.Time                `gorm:"column:completed_date"`
	WorkLogs      []MaintenanceWorkLog      `gorm:"foreignKey:MaintenanceRequestID"`
	CreatedAt     time.Time                 `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                 `gorm:"column:updated_at;autoUpdateTime"`
}

func (MaintenanceRequestEnhanced) TableName() string { return "maintenance_requests_enhanced" }
