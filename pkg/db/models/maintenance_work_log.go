package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaintenanceWorkLog records labor performed against an enhanced request.
type MaintenanceWorkLog struct {
	ID                   uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	MaintenanceRequestID uuid.UUID        `gorm:"column:maintenance_request_id;type:uuid;not null;index"`
	WorkerName           string           `gorm:"column:worker_name;not null"`
	WorkDate             time.Time        `gorm:"column:work_date;not null"`
	HoursWorked          decimal.Decimal  `gorm:"column:hours_worked;type:numeric(6,2);not null"`
	Cost                 *decimal.Decimal `gorm:"column:cost;type:numeric(10,2)"`
	WorkDescription      string           `gorm:"column:work_description;not null"`
	CreatedBy            *uuid.UUID       `gorm:"column:created_by;type:uuid"`
	CreatedAt            time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
