package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// Payment records money collected from a resident against a unit.
type Payment struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ResidentID    uuid.UUID           `gorm:"column:resident_id;type:uuid;not null;index"`
	UnitID        uuid.UUID           `gorm:"column:unit_id;type:uuid;not null;index"`
	Amount        decimal.Decimal     `gorm:"column:amount;type:numeric(10,2);not null"`
	PaymentType   enums.PaymentType   `gorm:"column:payment_type;type:text;not null"`
	PaymentMethod enums.PaymentMethod `gorm:"column:payment_method;type:text;not null"`
	PaymentDate   time.Time           `gorm:"column:payment_date;not null"`
	DueDate       *time.Time          `gorm:"column:due_date"`
	Status        enums.PaymentStatus `gorm:"column:status;type:text;not null;default:'pending'"`
	Notes         *string             `gorm:"column:notes"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
