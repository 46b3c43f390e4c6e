package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// ManagementFee defines a recurring charge levied on a property.
type ManagementFee struct {
	ID            uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID    uuid.UUID          `gorm:"column:property_id;type:uuid;not null;index"`
	Name          string             `gorm:"column:name;not null"`
	Amount        decimal.Decimal    `gorm:"column:amount;type:numeric(10,2);not null"`
	Frequency     enums.FeeFrequency `gorm:"column:frequency;type:text;not null"`
	EffectiveDate time.Time          `gorm:"column:effective_date;not null"`
	CreatedAt     time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
