package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Unit represents a single dwelling inside a property.
type Unit struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID uuid.UUID       `gorm:"column:property_id;type:uuid;not null;index;uniqueIndex:uniq_units_property_number"`
	UnitNumber string          `gorm:"column:unit_number;not null;uniqueIndex:uniq_units_property_number"`
	UnitType   string          `gorm:"column:unit_type;not null"`
	SquareFeet *int            `gorm:"column:square_feet"`
	Bedrooms   *int            `gorm:"column:bedrooms"`
	Bathrooms  decimal.Decimal `gorm:"column:bathrooms;type:numeric(3,1);not null;default:0"`
	MonthlyFee decimal.Decimal `gorm:"column:monthly_fee;type:numeric(10,2);not null;default:0"`
	IsOccupied bool            `gorm:"column:is_occupied;not null;default:false"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
