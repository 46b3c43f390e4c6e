package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Contractor represents an outside vendor available for maintenance work.
type Contractor struct {
	ID              uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Name            string          `gorm:"column:name;not null"`
	Company         *string         `gorm:"column:company"`
	Email           *string         `gorm:"column:email"`
	Phone           *string         `gorm:"column:phone"`
	Specialties     pq.StringArray  `gorm:"column:specialties;type:text[];not null;default:ARRAY[]::text[]"`
	Rating          decimal.Decimal `gorm:"column:rating;type:numeric(2,1);not null;default:0"`
	LicenseNumber   *string         `gorm:"column:license_number"`
	InsuranceExpiry *time.Time      `gorm:"column:insurance_expiry"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
