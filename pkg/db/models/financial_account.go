package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// FinancialAccount tracks one of the association's bank accounts.
type FinancialAccount struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID  uuid.UUID         `gorm:"column:property_id;type:uuid;not null;index"`
	Name        string            `gorm:"column:name;not null"`
	AccountType enums.AccountType `gorm:"column:account_type;type:text;not null"`
	Balance     decimal.Decimal   `gorm:"column:balance;type:numeric(12,2);not null;default:0"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
