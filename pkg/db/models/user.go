package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// User represents the canonical identity entity.
type User struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email         string         `gorm:"column:email;not null;uniqueIndex"`
	FirstName     string         `gorm:"column:first_name;not null"`
	LastName      string         `gorm:"column:last_name;not null"`
	Phone         *string        `gorm:"column:phone"`
	Role          enums.UserRole `gorm:"column:role;type:text;not null;default:'resident'"`
	Permissions   pq.StringArray `gorm:"column:permissions;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true"`
	EmailVerified bool           `gorm:"column:email_verified;not null;default:false"`
	LastLoginAt   *time.Time     `gorm:"column:last_login_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
