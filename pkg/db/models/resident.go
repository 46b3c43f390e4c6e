package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// Resident is the basic occupant record tied to a unit.
type Resident struct {
	ID                    uuid.UUID          `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UnitID                uuid.UUID          `gorm:"column:unit_id;type:uuid;not null;index"`
	FirstName             string             `gorm:"column:first_name;not null"`
	LastName              string             `gorm:"column:last_name;not null"`
	Email                 *string            `gorm:"column:email"`
	Phone                 *string            `gorm:"column:phone"`
	ResidentType          enums.ResidentType `gorm:"column:resident_type;type:text;not null"`
	MoveInDate            time.Time          `gorm:"column:move_in_date;not null"`
	MoveOutDate           *time.Time         `gorm:"column:move_out_date"`
	EmergencyContactName  *string            `gorm:"column:emergency_contact_name"`
	EmergencyContactPhone *string            `gorm:"column:emergency_contact_phone"`
	CreatedAt             time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
