package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/types"
)

// ResidentEnhanced carries the richer occupant record: structured
// emergency contact plus vehicle and pet registries as embedded values.
type ResidentEnhanced struct {
	ID               uuid.UUID               `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID           *uuid.UUID              `gorm:"column:user_id;type:uuid;index"`
	UnitID           uuid.UUID               `gorm:"column:unit_id;type:uuid;not null;index"`
	PropertyID       uuid.UUID               `gorm:"column:property_id;type:uuid;not null;index"`
	FirstName        string                  `gorm:"column:first_name;not null"`
	LastName         string                  `gorm:"column:last_name;not null"`
	Email            *string                 `gorm:"column:email"`
	Phone            *string                 `gorm:"column:phone"`
	ResidentType     enums.OccupancyType     `gorm:"column:resident_type;type:text;not null"`
	Role             enums.UserRole          `gorm:"column:role;type:text;not null;default:'resident'"`
	IsActive         bool                    `gorm:"column:is_active;not null;default:true"`
	IsPrimary        bool                    `gorm:"column:is_primary;not null;default:false"`
	MoveInDate       time.Time               `gorm:"column:move_in_date;not null"`
	MoveOutDate      *time.Time              `gorm:"column:move_out_date"`
	EmergencyContact *types.EmergencyContact `gorm:"column:emergency_contact;type:jsonb;serializer:json"`
	VehicleInfo      types.VehicleList       `gorm:"column:vehicle_info;type:jsonb;serializer:json"`
	PetInfo          types.PetList           `gorm:"column:pet_info;type:jsonb;serializer:json"`
	CreatedAt        time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}

func (ResidentEnhanced) TableName() string { return "residents_enhanced" }
