package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// Meeting represents a scheduled association gathering.
type Meeting struct {
	ID          uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	PropertyID  *uuid.UUID          `gorm:"column:property_id;type:uuid;index"`
	Title       string              `gorm:"column:title;not null"`
	MeetingType *string             `gorm:"column:meeting_type"`
	ScheduledAt time.Time           `gorm:"column:scheduled_at;not null"`
	Location    *string             `gorm:"column:location"`
	Agenda      *string             `gorm:"column:agenda"`
	Minutes     *string             `gorm:"column:minutes"`
	Status      enums.MeetingStatus `gorm:"column:status;type:text;not null;default:'scheduled'"`
	CreatedAt   time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
