package meetings

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// MeetingDTO exposes meeting data in API responses.
type MeetingDTO struct {
	ID          uuid.UUID           `json:"id"`
	PropertyID  *uuid.UUID          `json:"property_id,omitempty"`
	Title       string              `json:"title"`
	MeetingType *string             `json:"meeting_type,omitempty"`
	ScheduledAt time.Time           `json:"scheduled_at"`
	Location    *string             `json:"location,omitempty"`
	Agenda      *string             `json:"agenda,omitempty"`
	Minutes     *string             `json:"minutes,omitempty"`
	Status      enums.MeetingStatus `json:"status"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// FromModel maps the persisted meeting into a DTO.
func FromModel(m *models.Meeting) *MeetingDTO {
	if m == nil {
		return nil
	}
	return &MeetingDTO{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		Title:       m.Title,
		MeetingType: m.MeetingType,
		ScheduledAt: m.ScheduledAt,
		Location:    m.Location,
		Agenda:      m.Agenda,
		Minutes:     m.Minutes,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromModels(rows []models.Meeting) []MeetingDTO {
	out := make([]MeetingDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
