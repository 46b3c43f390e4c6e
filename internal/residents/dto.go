package residents

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// ResidentDTO exposes basic resident data in API responses.
type ResidentDTO struct {
	ID                    uuid.UUID          `json:"id"`
	UnitID                uuid.UUID          `json:"unit_id"`
	FirstName             string             `json:"first_name"`
	LastName              string             `json:"last_name"`
	Email                 *string            `json:"email,omitempty"`
	Phone                 *string            `json:"phone,omitempty"`
	ResidentType          enums.ResidentType `json:"resident_type"`
	MoveInDate            time.Time          `json:"move_in_date"`
	MoveOutDate           *time.Time         `json:"move_out_date,omitempty"`
	EmergencyContactName  *string            `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string            `json:"emergency_contact_phone,omitempty"`
	CreatedAt             time.Time          `json:"created_at"`
	UpdatedAt             time.Time          `json:"updated_at"`
}

// ResidentStatsDTO summarizes activity for one basic resident.
type ResidentStatsDTO struct {
	ResidentID          uuid.UUID `json:"resident_id"`
	PaymentCount        int64     `json:"payment_count"`
	ViolationCount      int64     `json:"violation_count"`
	MaintenanceCount    int64     `json:"maintenance_count"`
	HasEmergencyContact bool      `json:"has_emergency_contact"`
}

// FromModel maps the persisted resident into a DTO.
func FromModel(m *models.Resident) *ResidentDTO {
	if m == nil {
		return nil
	}
	return &ResidentDTO{
		ID:                    m.ID,
		UnitID:                m.UnitID,
		FirstName:             m.FirstName,
		LastName:              m.LastName,
		Email:                 m.Email,
		Phone:                 m.Phone,
		ResidentType:          m.ResidentType,
		MoveInDate:            m.MoveInDate,
		MoveOutDate:           m.MoveOutDate,
		EmergencyContactName:  m.EmergencyContactName,
		EmergencyContactPhone: m.EmergencyContactPhone,
		CreatedAt:             m.CreatedAt,
		UpdatedAt:             m.UpdatedAt,
	}
}

func fromModels(rows []models.Resident) []ResidentDTO {
	out := make([]ResidentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
