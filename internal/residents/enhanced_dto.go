package residents

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/types"
)

// EnhancedResidentDTO exposes the richer resident record in API responses.
type EnhancedResidentDTO struct {
	ID               uuid.UUID               `json:"id"`
	UserID           *uuid.UUID              `json:"user_id,omitempty"`
	UnitID           uuid.UUID               `json:"unit_id"`
	PropertyID       uuid.UUID               `json:"property_id"`
	FirstName        string                  `json:"first_name"`
	LastName         string                  `json:"last_name"`
	Email            *string                 `json:"email,omitempty"`
	Phone            *string                 `json:"phone,omitempty"`
	ResidentType     enums.OccupancyType     `json:"resident_type"`
	Role             enums.UserRole          `json:"role"`
	IsActive         bool                    `json:"is_active"`
	IsPrimary        bool                    `json:"is_primary"`
	MoveInDate       time.Time               `json:"move_in_date"`
	MoveOutDate      *time.Time              `json:"move_out_date,omitempty"`
	EmergencyContact *types.EmergencyContact `json:"emergency_contact,omitempty"`
	VehicleInfo      types.VehicleList       `json:"vehicle_info"`
	PetInfo          types.PetList           `json:"pet_info"`
	CreatedAt        time.Time               `json:"created_at"`
	UpdatedAt        time.Time               `json:"updated_at"`
}

// EnhancedStatsDTO summarizes the enhanced resident population.
type EnhancedStatsDTO struct {
	Total          int64            `json:"total"`
	Active         int64            `json:"active"`
	Primary        int64            `json:"primary"`
	ByResidentType map[string]int64 `json:"by_resident_type"`
	ByRole         map[string]int64 `json:"by_role"`
}

// EnhancedFromModel maps the persisted enhanced resident into a DTO.
func EnhancedFromModel(m *models.ResidentEnhanced) *EnhancedResidentDTO {
	if m == nil {
		return nil
	}
	dto := &EnhancedResidentDTO{
		ID:           m.ID,
		UserID:       m.UserID,
		UnitID:       m.UnitID,
		PropertyID:   m.PropertyID,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		Email:        m.Email,
		Phone:        m.Phone,
		ResidentType: m.ResidentType,
		Role:         m.Role,
		IsActive:     m.IsActive,
		IsPrimary:    m.IsPrimary,
		MoveInDate:   m.MoveInDate,
		MoveOutDate:  m.MoveOutDate,
		VehicleInfo:  m.VehicleInfo,
		PetInfo:      m.PetInfo,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.EmergencyContact != nil {
		cpy := *m.EmergencyContact
		dto.EmergencyContact = &cpy
	}
	if dto.VehicleInfo == nil {
		dto.VehicleInfo = types.VehicleList{}
	}
	if dto.PetInfo == nil {
		dto.PetInfo = types.PetList{}
	}
	return dto
}

func enhancedFromModels(rows []models.ResidentEnhanced) []EnhancedResidentDTO {
	out := make([]EnhancedResidentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *EnhancedFromModel(&rows[i]))
	}
	return out
}
