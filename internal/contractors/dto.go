package contractors

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
)

// ContractorDTO exposes contractor data in API responses.
type ContractorDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Company         *string         `json:"company,omitempty"`
	Email           *string         `json:"email,omitempty"`
	Phone           *string         `json:"phone,omitempty"`
	Specialties     []string        `json:"specialties"`
	Rating          decimal.Decimal `json:"rating"`
	LicenseNumber   *string         `json:"license_number,omitempty"`
	InsuranceExpiry *time.Time      `json:"insurance_expiry,omitempty"`
	IsActive        bool            `json:"is_active"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ContractorStatsDTO summarizes the contractor roster.
type ContractorStatsDTO struct {
	Total         int64           `json:"total"`
	Active        int64           `json:"active"`
	AverageRating decimal.Decimal `json:"average_rating"`
	HighRated     int64           `json:"high_rated"`
}

// FromModel maps the persisted contractor into a DTO.
func FromModel(m *models.Contractor) *ContractorDTO {
	if m == nil {
		return nil
	}
	specialties := make([]string, len(m.Specialties))
	copy(specialties, m.Specialties)
	return &ContractorDTO{
		ID:              m.ID,
		Name:            m.Name,
		Company:         m.Company,
		Email:           m.Email,
		Phone:           m.Phone,
		Specialties:     specialties,
		Rating:          m.Rating,
		LicenseNumber:   m.LicenseNumber,
		InsuranceExpiry: m.InsuranceExpiry,
		IsActive:        m.IsActive,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromModels(rows []models.Contractor) []ContractorDTO {
	out := make([]ContractorDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
