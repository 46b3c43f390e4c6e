package units

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
)

// UnitDTO exposes unit data in API responses.
type UnitDTO struct {
	ID         uuid.UUID       `json:"id"`
	PropertyID uuid.UUID       `json:"property_id"`
	UnitNumber string          `json:"unit_number"`
	UnitType   string          `json:"unit_type"`
	SquareFeet *int            `json:"square_feet,omitempty"`
	Bedrooms   *int            `json:"bedrooms,omitempty"`
	Bathrooms  decimal.Decimal `json:"bathrooms"`
	MonthlyFee decimal.Decimal `json:"monthly_fee"`
	IsOccupied bool            `json:"is_occupied"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// FromModel maps the persisted unit into a DTO.
func FromModel(m *models.Unit) *UnitDTO {
	if m == nil {
		return nil
	}
	return &UnitDTO{
		ID:         m.ID,
		PropertyID: m.PropertyID,
		UnitNumber: m.UnitNumber,
		UnitType:   m.UnitType,
		SquareFeet: m.SquareFeet,
		Bedrooms:   m.Bedrooms,
		Bathrooms:  m.Bathrooms,
		MonthlyFee: m.MonthlyFee,
		IsOccupied: m.IsOccupied,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func fromModels(rows []models.Unit) []UnitDTO {
	out := make([]UnitDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
