package properties

import (
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// PropertyDTO exposes property data in API responses.
type PropertyDTO struct {
	ID           uuid.UUID          `json:"id"`
	Name         string             `json:"name"`
	Address      string             `json:"address"`
	PropertyType enums.PropertyType `json:"property_type"`
	TotalUnits   int                `json:"total_units"`
	YearBuilt    *int               `json:"year_built,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// PropertyStatsDTO summarizes unit occupancy for one property.
type PropertyStatsDTO struct {
	PropertyID    uuid.UUID `json:"property_id"`
	TotalUnits    int64     `json:"total_units"`
	OccupiedUnits int64     `json:"occupied_units"`
	VacantUnits   int64     `json:"vacant_units"`
	OccupancyRate float64   `json:"occupancy_rate"`
}

// FromModel maps the persisted property into a DTO.
func FromModel(m *models.Property) *PropertyDTO {
	if m == nil {
		return nil
	}
	return &PropertyDTO{
		ID:           m.ID,
		Name:         m.Name,
		Address:      m.Address,
		PropertyType: m.PropertyType,
		TotalUnits:   m.TotalUnits,
		YearBuilt:    m.YearBuilt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromModels(rows []models.Property) []PropertyDTO {
	out := make([]PropertyDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
