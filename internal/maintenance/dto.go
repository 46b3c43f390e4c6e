package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// RequestDTO exposes basic maintenance request data in API responses.
type RequestDTO struct {
	ID          uuid.UUID                 `json:"id"`
	UnitID      uuid.UUID                 `json:"unit_id"`
	ResidentID  uuid.UUID                 `json:"resident_id"`
	Title       string                    `json:"title"`
	Description string                    `json:"description"`
	Category    *string                   `json:"category,omitempty"`
	Priority    enums.MaintenancePriority `json:"priority"`
	Status      enums.MaintenanceStatus   `json:"status"`
	AssignedTo  *string                   `json:"assigned_to,omitempty"`
	ActualCost  *decimal.Decimal          `json:"actual_cost,omitempty"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}

// RequestStatsDTO summarizes basic request volume and spend.
type RequestStatsDTO struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByPriority map[string]int64 `json:"by_priority"`
	TotalCost  decimal.Decimal  `json:"total_cost"`
}

// FromModel maps the persisted request into a DTO.
func FromModel(m *models.MaintenanceRequest) *RequestDTO {
	if m == nil {
		return nil
	}
	return &RequestDTO{
		ID:          m.ID,
		UnitID:      m.UnitID,
		ResidentID:  m.ResidentID,
		Title:       m.Title,
		Description: m.Description,
		Category:    m.Category,
		Priority:    m.Priority,
		Status:      m.Status,
		AssignedTo:  m.AssignedTo,
		ActualCost:  m.ActualCost,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromModels(rows []models.MaintenanceRequest) []RequestDTO {
	out := make([]RequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
