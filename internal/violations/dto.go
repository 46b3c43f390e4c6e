package violations

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// ViolationDTO exposes violation data in API responses.
type ViolationDTO struct {
	ID           uuid.UUID               `json:"id"`
	UnitID       uuid.UUID               `json:"unit_id"`
	ResidentID   *uuid.UUID              `json:"resident_id,omitempty"`
	Description  string                  `json:"description"`
	Severity     enums.ViolationSeverity `json:"severity"`
	Status       enums.ViolationStatus   `json:"status"`
	FineAmount   decimal.Decimal         `json:"fine_amount"`
	ResolvedDate *time.Time              `json:"resolved_date,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at"`
}

// ViolationStatsDTO summarizes violation volume and fines.
type ViolationStatsDTO struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	BySeverity map[string]int64 `json:"by_severity"`
	TotalFines decimal.Decimal  `json:"total_fines"`
}

// FromModel maps the persisted violation into a DTO.
func FromModel(m *models.Violation) *ViolationDTO {
	if m == nil {
		return nil
	}
	return &ViolationDTO{
		ID:           m.ID,
		UnitID:       m.UnitID,
		ResidentID:   m.ResidentID,
		Description:  m.Description,
		Severity:     m.Severity,
		Status:       m.Status,
		FineAmount:   m.FineAmount,
		ResolvedDate: m.ResolvedDate,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromModels(rows []models.Violation) []ViolationDTO {
	out := make([]ViolationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
