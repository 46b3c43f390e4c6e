package payments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// PaymentDTO exposes payment data in API responses.
type PaymentDTO struct {
	ID            uuid.UUID           `json:"id"`
	ResidentID    uuid.UUID           `json:"resident_id"`
	UnitID        uuid.UUID           `json:"unit_id"`
	Amount        decimal.Decimal     `json:"amount"`
	PaymentType   enums.PaymentType   `json:"payment_type"`
	PaymentMethod enums.PaymentMethod `json:"payment_method"`
	PaymentDate   time.Time           `json:"payment_date"`
	DueDate       *time.Time          `json:"due_date,omitempty"`
	Status        enums.PaymentStatus `json:"status"`
	Notes         *string             `json:"notes,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// PaymentStatsDTO summarizes collected payments, optionally over a date range.
type PaymentStatsDTO struct {
	Count         int64            `json:"count"`
	TotalAmount   decimal.Decimal  `json:"total_amount"`
	AverageAmount decimal.Decimal  `json:"average_amount"`
	ByStatus      map[string]int64 `json:"by_status"`
	ByType        map[string]int64 `json:"by_type"`
}

// FromModel maps the persisted payment into a DTO.
func FromModel(m *models.Payment) *PaymentDTO {
	if m == nil {
		return nil
	}
	return &PaymentDTO{
		ID:            m.ID,
		ResidentID:    m.ResidentID,
		UnitID:        m.UnitID,
		Amount:        m.Amount,
		PaymentType:   m.PaymentType,
		PaymentMethod: m.PaymentMethod,
		PaymentDate:   m.PaymentDate,
		DueDate:       m.DueDate,
		Status:        m.Status,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func fromModels(rows []models.Payment) []PaymentDTO {
	out := make([]PaymentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out
}
