package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// AccountDTO exposes a financial account in API responses.
type AccountDTO struct {
	ID          uuid.UUID         `json:"id"`
	PropertyID  uuid.UUID         `json:"property_id"`
	Name        string            `json:"name"`
	AccountType enums.AccountType `json:"account_type"`
	Balance     decimal.Decimal   `json:"balance"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// FeeDTO exposes a management fee in API responses.
type FeeDTO struct {
	ID            uuid.UUID          `json:"id"`
	PropertyID    uuid.UUID          `json:"property_id"`
	Name          string             `json:"name"`
	Amount        decimal.Decimal    `json:"amount"`
	Frequency     enums.FeeFrequency `json:"frequency"`
	EffectiveDate time.Time          `json:"effective_date"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// AccountFromModel maps a persisted account into a DTO.
func AccountFromModel(m *models.FinancialAccount) *AccountDTO {
	if m == nil {
		return nil
	}
	return &AccountDTO{
		ID:          m.ID,
		PropertyID:  m.PropertyID,
		Name:        m.Name,
		AccountType: m.AccountType,
		Balance:     m.Balance,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FeeFromModel maps a persisted fee into a DTO.
func FeeFromModel(m *models.ManagementFee) *FeeDTO {
	if m == nil {
		return nil
	}
	return &FeeDTO{
		ID:            m.ID,
		PropertyID:    m.PropertyID,
		Name:          m.Name,
		Amount:        m.Amount,
		Frequency:     m.Frequency,
		EffectiveDate: m.EffectiveDate,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func accountsFromModels(rows []models.FinancialAccount) []AccountDTO {
	out := make([]AccountDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *AccountFromModel(&rows[i]))
	}
	return out
}

func feesFromModels(rows []models.ManagementFee) []FeeDTO {
	out := make([]FeeDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FeeFromModel(&rows[i]))
	}
	return out
}
