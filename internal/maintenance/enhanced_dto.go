package maintenance

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
)

// EnhancedRequestDTO exposes the richer work ticket in API responses.
type EnhancedRequestDTO struct {
	ID            uuid.UUID                 `json:"id"`
	UnitID        uuid.UUID                 `json:"unit_id"`
	PropertyID    uuid.UUID                 `json:"property_id"`
	ResidentID    uuid.UUID                 `json:"resident_id"`
	ContractorID  *uuid.UUID                `json:"contractor_id,omitempty"`
	CreatedBy     uuid.UUID                 `json:"created_by"`
	Title         string                    `json:"title"`
	Description   string                    `json:"description"`
	Category      string                    `json:"category"`
	Priority      enums.MaintenancePriority `json:"priority"`
	Status        enums.MaintenanceStatus   `json:"status"`
	IsEmergency   bool                      `json:"is_emergency"`
	EstimatedCost *decimal.Decimal          `json:"estimated_cost,omitempty"`
	ScheduledDate *time.Time                `json:"scheduled_date,omitempty"`
	CompletedDate *time.Time                `json:"completed_date,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// WorkLogDTO exposes a labor entry in API responses.
type WorkLogDTO struct {
	ID                   uuid.UUID        `json:"id"`
	MaintenanceRequestID uuid.UUID        `json:"maintenance_request_id"`
	WorkerName           string           `json:"worker_name"`
	WorkDate             time.Time        `json:"work_date"`
	HoursWorked          decimal.Decimal  `json:"hours_worked"`
	Cost                 *decimal.Decimal `json:"cost,omitempty"`
	WorkDescription      string           `json:"work_description"`
	CreatedBy            *uuid.UUID       `json:"created_by,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

// EnhancedStatsDTO summarizes enhanced request volume and timing.
type EnhancedStatsDTO struct {
	Total                int64            `json:"total"`
	ByStatus             map[string]int64 `json:"by_status"`
	EmergencyCount       int64            `json:"emergency_count"`
	AverageEstimatedCost decimal.Decimal  `json:"average_estimated_cost"`
	AverageResolutionHrs float64          `json:"average_resolution_hours"`
}

// WorkLogStatsDTO summarizes labor logged against one request.
type WorkLogStatsDTO struct {
	MaintenanceRequestID uuid.UUID       `json:"maintenance_request_id"`
	Count                int64           `json:"count"`
	TotalHours           decimal.Decimal `json:"total_hours"`
	TotalCost            decimal.Decimal `json:"total_cost"`
	AverageHours         decimal.Decimal `json:"average_hours"`
}

// EnhancedFromModel maps the persisted enhanced request into a DTO.
func EnhancedFromModel(m *models.MaintenanceRequestEnhanced) *EnhancedRequestDTO {
	if m == nil {
		return nil
	}
	return &EnhancedRequestDTO{
		ID:            m.ID,
		UnitID:        m.UnitID,
		PropertyID:    m.PropertyID,
		ResidentID:    m.ResidentID,
		ContractorID:  m.ContractorID,
		CreatedBy:     m.CreatedBy,
		Title:         m.Title,
		Description:   m.Description,
		Category:      m.Category,
		Priority:      m.Priority,
		Status:        m.Status,
		IsEmergency:   m.IsEmergency,
		EstimatedCost: m.EstimatedCost,
		ScheduledDate: m.ScheduledDate,
		CompletedDate: m.CompletedDate,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func enhancedFromModels(rows []models.MaintenanceRequestEnhanced) []EnhancedRequestDTO {
	out := make([]EnhancedRequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *EnhancedFromModel(&rows[i]))
	}
	return out
}

// WorkLogFromModel maps the persisted work log into a DTO.
func WorkLogFromModel(m *models.MaintenanceWorkLog) *WorkLogDTO {
	if m == nil {
		return nil
	}
	return &WorkLogDTO{
		ID:                   m.ID,
		MaintenanceRequestID: m.MaintenanceRequestID,
		WorkerName:           m.WorkerName,
		WorkDate:             m.WorkDate,
		HoursWorked:          m.HoursWorked,
		Cost:                 m.Cost,
		WorkDescription:      m.WorkDescription,
		CreatedBy:            m.CreatedBy,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func workLogsFromModels(rows []models.MaintenanceWorkLog) []WorkLogDTO {
	out := make([]WorkLogDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *WorkLogFromModel(&rows[i]))
	}
	return out
}
