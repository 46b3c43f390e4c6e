package maintenance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// EnhancedRepository handles enhanced request and work log persistence.
type EnhancedRepository struct {
	db *gorm.DB
}

// NewEnhancedRepository binds a GORM DB to enhanced request operations.
func NewEnhancedRepository(db *gorm.DB) *EnhancedRepository {
	return &EnhancedRepository{db: db}
}

// EnhancedListFilter narrows enhanced request listings.
type EnhancedListFilter struct {
	UnitID       *uuid.UUID
	PropertyID   *uuid.UUID
	ResidentID   *uuid.UUID
	ContractorID *uuid.UUID
	Status       *enums.MaintenanceStatus
	Priority     *enums.MaintenancePriority
	IsEmergency  *bool
}

// Create persists a new enhanced request row.
func (r *EnhancedRepository) Create(ctx context.Context, request *models.MaintenanceRequestEnhanced) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(request).Error
}

// FindByID loads an enhanced request by its UUID.
func (r *EnhancedRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequestEnhanced, error) {
	var request models.MaintenanceRequestEnhanced
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns enhanced requests matching the filter, ordered by creation time.
func (r *EnhancedRepository) List(ctx context.Context, filter EnhancedListFilter, page pagination.Params) ([]models.MaintenanceRequestEnhanced, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.MaintenanceRequestEnhanced{})
	if filter.UnitID != nil {
		q = q.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.ResidentID != nil {
		q = q.Where("resident_id = ?", *filter.ResidentID)
	}
	if filter.ContractorID != nil {
		q = q.Where("contractor_id = ?", *filter.ContractorID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}
	if filter.IsEmergency != nil {
		q = q.Where("is_emergency = ?", *filter.IsEmergency)
	}
	var rows []models.MaintenanceRequestEnhanced
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided enhanced request.
func (r *EnhancedRepository) Update(ctx context.Context, request *models.MaintenanceRequestEnhanced) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// Delete removes the enhanced request row and its work logs together.
func (r *EnhancedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.MaintenanceWorkLog{}, "maintenance_request_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MaintenanceRequestEnhanced{}, "id = ?", id).Error
	})
}

// CountByResident counts enhanced requests filed by a resident.
func (r *EnhancedRepository) CountByResident(ctx context.Context, residentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MaintenanceRequestEnhanced{}).
		Where("resident_id = ?", residentID).
		Count(&count).Error
	return count, err
}

// CountByContractor counts enhanced requests assigned to a contractor.
func (r *EnhancedRepository) CountByContractor(ctx context.Context, contractorID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MaintenanceRequestEnhanced{}).
		Where("contractor_id = ?", contractorID).
		Count(&count).Error
	return count, err
}

// Stats aggregates enhanced request volume, spend, and resolution timing.
func (r *EnhancedRepository) Stats(ctx context.Context) (*EnhancedStatsDTO, error) {
	stats := &EnhancedStatsDTO{
		ByStatus:             map[string]int64{},
		AverageEstimatedCost: decimal.Zero,
	}

	base := func() *gorm.DB { return r.db.WithContext(ctx).Model(&models.MaintenanceRequestEnhanced{}) }

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_emergency = ?", true).Count(&stats.EmergencyCount).Error; err != nil {
		return nil, err
	}

	var byStatus []struct {
		Key   string
		Count int64
	}
	if err := base().Select("status AS key, COUNT(*) AS count").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[row.Key] = row.Count
	}

	var avgCost struct {
		Avg decimal.Decimal
	}
	if err := base().Where("estimated_cost IS NOT NULL").
		Select("COALESCE(AVG(estimated_cost), 0) AS avg").
		Scan(&avgCost).Error; err != nil {
		return nil, err
	}
	stats.AverageEstimatedCost = avgCost.Avg.Round(2)

	// resolution time averaged in Go: the epoch arithmetic differs per dialect
	var completed []models.MaintenanceRequestEnhanced
	if err := base().Where("status = ? AND completed_date IS NOT NULL", enums.MaintenanceStatusCompleted).
		Find(&completed).Error; err != nil {
		return nil, err
	}
	if len(completed) > 0 {
		var totalHours float64
		for _, row := range completed {
			totalHours += row.CompletedDate.Sub(row.CreatedAt).Hours()
		}
		stats.AverageResolutionHrs = totalHours / float64(len(completed))
	}

	return stats, nil
}

// CreateWorkLog persists a labor entry.
func (r *EnhancedRepository) CreateWorkLog(ctx context.Context, log *models.MaintenanceWorkLog) error {
	if log.ID == uuid.Nil {
		log.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(log).Error
}

// ListWorkLogs returns the labor entries for a request, oldest first.
func (r *EnhancedRepository) ListWorkLogs(ctx context.Context, requestID uuid.UUID, page pagination.Params) ([]models.MaintenanceWorkLog, error) {
	page = page.Normalize()
	var rows []models.MaintenanceWorkLog
	if err := r.db.WithContext(ctx).
		Where("maintenance_request_id = ?", requestID).
		Order("work_date ASC, id ASC").
		Offset(page.Offset).Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// WorkLogListFilter narrows cross-request work log listings.
type WorkLogListFilter struct {
	RequestID  *uuid.UUID
	WorkerName *string
	WorkDate   *time.Time
}

// FindWorkLogByID loads a labor entry by its UUID.
func (r *EnhancedRepository) FindWorkLogByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceWorkLog, error) {
	var log models.MaintenanceWorkLog
	if err := r.db.WithContext(ctx).First(&log, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &log, nil
}

// ListAllWorkLogs returns labor entries across requests, oldest work first.
func (r *EnhancedRepository) ListAllWorkLogs(ctx context.Context, filter WorkLogListFilter, page pagination.Params) ([]models.MaintenanceWorkLog, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.MaintenanceWorkLog{})
	if filter.RequestID != nil {
		q = q.Where("maintenance_request_id = ?", *filter.RequestID)
	}
	if filter.WorkerName != nil {
		q = q.Where("LOWER(worker_name) LIKE LOWER(?)", "%"+*filter.WorkerName+"%")
	}
	if filter.WorkDate != nil {
		q = q.Where("work_date = ?", *filter.WorkDate)
	}
	var rows []models.MaintenanceWorkLog
	if err := q.Order("work_date ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateWorkLog saves the provided labor entry.
func (r *EnhancedRepository) UpdateWorkLog(ctx context.Context, log *models.MaintenanceWorkLog) error {
	return r.db.WithContext(ctx).Save(log).Error
}

// DeleteWorkLog removes a single labor entry.
func (r *EnhancedRepository) DeleteWorkLog(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MaintenanceWorkLog{}, "id = ?", id).Error
}

// WorkLogStats aggregates the labor logged against one request.
func (r *EnhancedRepository) WorkLogStats(ctx context.Context, requestID uuid.UUID) (*WorkLogStatsDTO, error) {
	stats := &WorkLogStatsDTO{
		MaintenanceRequestID: requestID,
		TotalHours:           decimal.Zero,
		TotalCost:            decimal.Zero,
		AverageHours:         decimal.Zero,
	}

	var totals struct {
		Count int64
		Hours decimal.Decimal
		Cost  decimal.Decimal
	}
	if err := r.db.WithContext(ctx).Model(&models.MaintenanceWorkLog{}).
		Where("maintenance_request_id = ?", requestID).
		Select("COUNT(*) AS count, COALESCE(SUM(hours_worked), 0) AS hours, COALESCE(SUM(cost), 0) AS cost").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	stats.Count = totals.Count
	stats.TotalHours = totals.Hours
	stats.TotalCost = totals.Cost
	if totals.Count > 0 {
		stats.AverageHours = totals.Hours.Div(decimal.NewFromInt(totals.Count)).Round(2)
	}
	return stats, nil
}
