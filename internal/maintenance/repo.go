package maintenance

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// Repository handles basic maintenance request persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to basic request operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows basic request listings.
type ListFilter struct {
	UnitID     *uuid.UUID
	ResidentID *uuid.UUID
	Status     *enums.MaintenanceStatus
	Priority   *enums.MaintenancePriority
}

// Create persists a new request row.
func (r *Repository) Create(ctx context.Context, request *models.MaintenanceRequest) error {
	if request.ID == uuid.Nil {
		request.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(request).Error
}

// FindByID loads a request by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	var request models.MaintenanceRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns requests matching the filter, ordered by creation time.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.MaintenanceRequest, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.MaintenanceRequest{})
	if filter.UnitID != nil {
		q = q.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.ResidentID != nil {
		q = q.Where("resident_id = ?", *filter.ResidentID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		q = q.Where("priority = ?", *filter.Priority)
	}
	var rows []models.MaintenanceRequest
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided request.
func (r *Repository) Update(ctx context.Context, request *models.MaintenanceRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// Delete removes the request row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.MaintenanceRequest{}, "id = ?", id).Error
}

// CountByResident counts basic requests raised by a resident.
func (r *Repository) CountByResident(ctx context.Context, residentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MaintenanceRequest{}).Where("resident_id = ?", residentID).Count(&count).Error
	return count, err
}

// Stats aggregates basic request counts and total spend.
func (r *Repository) Stats(ctx context.Context) (*RequestStatsDTO, error) {
	stats := &RequestStatsDTO{
		ByStatus:   map[string]int64{},
		ByPriority: map[string]int64{},
		TotalCost:  decimal.Zero,
	}

	base := func() *gorm.DB { return r.db.WithContext(ctx).Model(&models.MaintenanceRequest{}) }

	if err := base().Count(&stats.Total).Error; err != nil {
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

	var byPriority []struct {
		Key   string
		Count int64
	}
	if err := base().Select("priority AS key, COUNT(*) AS count").Group("priority").Scan(&byPriority).Error; err != nil {
		return nil, err
	}
	for _, row := range byPriority {
		stats.ByPriority[row.Key] = row.Count
	}

	var total struct {
		Total decimal.Decimal
	}
	if err := base().Select("COALESCE(SUM(actual_cost), 0) AS total").Scan(&total).Error; err != nil {
		return nil, err
	}
	stats.TotalCost = total.Total

	return stats, nil
}
