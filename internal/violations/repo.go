package violations

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// Repository handles violation persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to violation operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows violation listings.
type ListFilter struct {
	UnitID     *uuid.UUID
	ResidentID *uuid.UUID
	Status     *enums.ViolationStatus
	Severity   *enums.ViolationSeverity
}

// Create persists a new violation row.
func (r *Repository) Create(ctx context.Context, violation *models.Violation) error {
	if violation.ID == uuid.Nil {
		violation.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(violation).Error
}

// FindByID loads a violation by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Violation, error) {
	var violation models.Violation
	if err := r.db.WithContext(ctx).First(&violation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &violation, nil
}

// List returns violations matching the filter, ordered by creation time.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Violation, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Violation{})
	if filter.UnitID != nil {
		q = q.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.ResidentID != nil {
		q = q.Where("resident_id = ?", *filter.ResidentID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.Severity != nil {
		q = q.Where("severity = ?", *filter.Severity)
	}
	var rows []models.Violation
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided violation.
func (r *Repository) Update(ctx context.Context, violation *models.Violation) error {
	return r.db.WithContext(ctx).Save(violation).Error
}

// Delete removes the violation row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Violation{}, "id = ?", id).Error
}

// CountByResident counts violations filed against a resident.
func (r *Repository) CountByResident(ctx context.Context, residentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Violation{}).Where("resident_id = ?", residentID).Count(&count).Error
	return count, err
}

// Stats aggregates violation counts and the fine total.
func (r *Repository) Stats(ctx context.Context) (*ViolationStatsDTO, error) {
	stats := &ViolationStatsDTO{
		ByStatus:   map[string]int64{},
		BySeverity: map[string]int64{},
		TotalFines: decimal.Zero,
	}

	base := func() *gorm.DB { return r.db.WithContext(ctx).Model(&models.Violation{}) }

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

	var bySeverity []struct {
		Key   string
		Count int64
	}
	if err := base().Select("severity AS key, COUNT(*) AS count").Group("severity").Scan(&bySeverity).Error; err != nil {
		return nil, err
	}
	for _, row := range bySeverity {
		stats.BySeverity[row.Key] = row.Count
	}

	var total struct {
		Total decimal.Decimal
	}
	if err := base().Select("COALESCE(SUM(fine_amount), 0) AS total").Scan(&total).Error; err != nil {
		return nil, err
	}
	stats.TotalFines = total.Total

	return stats, nil
}
