package residents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// Repository handles basic resident persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to resident operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows basic resident listings.
type ListFilter struct {
	UnitID       *uuid.UUID
	ResidentType *enums.ResidentType
}

// Create persists a new resident row.
func (r *Repository) Create(ctx context.Context, resident *models.Resident) error {
	if resident.ID == uuid.Nil {
		resident.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(resident).Error
}

// FindByID loads a resident by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Resident, error) {
	var resident models.Resident
	if err := r.db.WithContext(ctx).First(&resident, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resident, nil
}

// List returns residents matching the filter, ordered by creation time.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Resident, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Resident{})
	if filter.UnitID != nil {
		q = q.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.ResidentType != nil {
		q = q.Where("resident_type = ?", *filter.ResidentType)
	}
	var rows []models.Resident
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided resident.
func (r *Repository) Update(ctx context.Context, resident *models.Resident) error {
	return r.db.WithContext(ctx).Save(resident).Error
}

// Delete removes the resident row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Resident{}, "id = ?", id).Error
}

// Exists reports whether a resident with the given id is present.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Resident{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByUnit counts residents attached to a unit.
func (r *Repository) CountByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Resident{}).Where("unit_id = ?", unitID).Count(&count).Error
	return count, err
}
