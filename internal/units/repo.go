package units

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// Repository handles unit persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to unit operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows unit listings.
type ListFilter struct {
	PropertyID *uuid.UUID
	IsOccupied *bool
	UnitType   *string
}

// Create persists a new unit row.
func (r *Repository) Create(ctx context.Context, unit *models.Unit) error {
	if unit.ID == uuid.Nil {
		unit.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(unit).Error
}

// FindByID loads a unit by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	var unit models.Unit
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

// List returns units matching the filter, ordered by creation time.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Unit, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Unit{})
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.IsOccupied != nil {
		q = q.Where("is_occupied = ?", *filter.IsOccupied)
	}
	if filter.UnitType != nil {
		q = q.Where("unit_type = ?", *filter.UnitType)
	}
	var rows []models.Unit
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided unit.
func (r *Repository) Update(ctx context.Context, unit *models.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// Delete removes the unit row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Unit{}, "id = ?", id).Error
}

// Exists reports whether a unit with the given id is present.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Unit{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsNumber reports whether the property already has the unit number.
func (r *Repository) ExistsNumber(ctx context.Context, propertyID uuid.UUID, unitNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Unit{}).
		Where("property_id = ? AND unit_number = ?", propertyID, unitNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByProperty counts all units under a property.
func (r *Repository) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Unit{}).Where("property_id = ?", propertyID).Count(&count).Error
	return count, err
}

// CountOccupiedByProperty counts the occupied units under a property.
func (r *Repository) CountOccupiedByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Unit{}).
		Where("property_id = ? AND is_occupied = ?", propertyID, true).
		Count(&count).Error
	return count, err
}
