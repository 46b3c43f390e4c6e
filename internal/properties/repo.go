package properties

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// Repository handles property persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to property operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows property listings.
type ListFilter struct {
	PropertyType *enums.PropertyType
}

// Create persists a new property row.
func (r *Repository) Create(ctx context.Context, property *models.Property) error {
	if property.ID == uuid.Nil {
		property.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(property).Error
}

// FindByID loads a property by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var property models.Property
	if err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// List returns properties matching the filter, ordered by creation time.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Property, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Property{})
	if filter.PropertyType != nil {
		q = q.Where("property_type = ?", *filter.PropertyType)
	}
	var rows []models.Property
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided property.
func (r *Repository) Update(ctx context.Context, property *models.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

// Delete removes the property row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Property{}, "id = ?", id).Error
}

// Exists reports whether a property with the given id is present.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Property{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
