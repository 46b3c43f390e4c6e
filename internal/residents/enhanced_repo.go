package residents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// EnhancedRepository handles enhanced resident persistence.
type EnhancedRepository struct {
	db *gorm.DB
}

// NewEnhancedRepository binds a GORM DB to enhanced resident operations.
func NewEnhancedRepository(db *gorm.DB) *EnhancedRepository {
	return &EnhancedRepository{db: db}
}

// EnhancedListFilter narrows enhanced resident listings.
type EnhancedListFilter struct {
	UnitID       *uuid.UUID
	PropertyID   *uuid.UUID
	UserID       *uuid.UUID
	IsActive     *bool
	ResidentType *enums.OccupancyType
}

// Create persists a new enhanced resident row.
func (r *EnhancedRepository) Create(ctx context.Context, resident *models.ResidentEnhanced) error {
	if resident.ID == uuid.Nil {
		resident.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(resident).Error
}

// FindByID loads an enhanced resident by its UUID.
func (r *EnhancedRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.ResidentEnhanced, error) {
	var resident models.ResidentEnhanced
	if err := r.db.WithContext(ctx).First(&resident, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resident, nil
}

// List returns enhanced residents matching the filter, ordered by creation time.
func (r *EnhancedRepository) List(ctx context.Context, filter EnhancedListFilter, page pagination.Params) ([]models.ResidentEnhanced, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.ResidentEnhanced{})
	if filter.UnitID != nil {
		q = q.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	if filter.ResidentType != nil {
		q = q.Where("resident_type = ?", *filter.ResidentType)
	}
	var rows []models.ResidentEnhanced
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided enhanced resident.
func (r *EnhancedRepository) Update(ctx context.Context, resident *models.ResidentEnhanced) error {
	return r.db.WithContext(ctx).Save(resident).Error
}

// Delete removes the enhanced resident row.
func (r *EnhancedRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ResidentEnhanced{}, "id = ?", id).Error
}

// Exists reports whether an enhanced resident with the given id is present.
func (r *EnhancedRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ResidentEnhanced{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByUnit counts enhanced residents attached to a unit.
func (r *EnhancedRepository) CountByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ResidentEnhanced{}).Where("unit_id = ?", unitID).Count(&count).Error
	return count, err
}

// CountByUser counts enhanced residents linked to a user account.
func (r *EnhancedRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ResidentEnhanced{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// SetPrimary promotes one resident to primary for its unit. The demotion of
// everyone else sharing the unit and the promotion happen in one transaction
// so the unit never holds two primaries.
func (r *EnhancedRepository) SetPrimary(ctx context.Context, unitID, residentID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.ResidentEnhanced{}).
			Where("unit_id = ? AND is_primary = ?", unitID, true).
			Update("is_primary", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.ResidentEnhanced{}).
			Where("id = ?", residentID).
			Update("is_primary", true).Error
	})
}

type groupCount struct {
	Key   string
	Count int64
}

// StatsSummary aggregates population counts across all enhanced residents.
func (r *EnhancedRepository) StatsSummary(ctx context.Context) (*EnhancedStatsDTO, error) {
	stats := &EnhancedStatsDTO{
		ByResidentType: map[string]int64{},
		ByRole:         map[string]int64{},
	}

	base := func() *gorm.DB { return r.db.WithContext(ctx).Model(&models.ResidentEnhanced{}) }

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_primary = ?", true).Count(&stats.Primary).Error; err != nil {
		return nil, err
	}

	var byType []groupCount
	if err := base().Select("resident_type AS key, COUNT(*) AS count").Group("resident_type").Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, row := range byType {
		stats.ByResidentType[row.Key] = row.Count
	}

	var byRole []groupCount
	if err := base().Select("role AS key, COUNT(*) AS count").Group("role").Scan(&byRole).Error; err != nil {
		return nil, err
	}
	for _, row := range byRole {
		stats.ByRole[row.Key] = row.Count
	}

	return stats, nil
}
