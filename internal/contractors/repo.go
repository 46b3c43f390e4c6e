package contractors

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// Repository handles contractor persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to contractor operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows contractor listings.
type ListFilter struct {
	Specialty *string
	MinRating *decimal.Decimal
	IsActive  *bool
}

// Create persists a new contractor row.
func (r *Repository) Create(ctx context.Context, contractor *models.Contractor) error {
	if contractor.ID == uuid.Nil {
		contractor.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(contractor).Error
}

// FindByID loads a contractor by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	var contractor models.Contractor
	if err := r.db.WithContext(ctx).First(&contractor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &contractor, nil
}

// List returns contractors matching the filter, ordered by creation time.
// The specialty filter uses the Postgres array containment operator.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Contractor, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Contractor{})
	if filter.Specialty != nil {
		q = q.Where("? = ANY(specialties)", *filter.Specialty)
	}
	if filter.MinRating != nil {
		q = q.Where("rating >= ?", *filter.MinRating)
	}
	if filter.IsActive != nil {
		q = q.Where("is_active = ?", *filter.IsActive)
	}
	var rows []models.Contractor
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided contractor.
func (r *Repository) Update(ctx context.Context, contractor *models.Contractor) error {
	return r.db.WithContext(ctx).Save(contractor).Error
}

// Delete removes the contractor row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Contractor{}, "id = ?", id).Error
}

// Exists reports whether a contractor with the given id is present.
func (r *Repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Contractor{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Stats aggregates roster counts and the average rating.
func (r *Repository) Stats(ctx context.Context) (*ContractorStatsDTO, error) {
	stats := &ContractorStatsDTO{AverageRating: decimal.Zero}

	base := func() *gorm.DB { return r.db.WithContext(ctx).Model(&models.Contractor{}) }

	if err := base().Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := base().Where("is_active = ?", true).Count(&stats.Active).Error; err != nil {
		return nil, err
	}
	if err := base().Where("rating >= ?", decimal.NewFromFloat(4.0)).Count(&stats.HighRated).Error; err != nil {
		return nil, err
	}

	if stats.Total > 0 {
		var avg struct {
			Avg decimal.Decimal
		}
		if err := base().Select("COALESCE(AVG(rating), 0) AS avg").Scan(&avg).Error; err != nil {
			return nil, err
		}
		stats.AverageRating = avg.Avg.Round(2)
	}
	return stats, nil
}
