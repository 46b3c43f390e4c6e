package meetings

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// Repository handles meeting persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to meeting operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows meeting listings.
type ListFilter struct {
	PropertyID *uuid.UUID
	Status     *enums.MeetingStatus
}

// Create persists a new meeting row.
func (r *Repository) Create(ctx context.Context, meeting *models.Meeting) error {
	if meeting.ID == uuid.Nil {
		meeting.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(meeting).Error
}

// FindByID loads a meeting by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Meeting, error) {
	var meeting models.Meeting
	if err := r.db.WithContext(ctx).First(&meeting, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &meeting, nil
}

// List returns meetings matching the filter, ordered by creation time.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Meeting, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Meeting{})
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	var rows []models.Meeting
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided meeting.
func (r *Repository) Update(ctx context.Context, meeting *models.Meeting) error {
	return r.db.WithContext(ctx).Save(meeting).Error
}

// Delete removes the meeting row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Meeting{}, "id = ?", id).Error
}
