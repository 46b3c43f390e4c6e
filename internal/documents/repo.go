package documents

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// Repository handles document persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to document operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows document listings.
type ListFilter struct {
	PropertyID *uuid.UUID
	UnitID     *uuid.UUID
	DocType    *string
}

// Create persists a new document row.
func (r *Repository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(doc).Error
}

// FindByID loads a document by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := r.db.WithContext(ctx).First(&doc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns documents matching the filter, ordered by creation time.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Document, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.Document{})
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.UnitID != nil {
		q = q.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.DocType != nil {
		q = q.Where("doc_type = ?", *filter.DocType)
	}
	var rows []models.Document
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided document.
func (r *Repository) Update(ctx context.Context, doc *models.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// Delete removes the document row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Document{}, "id = ?", id).Error
}
