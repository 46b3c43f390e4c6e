package payments

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

// Repository handles payment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to payment operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows payment listings.
type ListFilter struct {
	ResidentID  *uuid.UUID
	UnitID      *uuid.UUID
	Status      *enums.PaymentStatus
	PaymentType *enums.PaymentType
	From        *time.Time
	To          *time.Time
}

// Create persists a new payment row.
func (r *Repository) Create(ctx context.Context, payment *models.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByID loads a payment by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	if err := r.db.WithContext(ctx).First(&payment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// List returns payments matching the filter, ordered by creation time.
func (r *Repository) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Payment, error) {
	page = page.Normalize()
	q := applyFilter(r.db.WithContext(ctx).Model(&models.Payment{}), filter)
	var rows []models.Payment
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update saves the provided payment.
func (r *Repository) Update(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}

// Delete removes the payment row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Payment{}, "id = ?", id).Error
}

// CountByResident counts payments recorded for a resident.
func (r *Repository) CountByResident(ctx context.Context, residentID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).Where("resident_id = ?", residentID).Count(&count).Error
	return count, err
}

type sumRow struct {
	Count int64
	Total decimal.Decimal
}

// Stats folds payment totals inside the database.
func (r *Repository) Stats(ctx context.Context, filter ListFilter) (*PaymentStatsDTO, error) {
	stats := &PaymentStatsDTO{
		TotalAmount:   decimal.Zero,
		AverageAmount: decimal.Zero,
		ByStatus:      map[string]int64{},
		ByType:        map[string]int64{},
	}

	var totals sumRow
	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Payment{}), filter).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Scan(&totals).Error; err != nil {
		return nil, err
	}
	stats.Count = totals.Count
	stats.TotalAmount = totals.Total
	if totals.Count > 0 {
		stats.AverageAmount = totals.Total.Div(decimal.NewFromInt(totals.Count)).Round(2)
	}

	var byStatus []struct {
		Key   string
		Count int64
	}
	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Payment{}), filter).
		Select("status AS key, COUNT(*) AS count").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, row := range byStatus {
		stats.ByStatus[row.Key] = row.Count
	}

	var byType []struct {
		Key   string
		Count int64
	}
	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Payment{}), filter).
		Select("payment_type AS key, COUNT(*) AS count").Group("payment_type").Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, row := range byType {
		stats.ByType[row.Key] = row.Count
	}

	return stats, nil
}

func applyFilter(q *gorm.DB, filter ListFilter) *gorm.DB {
	if filter.ResidentID != nil {
		q = q.Where("resident_id = ?", *filter.ResidentID)
	}
	if filter.UnitID != nil {
		q = q.Where("unit_id = ?", *filter.UnitID)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.PaymentType != nil {
		q = q.Where("payment_type = ?", *filter.PaymentType)
	}
	if filter.From != nil {
		q = q.Where("payment_date >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("payment_date <= ?", *filter.To)
	}
	return q
}
