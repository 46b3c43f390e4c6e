package finance

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

// Repository handles account and fee persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to finance operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AccountListFilter narrows account listings.
type AccountListFilter struct {
	PropertyID  *uuid.UUID
	AccountType *string
}

// FeeListFilter narrows fee listings.
type FeeListFilter struct {
	PropertyID *uuid.UUID
	Frequency  *string
}

// CreateAccount persists a new account row.
func (r *Repository) CreateAccount(ctx context.Context, account *models.FinancialAccount) error {
	if account.ID == uuid.Nil {
		account.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(account).Error
}

// FindAccountByID loads an account by its UUID.
func (r *Repository) FindAccountByID(ctx context.Context, id uuid.UUID) (*models.FinancialAccount, error) {
	var account models.FinancialAccount
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// ListAccounts returns accounts matching the filter, ordered by creation time.
func (r *Repository) ListAccounts(ctx context.Context, filter AccountListFilter, page pagination.Params) ([]models.FinancialAccount, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.FinancialAccount{})
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.AccountType != nil {
		q = q.Where("account_type = ?", *filter.AccountType)
	}
	var rows []models.FinancialAccount
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateAccount saves the provided account.
func (r *Repository) UpdateAccount(ctx context.Context, account *models.FinancialAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// DeleteAccount removes the account row.
func (r *Repository) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.FinancialAccount{}, "id = ?", id).Error
}

// CreateFee persists a new fee row.
func (r *Repository) CreateFee(ctx context.Context, fee *models.ManagementFee) error {
	if fee.ID == uuid.Nil {
		fee.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(fee).Error
}

// FindFeeByID loads a fee by its UUID.
func (r *Repository) FindFeeByID(ctx context.Context, id uuid.UUID) (*models.ManagementFee, error) {
	var fee models.ManagementFee
	if err := r.db.WithContext(ctx).First(&fee, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &fee, nil
}

// ListFees returns fees matching the filter, ordered by creation time.
func (r *Repository) ListFees(ctx context.Context, filter FeeListFilter, page pagination.Params) ([]models.ManagementFee, error) {
	page = page.Normalize()
	q := r.db.WithContext(ctx).Model(&models.ManagementFee{})
	if filter.PropertyID != nil {
		q = q.Where("property_id = ?", *filter.PropertyID)
	}
	if filter.Frequency != nil {
		q = q.Where("frequency = ?", *filter.Frequency)
	}
	var rows []models.ManagementFee
	if err := q.Order("created_at ASC, id ASC").Offset(page.Offset).Limit(page.Limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateFee saves the provided fee.
func (r *Repository) UpdateFee(ctx context.Context, fee *models.ManagementFee) error {
	return r.db.WithContext(ctx).Save(fee).Error
}

// DeleteFee removes the fee row.
func (r *Repository) DeleteFee(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ManagementFee{}, "id = ?", id).Error
}
