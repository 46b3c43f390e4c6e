package finance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

type financeRepository interface {
	CreateAccount(ctx context.Context, account *models.FinancialAccount) error
	FindAccountByID(ctx context.Context, id uuid.UUID) (*models.FinancialAccount, error)
	ListAccounts(ctx context.Context, filter AccountListFilter, page pagination.Params) ([]models.FinancialAccount, error)
	UpdateAccount(ctx context.Context, account *models.FinancialAccount) error
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	CreateFee(ctx context.Context, fee *models.ManagementFee) error
	FindFeeByID(ctx context.Context, id uuid.UUID) (*models.ManagementFee, error)
	ListFees(ctx context.Context, filter FeeListFilter, page pagination.Params) ([]models.ManagementFee, error)
	UpdateFee(ctx context.Context, fee *models.ManagementFee) error
	DeleteFee(ctx context.Context, id uuid.UUID) error
}

type referenceFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service enforces account and fee rules on top of the repository.
type Service interface {
	CreateAccount(ctx context.Context, in CreateAccountInput) (*AccountDTO, error)
	ListAccounts(ctx context.Context, filter AccountListFilter, page pagination.Params) ([]AccountDTO, error)
	GetAccountByID(ctx context.Context, id uuid.UUID) (*AccountDTO, error)
	UpdateAccount(ctx context.Context, id uuid.UUID, in UpdateAccountInput) (*AccountDTO, error)
	DeleteAccount(ctx context.Context, id uuid.UUID) error
	CreateFee(ctx context.Context, in CreateFeeInput) (*FeeDTO, error)
	ListFees(ctx context.Context, filter FeeListFilter, page pagination.Params) ([]FeeDTO, error)
	GetFeeByID(ctx context.Context, id uuid.UUID) (*FeeDTO, error)
	UpdateFee(ctx context.Context, id uuid.UUID, in UpdateFeeInput) (*FeeDTO, error)
	DeleteFee(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       financeRepository
	properties referenceFinder
}

// NewService builds the service with the provided repositories.
func NewService(repo financeRepository, properties referenceFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("finance repository required")
	}
	if properties == nil {
		return nil, fmt.Errorf("property repository required")
	}
	return &service{repo: repo, properties: properties}, nil
}

// CreateAccountInput carries fields for opening an account.
type CreateAccountInput struct {
	PropertyID  uuid.UUID
	Name        string
	AccountType enums.AccountType
	Balance     decimal.Decimal
}

// UpdateAccountInput carries optional account mutations.
type UpdateAccountInput struct {
	Name        *string
	AccountType *enums.AccountType
	Balance     *decimal.Decimal
}

// CreateFeeInput carries fields for defining a recurring fee.
type CreateFeeInput struct {
	PropertyID    uuid.UUID
	Name          string
	Amount        decimal.Decimal
	Frequency     enums.FeeFrequency
	EffectiveDate time.Time
}

// UpdateFeeInput carries optional fee mutations.
type UpdateFeeInput struct {
	Name          *string
	Amount        *decimal.Decimal
	Frequency     *enums.FeeFrequency
	EffectiveDate *time.Time
}

// CreateAccount opens a new account for a property.
func (s *service) CreateAccount(ctx context.Context, in CreateAccountInput) (*AccountDTO, error) {
	fields := pkgerrors.FieldErrors{}
	if in.Name == "" {
		fields.Add("name", "name is required")
	}
	if !in.AccountType.IsValid() {
		fields.Add("account_type", "invalid account type")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.checkProperty(ctx, in.PropertyID); err != nil {
		return nil, err
	}

	account := &models.FinancialAccount{
		PropertyID:  in.PropertyID,
		Name:        in.Name,
		AccountType: in.AccountType,
		Balance:     in.Balance,
	}
	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create account")
	}
	return AccountFromModel(account), nil
}

// GetAccountByID returns a single account.
func (s *service) GetAccountByID(ctx context.Context, id uuid.UUID) (*AccountDTO, error) {
	account, err := s.loadAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	return AccountFromModel(account), nil
}

// ListAccounts returns accounts matching the filter.
func (s *service) ListAccounts(ctx context.Context, filter AccountListFilter, page pagination.Params) ([]AccountDTO, error) {
	rows, err := s.repo.ListAccounts(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list accounts")
	}
	return accountsFromModels(rows), nil
}

// UpdateAccount applies partial changes to an account.
func (s *service) UpdateAccount(ctx context.Context, id uuid.UUID, in UpdateAccountInput) (*AccountDTO, error) {
	account, err := s.loadAccount(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if in.Name != nil {
		if *in.Name == "" {
			fields.Add("name", "name cannot be empty")
		} else {
			account.Name = *in.Name
		}
	}
	if in.AccountType != nil {
		if !in.AccountType.IsValid() {
			fields.Add("account_type", "invalid account type")
		} else {
			account.AccountType = *in.AccountType
		}
	}
	if in.Balance != nil {
		account.Balance = *in.Balance
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update account")
	}
	return AccountFromModel(account), nil
}

// DeleteAccount removes an account.
func (s *service) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadAccount(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteAccount(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete account")
	}
	return nil
}

// CreateFee defines a new recurring fee for a property.
func (s *service) CreateFee(ctx context.Context, in CreateFeeInput) (*FeeDTO, error) {
	fields := pkgerrors.FieldErrors{}
	if in.Name == "" {
		fields.Add("name", "name is required")
	}
	if !in.Amount.IsPositive() {
		fields.Add("amount", "amount must be positive")
	}
	if !in.Frequency.IsValid() {
		fields.Add("frequency", "invalid fee frequency")
	}
	if in.EffectiveDate.IsZero() {
		fields.Add("effective_date", "effective_date is required")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.checkProperty(ctx, in.PropertyID); err != nil {
		return nil, err
	}

	fee := &models.ManagementFee{
		PropertyID:    in.PropertyID,
		Name:          in.Name,
		Amount:        in.Amount,
		Frequency:     in.Frequency,
		EffectiveDate: in.EffectiveDate,
	}
	if err := s.repo.CreateFee(ctx, fee); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create fee")
	}
	return FeeFromModel(fee), nil
}

// GetFeeByID returns a single fee.
func (s *service) GetFeeByID(ctx context.Context, id uuid.UUID) (*FeeDTO, error) {
	fee, err := s.loadFee(ctx, id)
	if err != nil {
		return nil, err
	}
	return FeeFromModel(fee), nil
}

// ListFees returns fees matching the filter.
func (s *service) ListFees(ctx context.Context, filter FeeListFilter, page pagination.Params) ([]FeeDTO, error) {
	rows, err := s.repo.ListFees(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list fees")
	}
	return feesFromModels(rows), nil
}

// UpdateFee applies partial changes to a fee.
func (s *service) UpdateFee(ctx context.Context, id uuid.UUID, in UpdateFeeInput) (*FeeDTO, error) {
	fee, err := s.loadFee(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if in.Name != nil {
		if *in.Name == "" {
			fields.Add("name", "name cannot be empty")
		} else {
			fee.Name = *in.Name
		}
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			fields.Add("amount", "amount must be positive")
		} else {
			fee.Amount = *in.Amount
		}
	}
	if in.Frequency != nil {
		if !in.Frequency.IsValid() {
			fields.Add("frequency", "invalid fee frequency")
		} else {
			fee.Frequency = *in.Frequency
		}
	}
	if in.EffectiveDate != nil {
		if in.EffectiveDate.IsZero() {
			fields.Add("effective_date", "effective_date cannot be empty")
		} else {
			fee.EffectiveDate = *in.EffectiveDate
		}
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateFee(ctx, fee); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update fee")
	}
	return FeeFromModel(fee), nil
}

// DeleteFee removes a fee.
func (s *service) DeleteFee(ctx context.Context, id uuid.UUID) error {
	if _, err := s.loadFee(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteFee(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete fee")
	}
	return nil
}

func (s *service) checkProperty(ctx context.Context, propertyID uuid.UUID) error {
	if propertyID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "property_id is required")
	}
	ok, err := s.properties.Exists(ctx, propertyID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to check property")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeReferential, "referenced property does not exist")
	}
	return nil
}

func (s *service) loadAccount(ctx context.Context, id uuid.UUID) (*models.FinancialAccount, error) {
	account, err := s.repo.FindAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load account")
	}
	return account, nil
}

func (s *service) loadFee(ctx context.Context, id uuid.UUID) (*models.ManagementFee, error) {
	fee, err := s.repo.FindFeeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "fee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load fee")
	}
	return fee, nil
}
