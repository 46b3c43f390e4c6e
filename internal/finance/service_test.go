package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, stubFinder{ok: true})
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestCreateAccount(t *testing.T) {
	repo := &stubFinanceRepo{}
	svc := newFinanceSvc(t, repo, true)

	dto, err := svc.CreateAccount(context.Background(), CreateAccountInput{
		PropertyID:  uuid.New(),
		Name:        "Reserve fund",
		AccountType: enums.AccountTypeReserve,
		Balance:     decimal.NewFromInt(120000),
	})
	if err != nil {
		t.Fatalf("create account: %v", err)
	}
	if dto.Name != "Reserve fund" {
		t.Fatalf("expected account name kept, got %q", dto.Name)
	}
	if repo.account == nil {
		t.Fatal("expected account to reach the repository")
	}
}

func TestCreateAccountInvalidType(t *testing.T) {
	svc := newFinanceSvc(t, &stubFinanceRepo{}, true)

	_, gotErr := svc.CreateAccount(context.Background(), CreateAccountInput{
		PropertyID:  uuid.New(),
		Name:        "Reserve fund",
		AccountType: enums.AccountType("slush"),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestCreateAccountUnknownProperty(t *testing.T) {
	repo := &stubFinanceRepo{}
	svc := newFinanceSvc(t, repo, false)

	_, gotErr := svc.CreateAccount(context.Background(), CreateAccountInput{
		PropertyID:  uuid.New(),
		Name:        "Reserve fund",
		AccountType: enums.AccountTypeOperating,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential code, got %v", gotErr)
	}
	if repo.account != nil {
		t.Fatal("expected create to stop before the repository")
	}
}

func TestCreateFee(t *testing.T) {
	repo := &stubFinanceRepo{}
	svc := newFinanceSvc(t, repo, true)

	dto, err := svc.CreateFee(context.Background(), CreateFeeInput{
		PropertyID:    uuid.New(),
		Name:          "Landscaping",
		Amount:        decimal.NewFromInt(85),
		Frequency:     enums.FeeFrequencyMonthly,
		EffectiveDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create fee: %v", err)
	}
	if dto.Frequency != enums.FeeFrequencyMonthly {
		t.Fatalf("expected monthly frequency, got %s", dto.Frequency)
	}
}

func TestCreateFeeRejectsNonPositiveAmount(t *testing.T) {
	svc := newFinanceSvc(t, &stubFinanceRepo{}, true)

	_, gotErr := svc.CreateFee(context.Background(), CreateFeeInput{
		PropertyID:    uuid.New(),
		Name:          "Landscaping",
		Amount:        decimal.Zero,
		Frequency:     enums.FeeFrequencyMonthly,
		EffectiveDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestCreateFeeMissingEffectiveDate(t *testing.T) {
	svc := newFinanceSvc(t, &stubFinanceRepo{}, true)

	_, gotErr := svc.CreateFee(context.Background(), CreateFeeInput{
		PropertyID: uuid.New(),
		Name:       "Landscaping",
		Amount:     decimal.NewFromInt(85),
		Frequency:  enums.FeeFrequencyMonthly,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestGetAccountByIDNotFound(t *testing.T) {
	repo := &stubFinanceRepo{err: gorm.ErrRecordNotFound}
	svc := newFinanceSvc(t, repo, true)

	_, gotErr := svc.GetAccountByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestUpdateFeeFrequency(t *testing.T) {
	fee := &models.ManagementFee{
		ID:            uuid.New(),
		PropertyID:    uuid.New(),
		Name:          "Landscaping",
		Amount:        decimal.NewFromInt(85),
		Frequency:     enums.FeeFrequencyMonthly,
		EffectiveDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	repo := &stubFinanceRepo{fee: fee}
	svc := newFinanceSvc(t, repo, true)

	frequency := enums.FeeFrequencyQuarterly
	dto, err := svc.UpdateFee(context.Background(), fee.ID, UpdateFeeInput{Frequency: &frequency})
	if err != nil {
		t.Fatalf("update fee: %v", err)
	}
	if dto.Frequency != enums.FeeFrequencyQuarterly {
		t.Fatalf("expected quarterly frequency, got %s", dto.Frequency)
	}
}

func newFinanceSvc(t *testing.T, repo *stubFinanceRepo, propertyExists bool) Service {
	t.Helper()
	svc, err := NewService(repo, stubFinder{ok: propertyExists})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

type stubFinanceRepo struct {
	account *models.FinancialAccount
	fee     *models.ManagementFee
	err     error
}

func (s *stubFinanceRepo) CreateAccount(ctx context.Context, account *models.FinancialAccount) error {
	if s.err != nil {
		return s.err
	}
	account.ID = uuid.New()
	s.account = account
	return nil
}

func (s *stubFinanceRepo) FindAccountByID(ctx context.Context, id uuid.UUID) (*models.FinancialAccount, error) {
	return s.account, s.err
}

func (s *stubFinanceRepo) ListAccounts(ctx context.Context, filter AccountListFilter, page pagination.Params) ([]models.FinancialAccount, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.account == nil {
		return nil, nil
	}
	return []models.FinancialAccount{*s.account}, nil
}

func (s *stubFinanceRepo) UpdateAccount(ctx context.Context, account *models.FinancialAccount) error {
	return s.err
}

func (s *stubFinanceRepo) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubFinanceRepo) CreateFee(ctx context.Context, fee *models.ManagementFee) error {
	if s.err != nil {
		return s.err
	}
	fee.ID = uuid.New()
	s.fee = fee
	return nil
}

func (s *stubFinanceRepo) FindFeeByID(ctx context.Context, id uuid.UUID) (*models.ManagementFee, error) {
	return s.fee, s.err
}

func (s *stubFinanceRepo) ListFees(ctx context.Context, filter FeeListFilter, page pagination.Params) ([]models.ManagementFee, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.fee == nil {
		return nil, nil
	}
	return []models.ManagementFee{*s.fee}, nil
}

func (s *stubFinanceRepo) UpdateFee(ctx context.Context, fee *models.ManagementFee) error {
	return s.err
}

func (s *stubFinanceRepo) DeleteFee(ctx context.Context, id uuid.UUID) error {
	return s.err
}

type stubFinder struct {
	ok  bool
	err error
}

func (s stubFinder) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.ok, s.err
}
