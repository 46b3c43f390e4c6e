package payments

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
	_, err := NewService(nil, stubFinder{ok: true}, stubFinder{ok: true})
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestPaymentCreateDefaultsToPending(t *testing.T) {
	repo := &stubPaymentRepo{}
	svc := newPaymentSvc(t, repo, true)

	dto, err := svc.Create(context.Background(), basePaymentInput())
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	if dto.Status != enums.PaymentStatusPending {
		t.Fatalf("expected pending status, got %s", dto.Status)
	}
}

func TestPaymentCreateRejectsNonPositiveAmount(t *testing.T) {
	svc := newPaymentSvc(t, &stubPaymentRepo{}, true)

	input := basePaymentInput()
	input.Amount = decimal.Zero

	_, gotErr := svc.Create(context.Background(), input)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestPaymentCreateInvalidMethod(t *testing.T) {
	svc := newPaymentSvc(t, &stubPaymentRepo{}, true)

	input := basePaymentInput()
	input.PaymentMethod = "barter"

	_, gotErr := svc.Create(context.Background(), input)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestPaymentCreateMissingResident(t *testing.T) {
	repo := &stubPaymentRepo{}
	svc, err := NewService(repo, stubFinder{ok: false}, stubFinder{ok: true})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), basePaymentInput())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential code, got %v", gotErr)
	}
	if repo.created != nil {
		t.Fatal("expected create to stop before the repository")
	}
}

func TestPaymentStatsRejectsInvertedRange(t *testing.T) {
	svc := newPaymentSvc(t, &stubPaymentRepo{}, true)

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(-24 * time.Hour)
	_, gotErr := svc.Stats(context.Background(), ListFilter{From: &from, To: &to})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestPaymentStatsPassesFilterThrough(t *testing.T) {
	repo := &stubPaymentRepo{}
	svc := newPaymentSvc(t, repo, true)

	status := enums.PaymentStatusPending
	if _, err := svc.Stats(context.Background(), ListFilter{Status: &status}); err != nil {
		t.Fatalf("payment stats: %v", err)
	}
	if repo.statsFilter.Status == nil || *repo.statsFilter.Status != status {
		t.Fatal("expected status filter forwarded to the repository")
	}
}

func TestPaymentGetByIDNotFound(t *testing.T) {
	repo := &stubPaymentRepo{err: gorm.ErrRecordNotFound}
	svc := newPaymentSvc(t, repo, true)

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func newPaymentSvc(t *testing.T, repo *stubPaymentRepo, refsExist bool) Service {
	t.Helper()
	svc, err := NewService(repo, stubFinder{ok: refsExist}, stubFinder{ok: refsExist})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func basePaymentInput() CreatePaymentInput {
	return CreatePaymentInput{
		ResidentID:    uuid.New(),
		UnitID:        uuid.New(),
		Amount:        decimal.NewFromFloat(250.00),
		PaymentType:   "monthly_fee",
		PaymentMethod: "online",
		PaymentDate:   time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

type stubPaymentRepo struct {
	payment     *models.Payment
	err         error
	created     *models.Payment
	statsFilter ListFilter
}

func (s *stubPaymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	if s.err != nil {
		return s.err
	}
	payment.ID = uuid.New()
	s.created = payment
	return nil
}

func (s *stubPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	return s.payment, s.err
}

func (s *stubPaymentRepo) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Payment, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.payment == nil {
		return nil, nil
	}
	return []models.Payment{*s.payment}, nil
}

func (s *stubPaymentRepo) Update(ctx context.Context, payment *models.Payment) error {
	return s.err
}

func (s *stubPaymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubPaymentRepo) Stats(ctx context.Context, filter ListFilter) (*PaymentStatsDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.statsFilter = filter
	return &PaymentStatsDTO{}, nil
}

type stubFinder struct {
	ok  bool
	err error
}

func (s stubFinder) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.ok, s.err
}
