package units

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, stubPropertyFinder{ok: true}, stubResidentCounter{}, stubResidentCounter{})
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestUnitCreateTrimsNumber(t *testing.T) {
	repo := &stubUnitRepo{}
	svc := newUnitSvc(t, repo, true)

	input := baseUnitInput()
	input.UnitNumber = " 204-B "

	dto, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create unit: %v", err)
	}
	if dto.UnitNumber != "204-B" {
		t.Fatalf("expected trimmed unit number, got %q", dto.UnitNumber)
	}
}

func TestUnitCreateDuplicateNumber(t *testing.T) {
	repo := &stubUnitRepo{numberTaken: true}
	svc := newUnitSvc(t, repo, true)

	_, gotErr := svc.Create(context.Background(), baseUnitInput())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", gotErr)
	}
	if repo.created != nil {
		t.Fatal("expected create to stop before the repository")
	}
}

func TestUnitCreateUnknownProperty(t *testing.T) {
	repo := &stubUnitRepo{}
	svc := newUnitSvc(t, repo, false)

	_, gotErr := svc.Create(context.Background(), baseUnitInput())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential code, got %v", gotErr)
	}
}

func TestUnitCreateNegativeFee(t *testing.T) {
	svc := newUnitSvc(t, &stubUnitRepo{}, true)

	input := baseUnitInput()
	input.MonthlyFee = decimal.NewFromInt(-100)

	_, gotErr := svc.Create(context.Background(), input)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestUnitUpdateRenumberChecksUniqueness(t *testing.T) {
	unit := baseUnit()
	repo := &stubUnitRepo{unit: unit, numberTaken: true}
	svc := newUnitSvc(t, repo, true)

	number := "301"
	_, gotErr := svc.Update(context.Background(), unit.ID, UpdateUnitInput{UnitNumber: &number})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", gotErr)
	}
}

func TestUnitUpdateKeepingNumberSkipsCheck(t *testing.T) {
	unit := baseUnit()
	repo := &stubUnitRepo{unit: unit, numberTaken: true}
	svc := newUnitSvc(t, repo, true)

	same := unit.UnitNumber
	if _, err := svc.Update(context.Background(), unit.ID, UpdateUnitInput{UnitNumber: &same}); err != nil {
		t.Fatalf("update unit: %v", err)
	}
	if repo.numberChecks != 0 {
		t.Fatalf("expected no uniqueness check for unchanged number, got %d", repo.numberChecks)
	}
}

func TestUnitDeleteBlockedByResidents(t *testing.T) {
	unit := baseUnit()
	repo := &stubUnitRepo{unit: unit}
	svc, err := NewService(repo, stubPropertyFinder{ok: true}, stubResidentCounter{count: 1}, stubResidentCounter{count: 2})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), unit.ID)
	if gotErr == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(gotErr)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", gotErr)
	}
	details, ok := typed.Details().(map[string]any)
	if !ok || details["residents"] != int64(3) {
		t.Fatalf("expected combined resident count 3 in details, got %v", typed.Details())
	}
	if repo.deleted {
		t.Fatal("expected delete to stop before the repository")
	}
}

func TestUnitGetByIDNotFound(t *testing.T) {
	repo := &stubUnitRepo{err: gorm.ErrRecordNotFound}
	svc := newUnitSvc(t, repo, true)

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func newUnitSvc(t *testing.T, repo *stubUnitRepo, propertyExists bool) Service {
	t.Helper()
	svc, err := NewService(repo, stubPropertyFinder{ok: propertyExists}, stubResidentCounter{}, stubResidentCounter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseUnitInput() CreateUnitInput {
	return CreateUnitInput{
		PropertyID: uuid.New(),
		UnitNumber: "204",
		UnitType:   "flat",
		Bathrooms:  decimal.NewFromFloat(1.5),
		MonthlyFee: decimal.NewFromInt(250),
	}
}

func baseUnit() *models.Unit {
	return &models.Unit{
		ID:         uuid.New(),
		PropertyID: uuid.New(),
		UnitNumber: "204",
		UnitType:   "flat",
		Bathrooms:  decimal.NewFromFloat(1.5),
		MonthlyFee: decimal.NewFromInt(250),
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
}

type stubUnitRepo struct {
	unit         *models.Unit
	err          error
	numberTaken  bool
	numberChecks int
	created      *models.Unit
	deleted      bool
}

func (s *stubUnitRepo) Create(ctx context.Context, unit *models.Unit) error {
	if s.err != nil {
		return s.err
	}
	unit.ID = uuid.New()
	s.created = unit
	return nil
}

func (s *stubUnitRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return s.unit, s.err
}

func (s *stubUnitRepo) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Unit, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.unit == nil {
		return nil, nil
	}
	return []models.Unit{*s.unit}, nil
}

func (s *stubUnitRepo) Update(ctx context.Context, unit *models.Unit) error {
	return s.err
}

func (s *stubUnitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = true
	return nil
}

func (s *stubUnitRepo) ExistsNumber(ctx context.Context, propertyID uuid.UUID, unitNumber string) (bool, error) {
	s.numberChecks++
	return s.numberTaken, nil
}

type stubPropertyFinder struct {
	ok  bool
	err error
}

func (s stubPropertyFinder) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.ok, s.err
}

type stubResidentCounter struct {
	count int64
	err   error
}

func (s stubResidentCounter) CountByUnit(ctx context.Context, unitID uuid.UUID) (int64, error) {
	return s.count, s.err
}
