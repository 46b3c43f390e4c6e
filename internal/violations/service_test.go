package violations

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

func TestViolationCreateOpensCase(t *testing.T) {
	repo := &stubViolationRepo{}
	svc := newViolationSvc(t, repo, true)

	dto, err := svc.Create(context.Background(), CreateInput{
		UnitID:      uuid.New(),
		Description: "Unapproved fence color",
		Severity:    enums.ViolationSeverityModerate,
		FineAmount:  decimal.NewFromInt(50),
	})
	if err != nil {
		t.Fatalf("create violation: %v", err)
	}
	if dto.Status != enums.ViolationStatusOpen {
		t.Fatalf("expected open status, got %s", dto.Status)
	}
	if dto.ResolvedDate != nil {
		t.Fatal("expected no resolved date on a fresh violation")
	}
}

func TestViolationCreateNegativeFine(t *testing.T) {
	svc := newViolationSvc(t, &stubViolationRepo{}, true)

	_, gotErr := svc.Create(context.Background(), CreateInput{
		UnitID:      uuid.New(),
		Description: "Trash bins left out",
		Severity:    enums.ViolationSeverityModerate,
		FineAmount:  decimal.NewFromInt(-25),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestViolationCreateUnknownResident(t *testing.T) {
	repo := &stubViolationRepo{}
	svc, err := NewService(repo, stubFinder{ok: true}, stubFinder{ok: false})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	residentID := uuid.New()
	_, gotErr := svc.Create(context.Background(), CreateInput{
		UnitID:      uuid.New(),
		ResidentID:  &residentID,
		Description: "Noise complaint",
		Severity:    enums.ViolationSeverityMinor,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential code, got %v", gotErr)
	}
	if repo.created != nil {
		t.Fatal("expected create to stop before the repository")
	}
}

func TestViolationResolveStampsDate(t *testing.T) {
	violation := baseViolation()
	repo := &stubViolationRepo{violation: violation}
	svc := newViolationSvc(t, repo, true)

	dto, err := svc.Resolve(context.Background(), violation.ID)
	if err != nil {
		t.Fatalf("resolve violation: %v", err)
	}
	if dto.Status != enums.ViolationStatusResolved {
		t.Fatalf("expected resolved status, got %s", dto.Status)
	}
	if dto.ResolvedDate == nil {
		t.Fatal("expected resolved date stamped")
	}
	if repo.updates != 1 {
		t.Fatalf("expected one update, got %d", repo.updates)
	}
}

func TestViolationResolveIdempotent(t *testing.T) {
	violation := baseViolation()
	resolved := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	violation.Status = enums.ViolationStatusResolved
	violation.ResolvedDate = &resolved
	repo := &stubViolationRepo{violation: violation}
	svc := newViolationSvc(t, repo, true)

	dto, err := svc.Resolve(context.Background(), violation.ID)
	if err != nil {
		t.Fatalf("resolve violation: %v", err)
	}
	if dto.ResolvedDate == nil || !dto.ResolvedDate.Equal(resolved) {
		t.Fatalf("expected original resolution date kept, got %v", dto.ResolvedDate)
	}
	if repo.updates != 0 {
		t.Fatalf("expected repeat resolve to skip the update, got %d", repo.updates)
	}
}

func TestViolationUpdateToResolvedStampsDate(t *testing.T) {
	violation := baseViolation()
	repo := &stubViolationRepo{violation: violation}
	svc := newViolationSvc(t, repo, true)

	status := enums.ViolationStatusResolved
	dto, err := svc.Update(context.Background(), violation.ID, UpdateInput{Status: &status})
	if err != nil {
		t.Fatalf("update violation: %v", err)
	}
	if dto.ResolvedDate == nil {
		t.Fatal("expected resolved date stamped on status change")
	}
}

func TestViolationGetByIDNotFound(t *testing.T) {
	repo := &stubViolationRepo{err: gorm.ErrRecordNotFound}
	svc := newViolationSvc(t, repo, true)

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func newViolationSvc(t *testing.T, repo *stubViolationRepo, refsExist bool) Service {
	t.Helper()
	svc, err := NewService(repo, stubFinder{ok: refsExist}, stubFinder{ok: refsExist})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseViolation() *models.Violation {
	return &models.Violation{
		ID:          uuid.New(),
		UnitID:      uuid.New(),
		Description: "Unapproved fence color",
		Severity:    enums.ViolationSeverityModerate,
		Status:      enums.ViolationStatusOpen,
		FineAmount:  decimal.NewFromInt(50),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

type stubViolationRepo struct {
	violation *models.Violation
	err       error
	created   *models.Violation
	updates   int
}

func (s *stubViolationRepo) Create(ctx context.Context, violation *models.Violation) error {
	if s.err != nil {
		return s.err
	}
	violation.ID = uuid.New()
	s.created = violation
	return nil
}

func (s *stubViolationRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Violation, error) {
	return s.violation, s.err
}

func (s *stubViolationRepo) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Violation, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.violation == nil {
		return nil, nil
	}
	return []models.Violation{*s.violation}, nil
}

func (s *stubViolationRepo) Update(ctx context.Context, violation *models.Violation) error {
	if s.err != nil {
		return s.err
	}
	s.updates++
	return nil
}

func (s *stubViolationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubViolationRepo) Stats(ctx context.Context) (*ViolationStatsDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ViolationStatsDTO{}, nil
}

type stubFinder struct {
	ok  bool
	err error
}

func (s stubFinder) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.ok, s.err
}
