package contractors

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, stubAssignmentCounter{})
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestNewServiceRequiresAssignmentCounter(t *testing.T) {
	_, err := NewService(&stubContractorRepo{}, nil)
	if err == nil {
		t.Fatal("expected error creating service without assignment counter")
	}
}

func TestContractorCreateDefaults(t *testing.T) {
	repo := &stubContractorRepo{}
	svc := newContractorSvc(t, repo)

	dto, err := svc.Create(context.Background(), CreateContractorInput{
		Name:   "  Valley Plumbing ",
		Rating: decimal.NewFromFloat(4.5),
	})
	if err != nil {
		t.Fatalf("create contractor: %v", err)
	}
	if dto.Name != "Valley Plumbing" {
		t.Fatalf("expected trimmed name, got %q", dto.Name)
	}
	if !dto.IsActive {
		t.Fatal("expected contractor created active")
	}
	if repo.created == nil || repo.created.Specialties == nil {
		t.Fatal("expected specialties stored as empty array, not nil")
	}
}

func TestContractorCreateRatingOutOfRange(t *testing.T) {
	svc := newContractorSvc(t, &stubContractorRepo{})

	for _, rating := range []decimal.Decimal{decimal.NewFromFloat(-0.5), decimal.NewFromFloat(5.1)} {
		_, gotErr := svc.Create(context.Background(), CreateContractorInput{Name: "Acme", Rating: rating})
		if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation code for rating %s, got %v", rating, gotErr)
		}
	}
}

func TestContractorCreateBlankSpecialty(t *testing.T) {
	svc := newContractorSvc(t, &stubContractorRepo{})

	_, gotErr := svc.Create(context.Background(), CreateContractorInput{
		Name:        "Acme",
		Specialties: []string{"plumbing", "  "},
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestContractorDeleteBlockedByAssignments(t *testing.T) {
	contractor := baseContractor()
	repo := &stubContractorRepo{contractor: contractor}
	svc, err := NewService(repo, stubAssignmentCounter{count: 2})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), contractor.ID)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", gotErr)
	}
	if repo.deleted {
		t.Fatal("expected delete to stop before the repository")
	}
}

func TestContractorDeleteSucceeds(t *testing.T) {
	contractor := baseContractor()
	repo := &stubContractorRepo{contractor: contractor}
	svc := newContractorSvc(t, repo)

	if err := svc.Delete(context.Background(), contractor.ID); err != nil {
		t.Fatalf("delete contractor: %v", err)
	}
	if !repo.deleted {
		t.Fatal("expected delete to reach the repository")
	}
}

func TestContractorGetByIDNotFound(t *testing.T) {
	repo := &stubContractorRepo{err: gorm.ErrRecordNotFound}
	svc := newContractorSvc(t, repo)

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestContractorUpdateRating(t *testing.T) {
	repo := &stubContractorRepo{contractor: baseContractor()}
	svc := newContractorSvc(t, repo)

	rating := decimal.NewFromFloat(3.8)
	dto, err := svc.Update(context.Background(), uuid.New(), UpdateContractorInput{Rating: &rating})
	if err != nil {
		t.Fatalf("update contractor: %v", err)
	}
	if !dto.Rating.Equal(rating) {
		t.Fatalf("expected rating %s, got %s", rating, dto.Rating)
	}
}

func newContractorSvc(t *testing.T, repo *stubContractorRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubAssignmentCounter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseContractor() *models.Contractor {
	return &models.Contractor{
		ID:          uuid.New(),
		Name:        "Valley Plumbing",
		Specialties: pq.StringArray{"plumbing"},
		Rating:      decimal.NewFromFloat(4.5),
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

type stubContractorRepo struct {
	contractor *models.Contractor
	err        error
	created    *models.Contractor
	deleted    bool
}

func (s *stubContractorRepo) Create(ctx context.Context, contractor *models.Contractor) error {
	if s.err != nil {
		return s.err
	}
	contractor.ID = uuid.New()
	s.created = contractor
	return nil
}

func (s *stubContractorRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	return s.contractor, s.err
}

func (s *stubContractorRepo) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Contractor, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.contractor == nil {
		return nil, nil
	}
	return []models.Contractor{*s.contractor}, nil
}

func (s *stubContractorRepo) Update(ctx context.Context, contractor *models.Contractor) error {
	return s.err
}

func (s *stubContractorRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = true
	return nil
}

func (s *stubContractorRepo) Stats(ctx context.Context) (*ContractorStatsDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &ContractorStatsDTO{}, nil
}

type stubAssignmentCounter struct {
	count int64
	err   error
}

func (s stubAssignmentCounter) CountByContractor(ctx context.Context, contractorID uuid.UUID) (int64, error) {
	return s.count, s.err
}
