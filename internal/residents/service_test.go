package residents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, stubExistsRepo{ok: true}, stubCounter{}, stubCounter{}, stubCounter{})
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestNewServiceRequiresDependentCounters(t *testing.T) {
	_, err := NewService(&stubResidentRepo{}, stubExistsRepo{ok: true}, nil, stubCounter{}, stubCounter{})
	if err == nil {
		t.Fatal("expected error creating service without dependent counters")
	}
}

func TestResidentCreateTrimsNames(t *testing.T) {
	repo := &stubResidentRepo{}
	svc := newResidentSvc(t, repo, true)

	input := baseResidentInput()
	input.FirstName = "  Maria "
	input.LastName = " Ortiz  "

	dto, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create resident: %v", err)
	}
	if dto.FirstName != "Maria" || dto.LastName != "Ortiz" {
		t.Fatalf("expected trimmed names, got %q %q", dto.FirstName, dto.LastName)
	}
}

func TestResidentCreateInvalidType(t *testing.T) {
	svc := newResidentSvc(t, &stubResidentRepo{}, true)

	input := baseResidentInput()
	input.ResidentType = "guest"

	_, gotErr := svc.Create(context.Background(), input)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestResidentCreateMissingUnit(t *testing.T) {
	repo := &stubResidentRepo{}
	svc, err := NewService(repo, stubExistsRepo{ok: false}, stubCounter{}, stubCounter{}, stubCounter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), baseResidentInput())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential code, got %v", gotErr)
	}
	if repo.created != nil {
		t.Fatal("expected create to stop before the repository")
	}
}

func TestResidentGetByIDNotFound(t *testing.T) {
	repo := &stubResidentRepo{err: gorm.ErrRecordNotFound}
	svc := newResidentSvc(t, repo, true)

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestResidentDeleteBlockedByDependents(t *testing.T) {
	resident := baseResident()
	repo := &stubResidentRepo{resident: resident}
	svc, err := NewService(repo, stubExistsRepo{ok: true}, stubCounter{count: 3}, stubCounter{}, stubCounter{count: 1})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), resident.ID)
	if gotErr == nil {
		t.Fatal("expected error")
	}
	typed := pkgerrors.As(gotErr)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", gotErr)
	}
	dependents, ok := typed.Details().(map[string]int64)
	if !ok {
		t.Fatalf("expected dependent counts in details, got %T", typed.Details())
	}
	if dependents["payments"] != 3 || dependents["violations"] != 1 {
		t.Fatalf("expected payments=3 violations=1, got %v", dependents)
	}
	if _, present := dependents["maintenance_requests"]; present {
		t.Fatalf("expected zero-count dependents omitted, got %v", dependents)
	}
	if repo.deleted {
		t.Fatal("expected delete to stop before the repository")
	}
}

func TestResidentDeleteSucceedsWithoutDependents(t *testing.T) {
	resident := baseResident()
	repo := &stubResidentRepo{resident: resident}
	svc := newResidentSvc(t, repo, true)

	if err := svc.Delete(context.Background(), resident.ID); err != nil {
		t.Fatalf("delete resident: %v", err)
	}
	if !repo.deleted {
		t.Fatal("expected delete to reach the repository")
	}
}

func TestResidentStats(t *testing.T) {
	resident := baseResident()
	name := "Jo Ortiz"
	phone := "405-555-0107"
	resident.EmergencyContactName = &name
	resident.EmergencyContactPhone = &phone
	repo := &stubResidentRepo{resident: resident}
	svc, err := NewService(repo, stubExistsRepo{ok: true}, stubCounter{count: 4}, stubCounter{count: 2}, stubCounter{count: 1})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	stats, err := svc.Stats(context.Background(), resident.ID)
	if err != nil {
		t.Fatalf("resident stats: %v", err)
	}
	if stats.PaymentCount != 4 || stats.MaintenanceCount != 2 || stats.ViolationCount != 1 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if !stats.HasEmergencyContact {
		t.Fatal("expected emergency contact flag set")
	}
}

func TestResidentUpdateDependencyError(t *testing.T) {
	repo := &stubResidentRepo{resident: baseResident(), updateErr: errors.New("boom")}
	svc := newResidentSvc(t, repo, true)

	first := "Ana"
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdateResidentInput{FirstName: &first})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", gotErr)
	}
}

func newResidentSvc(t *testing.T, repo *stubResidentRepo, unitExists bool) Service {
	t.Helper()
	svc, err := NewService(repo, stubExistsRepo{ok: unitExists}, stubCounter{}, stubCounter{}, stubCounter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseResidentInput() CreateResidentInput {
	return CreateResidentInput{
		UnitID:       uuid.New(),
		FirstName:    "Maria",
		LastName:     "Ortiz",
		ResidentType: "owner",
		MoveInDate:   time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
	}
}

func baseResident() *models.Resident {
	return &models.Resident{
		ID:           uuid.New(),
		UnitID:       uuid.New(),
		FirstName:    "Maria",
		LastName:     "Ortiz",
		ResidentType: enums.ResidentTypeOwner,
		MoveInDate:   time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

type stubResidentRepo struct {
	resident  *models.Resident
	err       error
	updateErr error
	created   *models.Resident
	deleted   bool
}

func (s *stubResidentRepo) Create(ctx context.Context, resident *models.Resident) error {
	if s.err != nil {
		return s.err
	}
	resident.ID = uuid.New()
	s.created = resident
	return nil
}

func (s *stubResidentRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Resident, error) {
	return s.resident, s.err
}

func (s *stubResidentRepo) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Resident, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.resident == nil {
		return nil, nil
	}
	return []models.Resident{*s.resident}, nil
}

func (s *stubResidentRepo) Update(ctx context.Context, resident *models.Resident) error {
	return s.updateErr
}

func (s *stubResidentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = true
	return nil
}

type stubCounter struct {
	count int64
	err   error
}

func (s stubCounter) CountByResident(ctx context.Context, residentID uuid.UUID) (int64, error) {
	return s.count, s.err
}
