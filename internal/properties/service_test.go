package properties

import (
	"context"
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
	_, err := NewService(nil, stubUnitCounter{})
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestNewServiceRequiresUnitCounter(t *testing.T) {
	_, err := NewService(&stubPropertyRepo{}, nil)
	if err == nil {
		t.Fatal("expected error creating service without unit counter")
	}
}

func TestPropertyCreateTrimsFields(t *testing.T) {
	repo := &stubPropertyRepo{}
	svc := newPropertySvc(t, repo)

	dto, err := svc.Create(context.Background(), CreatePropertyInput{
		Name:         " Cedar Grove ",
		Address:      " 1200 Cedar Ave ",
		PropertyType: "condominium",
		TotalUnits:   40,
	})
	if err != nil {
		t.Fatalf("create property: %v", err)
	}
	if dto.Name != "Cedar Grove" || dto.Address != "1200 Cedar Ave" {
		t.Fatalf("expected trimmed fields, got %q %q", dto.Name, dto.Address)
	}
}

func TestPropertyCreateImplausibleYear(t *testing.T) {
	svc := newPropertySvc(t, &stubPropertyRepo{})

	year := 1492
	_, gotErr := svc.Create(context.Background(), CreatePropertyInput{
		Name:         "Cedar Grove",
		Address:      "1200 Cedar Ave",
		PropertyType: "condominium",
		YearBuilt:    &year,
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestPropertyDeleteBlockedByUnits(t *testing.T) {
	property := baseProperty()
	repo := &stubPropertyRepo{property: property}
	svc, err := NewService(repo, stubUnitCounter{total: 12})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), property.ID)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", gotErr)
	}
	if repo.deleted {
		t.Fatal("expected delete to stop before the repository")
	}
}

func TestPropertyStatsOccupancy(t *testing.T) {
	property := baseProperty()
	repo := &stubPropertyRepo{property: property}
	svc, err := NewService(repo, stubUnitCounter{total: 40, occupied: 30})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	stats, err := svc.Stats(context.Background(), property.ID)
	if err != nil {
		t.Fatalf("property stats: %v", err)
	}
	if stats.TotalUnits != 40 || stats.OccupiedUnits != 30 || stats.VacantUnits != 10 {
		t.Fatalf("unexpected unit counts: %+v", stats)
	}
	if stats.OccupancyRate != 0.75 {
		t.Fatalf("expected occupancy rate 0.75, got %f", stats.OccupancyRate)
	}
}

func TestPropertyStatsEmpty(t *testing.T) {
	property := baseProperty()
	repo := &stubPropertyRepo{property: property}
	svc := newPropertySvc(t, repo)

	stats, err := svc.Stats(context.Background(), property.ID)
	if err != nil {
		t.Fatalf("property stats: %v", err)
	}
	if stats.OccupancyRate != 0 {
		t.Fatalf("expected zero occupancy without units, got %f", stats.OccupancyRate)
	}
}

func TestPropertyGetByIDNotFound(t *testing.T) {
	repo := &stubPropertyRepo{err: gorm.ErrRecordNotFound}
	svc := newPropertySvc(t, repo)

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func newPropertySvc(t *testing.T, repo *stubPropertyRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubUnitCounter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseProperty() *models.Property {
	return &models.Property{
		ID:           uuid.New(),
		Name:         "Cedar Grove",
		Address:      "1200 Cedar Ave",
		PropertyType: enums.PropertyTypeCondominium,
		TotalUnits:   40,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

type stubPropertyRepo struct {
	property *models.Property
	err      error
	created  *models.Property
	deleted  bool
}

func (s *stubPropertyRepo) Create(ctx context.Context, property *models.Property) error {
	if s.err != nil {
		return s.err
	}
	property.ID = uuid.New()
	s.created = property
	return nil
}

func (s *stubPropertyRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return s.property, s.err
}

func (s *stubPropertyRepo) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Property, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.property == nil {
		return nil, nil
	}
	return []models.Property{*s.property}, nil
}

func (s *stubPropertyRepo) Update(ctx context.Context, property *models.Property) error {
	return s.err
}

func (s *stubPropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = true
	return nil
}

type stubUnitCounter struct {
	total    int64
	occupied int64
	err      error
}

func (s stubUnitCounter) CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	return s.total, s.err
}

func (s stubUnitCounter) CountOccupiedByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	return s.occupied, s.err
}
