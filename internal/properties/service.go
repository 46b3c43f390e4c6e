package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

type propertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Property, error)
	Update(ctx context.Context, property *models.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type unitCounter interface {
	CountByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)
	CountOccupiedByProperty(ctx context.Context, propertyID uuid.UUID) (int64, error)
}

// Service exposes property operations.
type Service interface {
	Create(ctx context.Context, input CreatePropertyInput) (*PropertyDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]PropertyDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PropertyDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePropertyInput) (*PropertyDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID) (*PropertyStatsDTO, error)
}

type service struct {
	repo  propertyRepository
	units unitCounter
}

// NewService builds a property service with the provided repositories.
func NewService(repo propertyRepository, units unitCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("property repository required")
	}
	if units == nil {
		return nil, fmt.Errorf("unit repository required")
	}
	return &service{repo: repo, units: units}, nil
}

// CreatePropertyInput captures creation-time property fields.
type CreatePropertyInput struct {
	Name         string
	Address      string
	PropertyType string
	TotalUnits   int
	YearBuilt    *int
}

// UpdatePropertyInput captures the allowed mutable property fields.
type UpdatePropertyInput struct {
	Name         *string
	Address      *string
	PropertyType *string
	TotalUnits   *int
	YearBuilt    *int
}

func (s *service) Create(ctx context.Context, input CreatePropertyInput) (*PropertyDTO, error) {
	fields := pkgerrors.FieldErrors{}

	if strings.TrimSpace(input.Name) == "" {
		fields.Add("name", "must not be blank")
	}
	if strings.TrimSpace(input.Address) == "" {
		fields.Add("address", "must not be blank")
	}
	propertyType, err := enums.ParsePropertyType(input.PropertyType)
	if err != nil {
		fields.Add("property_type", "must be a valid property type")
	}
	if input.TotalUnits < 0 {
		fields.Add("total_units", "must not be negative")
	}
	validateYearBuilt(fields, input.YearBuilt)

	if err := fields.Err(); err != nil {
		return nil, err
	}

	property := &models.Property{
		Name:         strings.TrimSpace(input.Name),
		Address:      strings.TrimSpace(input.Address),
		PropertyType: propertyType,
		TotalUnits:   input.TotalUnits,
		YearBuilt:    input.YearBuilt,
	}
	if err := s.repo.Create(ctx, property); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create property")
	}
	return FromModel(property), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]PropertyDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list properties")
	}
	return fromModels(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PropertyDTO, error) {
	property, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(property), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePropertyInput) (*PropertyDTO, error) {
	property, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			fields.Add("name", "must not be blank")
		} else {
			property.Name = strings.TrimSpace(*input.Name)
		}
	}
	if input.Address != nil {
		if strings.TrimSpace(*input.Address) == "" {
			fields.Add("address", "must not be blank")
		} else {
			property.Address = strings.TrimSpace(*input.Address)
		}
	}
	if input.PropertyType != nil {
		propertyType, err := enums.ParsePropertyType(*input.PropertyType)
		if err != nil {
			fields.Add("property_type", "must be a valid property type")
		} else {
			property.PropertyType = propertyType
		}
	}
	if input.TotalUnits != nil {
		if *input.TotalUnits < 0 {
			fields.Add("total_units", "must not be negative")
		} else {
			property.TotalUnits = *input.TotalUnits
		}
	}
	if input.YearBuilt != nil {
		if *input.YearBuilt < 1800 || *input.YearBuilt > time.Now().Year()+1 {
			fields.Add("year_built", "must be a plausible construction year")
		} else {
			property.YearBuilt = input.YearBuilt
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, property); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update property")
	}
	return FromModel(property), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	count, err := s.units.CountByProperty(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count property units")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "property has units").
			WithDetails(map[string]any{"units": count})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete property")
	}
	return nil
}

func (s *service) Stats(ctx context.Context, id uuid.UUID) (*PropertyStatsDTO, error) {
	if _, err := s.load(ctx, id); err != nil {
		return nil, err
	}

	total, err := s.units.CountByProperty(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count property units")
	}
	occupied, err := s.units.CountOccupiedByProperty(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count occupied units")
	}

	stats := &PropertyStatsDTO{
		PropertyID:    id,
		TotalUnits:    total,
		OccupiedUnits: occupied,
		VacantUnits:   total - occupied,
	}
	if total > 0 {
		stats.OccupancyRate = float64(occupied) / float64(total)
	}
	return stats, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	property, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "property not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load property")
	}
	return property, nil
}

func validateYearBuilt(fields pkgerrors.FieldErrors, year *int) {
	if year == nil {
		return
	}
	if *year < 1800 || *year > time.Now().Year()+1 {
		fields.Add("year_built", "must be a plausible construction year")
	}
}
