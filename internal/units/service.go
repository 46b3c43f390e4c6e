package units

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

type unitRepository interface {
	Create(ctx context.Context, unit *models.Unit) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Unit, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Unit, error)
	Update(ctx context.Context, unit *models.Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsNumber(ctx context.Context, propertyID uuid.UUID, unitNumber string) (bool, error)
}

type propertyFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type residentCounter interface {
	CountByUnit(ctx context.Context, unitID uuid.UUID) (int64, error)
}

// Service exposes unit operations.
type Service interface {
	Create(ctx context.Context, input CreateUnitInput) (*UnitDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]UnitDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UnitDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUnitInput) (*UnitDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       unitRepository
	properties propertyFinder
	residents  residentCounter
	enhanced   residentCounter
}

// NewService builds a unit service with the provided repositories.
func NewService(repo unitRepository, properties propertyFinder, residents, enhanced residentCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("unit repository required")
	}
	if properties == nil {
		return nil, fmt.Errorf("property repository required")
	}
	if residents == nil || enhanced == nil {
		return nil, fmt.Errorf("resident repositories required")
	}
	return &service{repo: repo, properties: properties, residents: residents, enhanced: enhanced}, nil
}

// CreateUnitInput captures creation-time unit fields.
type CreateUnitInput struct {
	PropertyID uuid.UUID
	UnitNumber string
	UnitType   string
	SquareFeet *int
	Bedrooms   *int
	Bathrooms  decimal.Decimal
	MonthlyFee decimal.Decimal
	IsOccupied bool
}

// UpdateUnitInput captures the allowed mutable unit fields.
type UpdateUnitInput struct {
	UnitNumber *string
	UnitType   *string
	SquareFeet *int
	Bedrooms   *int
	Bathrooms  *decimal.Decimal
	MonthlyFee *decimal.Decimal
	IsOccupied *bool
}

func (s *service) Create(ctx context.Context, input CreateUnitInput) (*UnitDTO, error) {
	fields := pkgerrors.FieldErrors{}

	if strings.TrimSpace(input.UnitNumber) == "" {
		fields.Add("unit_number", "must not be blank")
	}
	if strings.TrimSpace(input.UnitType) == "" {
		fields.Add("unit_type", "must not be blank")
	}
	if input.SquareFeet != nil && *input.SquareFeet <= 0 {
		fields.Add("square_feet", "must be positive")
	}
	if input.Bedrooms != nil && *input.Bedrooms < 0 {
		fields.Add("bedrooms", "must not be negative")
	}
	if input.Bathrooms.IsNegative() {
		fields.Add("bathrooms", "must not be negative")
	}
	if input.MonthlyFee.IsNegative() {
		fields.Add("monthly_fee", "must not be negative")
	}

	if input.PropertyID == uuid.Nil {
		fields.Add("property_id", "is required")
	} else {
		ok, err := s.properties.Exists(ctx, input.PropertyID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check property")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "property does not exist").
				WithDetails(map[string]any{"property_id": input.PropertyID})
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	number := strings.TrimSpace(input.UnitNumber)
	taken, err := s.repo.ExistsNumber(ctx, input.PropertyID, number)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check unit number")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "unit number already exists for property").
			WithDetails(map[string]any{"unit_number": number})
	}

	unit := &models.Unit{
		PropertyID: input.PropertyID,
		UnitNumber: number,
		UnitType:   strings.TrimSpace(input.UnitType),
		SquareFeet: input.SquareFeet,
		Bedrooms:   input.Bedrooms,
		Bathrooms:  input.Bathrooms,
		MonthlyFee: input.MonthlyFee,
		IsOccupied: input.IsOccupied,
	}
	if err := s.repo.Create(ctx, unit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create unit")
	}
	return FromModel(unit), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]UnitDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list units")
	}
	return fromModels(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*UnitDTO, error) {
	unit, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(unit), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUnitInput) (*UnitDTO, error) {
	unit, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if input.UnitNumber != nil {
		number := strings.TrimSpace(*input.UnitNumber)
		if number == "" {
			fields.Add("unit_number", "must not be blank")
		} else if number != unit.UnitNumber {
			taken, err := s.repo.ExistsNumber(ctx, unit.PropertyID, number)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check unit number")
			}
			if taken {
				return nil, pkgerrors.New(pkgerrors.CodeConflict, "unit number already exists for property").
					WithDetails(map[string]any{"unit_number": number})
			}
			unit.UnitNumber = number
		}
	}
	if input.UnitType != nil {
		if strings.TrimSpace(*input.UnitType) == "" {
			fields.Add("unit_type", "must not be blank")
		} else {
			unit.UnitType = strings.TrimSpace(*input.UnitType)
		}
	}
	if input.SquareFeet != nil {
		if *input.SquareFeet <= 0 {
			fields.Add("square_feet", "must be positive")
		} else {
			unit.SquareFeet = input.SquareFeet
		}
	}
	if input.Bedrooms != nil {
		if *input.Bedrooms < 0 {
			fields.Add("bedrooms", "must not be negative")
		} else {
			unit.Bedrooms = input.Bedrooms
		}
	}
	if input.Bathrooms != nil {
		if input.Bathrooms.IsNegative() {
			fields.Add("bathrooms", "must not be negative")
		} else {
			unit.Bathrooms = *input.Bathrooms
		}
	}
	if input.MonthlyFee != nil {
		if input.MonthlyFee.IsNegative() {
			fields.Add("monthly_fee", "must not be negative")
		} else {
			unit.MonthlyFee = *input.MonthlyFee
		}
	}
	if input.IsOccupied != nil {
		unit.IsOccupied = *input.IsOccupied
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, unit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update unit")
	}
	return FromModel(unit), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	basic, err := s.residents.CountByUnit(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unit residents")
	}
	enhanced, err := s.enhanced.CountByUnit(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count unit residents")
	}
	if basic+enhanced > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "unit has residents").
			WithDetails(map[string]any{"residents": basic + enhanced})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete unit")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	unit, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unit not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load unit")
	}
	return unit, nil
}
