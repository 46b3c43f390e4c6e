package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

type requestRepository interface {
	Create(ctx context.Context, request *models.MaintenanceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.MaintenanceRequest, error)
	Update(ctx context.Context, request *models.MaintenanceRequest) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*RequestStatsDTO, error)
}

type referenceFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service exposes basic maintenance request operations.
type Service interface {
	Create(ctx context.Context, input CreateRequestInput) (*RequestDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]RequestDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RequestDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateRequestInput) (*RequestDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*RequestStatsDTO, error)
}

type service struct {
	repo      requestRepository
	units     referenceFinder
	residents referenceFinder
}

// NewService builds a basic maintenance service with the provided repositories.
func NewService(repo requestRepository, units, residents referenceFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	if units == nil || residents == nil {
		return nil, fmt.Errorf("reference repositories required")
	}
	return &service{repo: repo, units: units, residents: residents}, nil
}

// CreateRequestInput captures creation-time request fields.
type CreateRequestInput struct {
	UnitID      uuid.UUID
	ResidentID  uuid.UUID
	Title       string
	Description string
	Category    *string
	Priority    string
	AssignedTo  *string
}

// UpdateRequestInput captures the allowed mutable request fields.
type UpdateRequestInput struct {
	Title       *string
	Description *string
	Category    *string
	Priority    *string
	Status      *string
	AssignedTo  *string
	ActualCost  *decimal.Decimal
}

func (s *service) Create(ctx context.Context, input CreateRequestInput) (*RequestDTO, error) {
	fields := pkgerrors.FieldErrors{}

	if strings.TrimSpace(input.Title) == "" {
		fields.Add("title", "must not be blank")
	}
	if strings.TrimSpace(input.Description) == "" {
		fields.Add("description", "must not be blank")
	}
	priority := enums.MaintenancePriorityMedium
	if input.Priority != "" {
		parsed, err := enums.ParseMaintenancePriority(input.Priority)
		if err != nil {
			fields.Add("priority", "must be a valid priority")
		} else {
			priority = parsed
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, input.UnitID, input.ResidentID); err != nil {
		return nil, err
	}

	request := &models.MaintenanceRequest{
		UnitID:      input.UnitID,
		ResidentID:  input.ResidentID,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Category:    input.Category,
		Priority:    priority,
		Status:      enums.MaintenanceStatusOpen,
		AssignedTo:  input.AssignedTo,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create maintenance request")
	}
	return FromModel(request), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]RequestDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list maintenance requests")
	}
	return fromModels(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*RequestDTO, error) {
	request, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(request), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateRequestInput) (*RequestDTO, error) {
	request, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			fields.Add("title", "must not be blank")
		} else {
			request.Title = strings.TrimSpace(*input.Title)
		}
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			fields.Add("description", "must not be blank")
		} else {
			request.Description = strings.TrimSpace(*input.Description)
		}
	}
	if input.Category != nil {
		request.Category = input.Category
	}
	if input.Priority != nil {
		priority, err := enums.ParseMaintenancePriority(*input.Priority)
		if err != nil {
			fields.Add("priority", "must be a valid priority")
		} else {
			request.Priority = priority
		}
	}
	if input.AssignedTo != nil {
		request.AssignedTo = input.AssignedTo
	}
	if input.ActualCost != nil {
		if input.ActualCost.IsNegative() {
			fields.Add("actual_cost", "must not be negative")
		} else {
			request.ActualCost = input.ActualCost
		}
	}

	if input.Status != nil {
		next, err := enums.ParseMaintenanceStatus(*input.Status)
		if err != nil {
			fields.Add("status", "must be a valid maintenance status")
		} else if !request.Status.CanTransitionTo(next) {
			return nil, pkgerrors.New(pkgerrors.CodeState, "status transition not allowed").
				WithDetails(map[string]any{"from": request.Status, "to": next})
		} else {
			request.Status = next
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update maintenance request")
	}
	return FromModel(request), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete maintenance request")
	}
	return nil
}

func (s *service) Stats(ctx context.Context) (*RequestStatsDTO, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate maintenance stats")
	}
	return stats, nil
}

func (s *service) checkReferences(ctx context.Context, unitID, residentID uuid.UUID) error {
	if unitID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(pkgerrors.FieldErrors{"unit_id": "is required"})
	}
	if residentID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(pkgerrors.FieldErrors{"resident_id": "is required"})
	}

	ok, err := s.units.Exists(ctx, unitID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check unit")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeReferential, "unit does not exist").
			WithDetails(map[string]any{"unit_id": unitID})
	}

	ok, err = s.residents.Exists(ctx, residentID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check resident")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeReferential, "resident does not exist").
			WithDetails(map[string]any{"resident_id": residentID})
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequest, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "maintenance request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load maintenance request")
	}
	return request, nil
}
