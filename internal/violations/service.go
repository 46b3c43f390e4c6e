package violations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

type violationRepository interface {
	Create(ctx context.Context, violation *models.Violation) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Violation, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Violation, error)
	Update(ctx context.Context, violation *models.Violation) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*ViolationStatsDTO, error)
}

type referenceFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service enforces violation rules on top of the repository.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*ViolationDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]ViolationDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ViolationDTO, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*ViolationDTO, error)
	Resolve(ctx context.Context, id uuid.UUID) (*ViolationDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*ViolationStatsDTO, error)
}

type service struct {
	repo      violationRepository
	units     referenceFinder
	residents referenceFinder
}

// NewService builds the service with the provided repositories.
func NewService(repo violationRepository, units, residents referenceFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("violation repository required")
	}
	if units == nil || residents == nil {
		return nil, fmt.Errorf("unit and resident repositories required")
	}
	return &service{repo: repo, units: units, residents: residents}, nil
}

// CreateInput carries fields for filing a violation.
type CreateInput struct {
	UnitID      uuid.UUID
	ResidentID  *uuid.UUID
	Description string
	Severity    enums.ViolationSeverity
	FineAmount  decimal.Decimal
}

// UpdateInput carries optional violation mutations.
type UpdateInput struct {
	Description *string
	Severity    *enums.ViolationSeverity
	Status      *enums.ViolationStatus
	FineAmount  *decimal.Decimal
}

// Create files a new violation after validating references and fields.
func (s *service) Create(ctx context.Context, in CreateInput) (*ViolationDTO, error) {
	fields := pkgerrors.FieldErrors{}
	if in.Description == "" {
		fields.Add("description", "description is required")
	}
	if !in.Severity.IsValid() {
		fields.Add("severity", "invalid violation severity")
	}
	if in.FineAmount.IsNegative() {
		fields.Add("fine_amount", "fine amount cannot be negative")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, in.UnitID, in.ResidentID); err != nil {
		return nil, err
	}

	violation := &models.Violation{
		UnitID:      in.UnitID,
		ResidentID:  in.ResidentID,
		Description: in.Description,
		Severity:    in.Severity,
		Status:      enums.ViolationStatusOpen,
		FineAmount:  in.FineAmount,
	}
	if err := s.repo.Create(ctx, violation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create violation")
	}
	return FromModel(violation), nil
}

// GetByID returns a single violation.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ViolationDTO, error) {
	violation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(violation), nil
}

// List returns violations matching the filter.
func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]ViolationDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list violations")
	}
	return fromModels(rows), nil
}

// Update applies partial changes to a violation.
func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*ViolationDTO, error) {
	violation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if in.Description != nil {
		if *in.Description == "" {
			fields.Add("description", "description cannot be empty")
		} else {
			violation.Description = *in.Description
		}
	}
	if in.Severity != nil {
		if !in.Severity.IsValid() {
			fields.Add("severity", "invalid violation severity")
		} else {
			violation.Severity = *in.Severity
		}
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			fields.Add("status", "invalid violation status")
		} else {
			violation.Status = *in.Status
			if *in.Status == enums.ViolationStatusResolved && violation.ResolvedDate == nil {
				now := time.Now().UTC()
				violation.ResolvedDate = &now
			}
		}
	}
	if in.FineAmount != nil {
		if in.FineAmount.IsNegative() {
			fields.Add("fine_amount", "fine amount cannot be negative")
		} else {
			violation.FineAmount = *in.FineAmount
		}
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, violation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update violation")
	}
	return FromModel(violation), nil
}

// Resolve marks the violation resolved and stamps the resolution time.
// Resolving an already resolved violation is a no-op.
func (s *service) Resolve(ctx context.Context, id uuid.UUID) (*ViolationDTO, error) {
	violation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if violation.Status == enums.ViolationStatusResolved {
		return FromModel(violation), nil
	}

	violation.Status = enums.ViolationStatusResolved
	now := time.Now().UTC()
	violation.ResolvedDate = &now
	if err := s.repo.Update(ctx, violation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to resolve violation")
	}
	return FromModel(violation), nil
}

// Delete removes a violation.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete violation")
	}
	return nil
}

// Stats returns aggregate violation figures.
func (s *service) Stats(ctx context.Context) (*ViolationStatsDTO, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to compute violation stats")
	}
	return stats, nil
}

func (s *service) checkReferences(ctx context.Context, unitID uuid.UUID, residentID *uuid.UUID) error {
	if unitID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "unit_id is required")
	}
	ok, err := s.units.Exists(ctx, unitID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to check unit")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeReferential, "referenced unit does not exist")
	}
	if residentID != nil {
		ok, err := s.residents.Exists(ctx, *residentID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to check resident")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeReferential, "referenced resident does not exist")
		}
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Violation, error) {
	violation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "violation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load violation")
	}
	return violation, nil
}
