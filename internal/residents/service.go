package residents

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

type residentRepository interface {
	Create(ctx context.Context, resident *models.Resident) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Resident, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Resident, error)
	Update(ctx context.Context, resident *models.Resident) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type unitFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type residentDependentCounter interface {
	CountByResident(ctx context.Context, residentID uuid.UUID) (int64, error)
}

// Service exposes basic resident operations.
type Service interface {
	Create(ctx context.Context, input CreateResidentInput) (*ResidentDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]ResidentDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ResidentDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateResidentInput) (*ResidentDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, id uuid.UUID) (*ResidentStatsDTO, error)
}

type service struct {
	repo        residentRepository
	units       unitFinder
	payments    residentDependentCounter
	maintenance residentDependentCounter
	violations  residentDependentCounter
}

// NewService builds a resident service with the provided repositories.
func NewService(repo residentRepository, units unitFinder, payments, maintenance, violations residentDependentCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("resident repository required")
	}
	if units == nil {
		return nil, fmt.Errorf("unit repository required")
	}
	if payments == nil || maintenance == nil || violations == nil {
		return nil, fmt.Errorf("dependent repositories required")
	}
	return &service{
		repo:        repo,
		units:       units,
		payments:    payments,
		maintenance: maintenance,
		violations:  violations,
	}, nil
}

// CreateResidentInput captures creation-time resident fields.
type CreateResidentInput struct {
	UnitID                uuid.UUID
	FirstName             string
	LastName              string
	Email                 *string
	Phone                 *string
	ResidentType          string
	MoveInDate            time.Time
	MoveOutDate           *time.Time
	EmergencyContactName  *string
	EmergencyContactPhone *string
}

// UpdateResidentInput captures the allowed mutable resident fields.
type UpdateResidentInput struct {
	FirstName             *string
	LastName              *string
	Email                 *string
	Phone                 *string
	ResidentType          *string
	MoveInDate            *time.Time
	MoveOutDate           *time.Time
	EmergencyContactName  *string
	EmergencyContactPhone *string
}

func (s *service) Create(ctx context.Context, input CreateResidentInput) (*ResidentDTO, error) {
	fields := pkgerrors.FieldErrors{}

	if strings.TrimSpace(input.FirstName) == "" {
		fields.Add("first_name", "must not be blank")
	}
	if strings.TrimSpace(input.LastName) == "" {
		fields.Add("last_name", "must not be blank")
	}
	residentType, err := enums.ParseResidentType(input.ResidentType)
	if err != nil {
		fields.Add("resident_type", "must be a valid resident type")
	}
	if input.MoveInDate.IsZero() {
		fields.Add("move_in_date", "is required")
	}
	if input.MoveOutDate != nil && !input.MoveInDate.IsZero() && input.MoveOutDate.Before(input.MoveInDate) {
		fields.Add("move_out_date", "must not precede move_in_date")
	}

	if input.UnitID == uuid.Nil {
		fields.Add("unit_id", "is required")
	} else {
		ok, err := s.units.Exists(ctx, input.UnitID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check unit")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "unit does not exist").
				WithDetails(map[string]any{"unit_id": input.UnitID})
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	resident := &models.Resident{
		UnitID:                input.UnitID,
		FirstName:             strings.TrimSpace(input.FirstName),
		LastName:              strings.TrimSpace(input.LastName),
		Email:                 input.Email,
		Phone:                 input.Phone,
		ResidentType:          residentType,
		MoveInDate:            input.MoveInDate,
		MoveOutDate:           input.MoveOutDate,
		EmergencyContactName:  input.EmergencyContactName,
		EmergencyContactPhone: input.EmergencyContactPhone,
	}
	if err := s.repo.Create(ctx, resident); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create resident")
	}
	return FromModel(resident), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]ResidentDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list residents")
	}
	return fromModels(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ResidentDTO, error) {
	resident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(resident), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateResidentInput) (*ResidentDTO, error) {
	resident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			fields.Add("first_name", "must not be blank")
		} else {
			resident.FirstName = strings.TrimSpace(*input.FirstName)
		}
	}
	if input.LastName != nil {
		if strings.TrimSpace(*input.LastName) == "" {
			fields.Add("last_name", "must not be blank")
		} else {
			resident.LastName = strings.TrimSpace(*input.LastName)
		}
	}
	if input.Email != nil {
		resident.Email = input.Email
	}
	if input.Phone != nil {
		resident.Phone = input.Phone
	}
	if input.ResidentType != nil {
		residentType, err := enums.ParseResidentType(*input.ResidentType)
		if err != nil {
			fields.Add("resident_type", "must be a valid resident type")
		} else {
			resident.ResidentType = residentType
		}
	}
	if input.MoveInDate != nil {
		if input.MoveInDate.IsZero() {
			fields.Add("move_in_date", "is required")
		} else {
			resident.MoveInDate = *input.MoveInDate
		}
	}
	if input.MoveOutDate != nil {
		resident.MoveOutDate = input.MoveOutDate
	}
	if resident.MoveOutDate != nil && resident.MoveOutDate.Before(resident.MoveInDate) {
		fields.Add("move_out_date", "must not precede move_in_date")
	}
	if input.EmergencyContactName != nil {
		resident.EmergencyContactName = input.EmergencyContactName
	}
	if input.EmergencyContactPhone != nil {
		resident.EmergencyContactPhone = input.EmergencyContactPhone
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, resident); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update resident")
	}
	return FromModel(resident), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	dependents := map[string]int64{}
	for name, counter := range map[string]residentDependentCounter{
		"payments":             s.payments,
		"maintenance_requests": s.maintenance,
		"violations":           s.violations,
	} {
		count, err := counter.CountByResident(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count resident dependents")
		}
		if count > 0 {
			dependents[name] = count
		}
	}
	if len(dependents) > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "resident has dependent records").
			WithDetails(dependents)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete resident")
	}
	return nil
}

func (s *service) Stats(ctx context.Context, id uuid.UUID) (*ResidentStatsDTO, error) {
	resident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	payments, err := s.payments.CountByResident(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count resident payments")
	}
	violations, err := s.violations.CountByResident(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count resident violations")
	}
	maintenance, err := s.maintenance.CountByResident(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count resident requests")
	}

	return &ResidentStatsDTO{
		ResidentID:          id,
		PaymentCount:        payments,
		ViolationCount:      violations,
		MaintenanceCount:    maintenance,
		HasEmergencyContact: resident.EmergencyContactName != nil && resident.EmergencyContactPhone != nil,
	}, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Resident, error) {
	resident, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "resident not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load resident")
	}
	return resident, nil
}
