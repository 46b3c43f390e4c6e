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
	"github.com/ridgeline-hq/hoa-backend/pkg/types"
)

type enhancedRepository interface {
	Create(ctx context.Context, resident *models.ResidentEnhanced) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ResidentEnhanced, error)
	List(ctx context.Context, filter EnhancedListFilter, page pagination.Params) ([]models.ResidentEnhanced, error)
	Update(ctx context.Context, resident *models.ResidentEnhanced) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetPrimary(ctx context.Context, unitID, residentID uuid.UUID) error
	StatsSummary(ctx context.Context) (*EnhancedStatsDTO, error)
}

type propertyFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type userFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// EnhancedService exposes enhanced resident operations.
type EnhancedService interface {
	Create(ctx context.Context, input CreateEnhancedInput) (*EnhancedResidentDTO, error)
	List(ctx context.Context, filter EnhancedListFilter, page pagination.Params) ([]EnhancedResidentDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*EnhancedResidentDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEnhancedInput) (*EnhancedResidentDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Activate(ctx context.Context, id uuid.UUID) (*EnhancedResidentDTO, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*EnhancedResidentDTO, error)
	SetPrimary(ctx context.Context, id uuid.UUID) (*EnhancedResidentDTO, error)
	Vehicles(ctx context.Context, id uuid.UUID) (types.VehicleList, error)
	Pets(ctx context.Context, id uuid.UUID) (types.PetList, error)
	EmergencyContact(ctx context.Context, id uuid.UUID) (*types.EmergencyContact, error)
	StatsSummary(ctx context.Context) (*EnhancedStatsDTO, error)
}

type enhancedService struct {
	repo       enhancedRepository
	units      unitFinder
	properties propertyFinder
	users      userFinder
	requests   residentDependentCounter
}

// NewEnhancedService builds an enhanced resident service with the provided repositories.
func NewEnhancedService(repo enhancedRepository, units unitFinder, properties propertyFinder, users userFinder, requests residentDependentCounter) (EnhancedService, error) {
	if repo == nil {
		return nil, fmt.Errorf("enhanced resident repository required")
	}
	if units == nil || properties == nil || users == nil {
		return nil, fmt.Errorf("reference repositories required")
	}
	if requests == nil {
		return nil, fmt.Errorf("request counter required")
	}
	return &enhancedService{repo: repo, units: units, properties: properties, users: users, requests: requests}, nil
}

// CreateEnhancedInput captures creation-time enhanced resident fields.
type CreateEnhancedInput struct {
	UserID           *uuid.UUID
	UnitID           uuid.UUID
	PropertyID       uuid.UUID
	FirstName        string
	LastName         string
	Email            *string
	Phone            *string
	ResidentType     string
	Role             string
	IsPrimary        bool
	MoveInDate       time.Time
	MoveOutDate      *time.Time
	EmergencyContact *types.EmergencyContact
	VehicleInfo      types.VehicleList
	PetInfo          types.PetList
}

// UpdateEnhancedInput captures the allowed mutable enhanced resident fields.
type UpdateEnhancedInput struct {
	FirstName        *string
	LastName         *string
	Email            *string
	Phone            *string
	ResidentType     *string
	Role             *string
	MoveInDate       *time.Time
	MoveOutDate      *time.Time
	EmergencyContact *types.EmergencyContact
	VehicleInfo      *types.VehicleList
	PetInfo          *types.PetList
}

func (s *enhancedService) Create(ctx context.Context, input CreateEnhancedInput) (*EnhancedResidentDTO, error) {
	fields := pkgerrors.FieldErrors{}

	if strings.TrimSpace(input.FirstName) == "" {
		fields.Add("first_name", "must not be blank")
	}
	if strings.TrimSpace(input.LastName) == "" {
		fields.Add("last_name", "must not be blank")
	}
	residentType, err := enums.ParseOccupancyType(input.ResidentType)
	if err != nil {
		fields.Add("resident_type", "must be a valid occupancy type")
	}
	role := enums.UserRoleResident
	if input.Role != "" {
		role, err = enums.ParseUserRole(input.Role)
		if err != nil {
			fields.Add("role", "must be a valid role")
		}
	}
	if input.MoveInDate.IsZero() {
		fields.Add("move_in_date", "is required")
	}
	if input.MoveOutDate != nil && !input.MoveInDate.IsZero() && input.MoveOutDate.Before(input.MoveInDate) {
		fields.Add("move_out_date", "must not precede move_in_date")
	}
	validateRegistries(fields, input.VehicleInfo, input.PetInfo)

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, input.UnitID, input.PropertyID, input.UserID); err != nil {
		return nil, err
	}

	resident := &models.ResidentEnhanced{
		UserID:           input.UserID,
		UnitID:           input.UnitID,
		PropertyID:       input.PropertyID,
		FirstName:        strings.TrimSpace(input.FirstName),
		LastName:         strings.TrimSpace(input.LastName),
		Email:            input.Email,
		Phone:            input.Phone,
		ResidentType:     residentType,
		Role:             role,
		IsActive:         true,
		MoveInDate:       input.MoveInDate,
		MoveOutDate:      input.MoveOutDate,
		EmergencyContact: input.EmergencyContact,
		VehicleInfo:      input.VehicleInfo,
		PetInfo:          input.PetInfo,
	}
	if err := s.repo.Create(ctx, resident); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create enhanced resident")
	}

	if input.IsPrimary {
		if err := s.repo.SetPrimary(ctx, resident.UnitID, resident.ID); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set primary resident")
		}
		resident.IsPrimary = true
	}
	return EnhancedFromModel(resident), nil
}

func (s *enhancedService) List(ctx context.Context, filter EnhancedListFilter, page pagination.Params) ([]EnhancedResidentDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list enhanced residents")
	}
	return enhancedFromModels(rows), nil
}

func (s *enhancedService) GetByID(ctx context.Context, id uuid.UUID) (*EnhancedResidentDTO, error) {
	resident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return EnhancedFromModel(resident), nil
}

func (s *enhancedService) Update(ctx context.Context, id uuid.UUID, input UpdateEnhancedInput) (*EnhancedResidentDTO, error) {
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
		residentType, err := enums.ParseOccupancyType(*input.ResidentType)
		if err != nil {
			fields.Add("resident_type", "must be a valid occupancy type")
		} else {
			resident.ResidentType = residentType
		}
	}
	if input.Role != nil {
		role, err := enums.ParseUserRole(*input.Role)
		if err != nil {
			fields.Add("role", "must be a valid role")
		} else {
			resident.Role = role
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
	if input.EmergencyContact != nil {
		resident.EmergencyContact = input.EmergencyContact
	}
	if input.VehicleInfo != nil {
		resident.VehicleInfo = *input.VehicleInfo
	}
	if input.PetInfo != nil {
		resident.PetInfo = *input.PetInfo
	}
	validateRegistries(fields, resident.VehicleInfo, resident.PetInfo)

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, resident); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update enhanced resident")
	}
	return EnhancedFromModel(resident), nil
}

func (s *enhancedService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	count, err := s.requests.CountByResident(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count resident dependents")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "resident has dependent records").
			WithDetails(map[string]int64{"maintenance_requests": count})
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete enhanced resident")
	}
	return nil
}

func (s *enhancedService) Activate(ctx context.Context, id uuid.UUID) (*EnhancedResidentDTO, error) {
	resident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !resident.IsActive {
		resident.IsActive = true
		if err := s.repo.Update(ctx, resident); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "activate resident")
		}
	}
	return EnhancedFromModel(resident), nil
}

// Deactivate retires the resident. Primary status is surrendered and is not
// restored by a later Activate.
func (s *enhancedService) Deactivate(ctx context.Context, id uuid.UUID) (*EnhancedResidentDTO, error) {
	resident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if resident.IsActive || resident.IsPrimary {
		resident.IsActive = false
		resident.IsPrimary = false
		if err := s.repo.Update(ctx, resident); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivate resident")
		}
	}
	return EnhancedFromModel(resident), nil
}

func (s *enhancedService) SetPrimary(ctx context.Context, id uuid.UUID) (*EnhancedResidentDTO, error) {
	resident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !resident.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeState, "inactive resident cannot be primary")
	}
	if err := s.repo.SetPrimary(ctx, resident.UnitID, resident.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set primary resident")
	}
	resident.IsPrimary = true
	return EnhancedFromModel(resident), nil
}

func (s *enhancedService) Vehicles(ctx context.Context, id uuid.UUID) (types.VehicleList, error) {
	resident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if resident.VehicleInfo == nil {
		return types.VehicleList{}, nil
	}
	return resident.VehicleInfo, nil
}

func (s *enhancedService) Pets(ctx context.Context, id uuid.UUID) (types.PetList, error) {
	resident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if resident.PetInfo == nil {
		return types.PetList{}, nil
	}
	return resident.PetInfo, nil
}

func (s *enhancedService) EmergencyContact(ctx context.Context, id uuid.UUID) (*types.EmergencyContact, error) {
	resident, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return resident.EmergencyContact, nil
}

func (s *enhancedService) StatsSummary(ctx context.Context) (*EnhancedStatsDTO, error) {
	stats, err := s.repo.StatsSummary(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate resident stats")
	}
	return stats, nil
}

func (s *enhancedService) checkReferences(ctx context.Context, unitID, propertyID uuid.UUID, userID *uuid.UUID) error {
	if unitID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(pkgerrors.FieldErrors{"unit_id": "is required"})
	}
	if propertyID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(pkgerrors.FieldErrors{"property_id": "is required"})
	}

	ok, err := s.units.Exists(ctx, unitID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check unit")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeReferential, "unit does not exist").
			WithDetails(map[string]any{"unit_id": unitID})
	}

	ok, err = s.properties.Exists(ctx, propertyID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check property")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeReferential, "property does not exist").
			WithDetails(map[string]any{"property_id": propertyID})
	}

	if userID != nil {
		ok, err = s.users.Exists(ctx, *userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeReferential, "user does not exist").
				WithDetails(map[string]any{"user_id": *userID})
		}
	}
	return nil
}

func validateRegistries(fields pkgerrors.FieldErrors, vehicles types.VehicleList, pets types.PetList) {
	for i, v := range vehicles {
		if strings.TrimSpace(v.Make) == "" || strings.TrimSpace(v.Model) == "" {
			fields.Add(fmt.Sprintf("vehicle_info[%d]", i), "make and model are required")
		}
	}
	for i, p := range pets {
		if strings.TrimSpace(p.Name) == "" {
			fields.Add(fmt.Sprintf("pet_info[%d]", i), "name is required")
		}
		if !p.Type.IsValid() {
			fields.Add(fmt.Sprintf("pet_info[%d].type", i), "must be a valid pet type")
		}
	}
}

func (s *enhancedService) load(ctx context.Context, id uuid.UUID) (*models.ResidentEnhanced, error) {
	resident, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "resident not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load enhanced resident")
	}
	return resident, nil
}
