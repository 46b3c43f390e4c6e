package contractors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

var maxRating = decimal.NewFromInt(5)

type contractorRepository interface {
	Create(ctx context.Context, contractor *models.Contractor) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Contractor, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Contractor, error)
	Update(ctx context.Context, contractor *models.Contractor) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*ContractorStatsDTO, error)
}

type assignmentCounter interface {
	CountByContractor(ctx context.Context, contractorID uuid.UUID) (int64, error)
}

// Service exposes contractor operations.
type Service interface {
	Create(ctx context.Context, input CreateContractorInput) (*ContractorDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]ContractorDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ContractorDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateContractorInput) (*ContractorDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*ContractorStatsDTO, error)
}

type service struct {
	repo        contractorRepository
	assignments assignmentCounter
}

// NewService builds a contractor service with the provided repositories.
func NewService(repo contractorRepository, assignments assignmentCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("contractor repository required")
	}
	if assignments == nil {
		return nil, fmt.Errorf("maintenance repository required")
	}
	return &service{repo: repo, assignments: assignments}, nil
}

// CreateContractorInput captures creation-time contractor fields.
type CreateContractorInput struct {
	Name            string
	Company         *string
	Email           *string
	Phone           *string
	Specialties     []string
	Rating          decimal.Decimal
	LicenseNumber   *string
	InsuranceExpiry *time.Time
}

// UpdateContractorInput captures the allowed mutable contractor fields.
type UpdateContractorInput struct {
	Name            *string
	Company         *string
	Email           *string
	Phone           *string
	Specialties     *[]string
	Rating          *decimal.Decimal
	LicenseNumber   *string
	InsuranceExpiry *time.Time
	IsActive        *bool
}

func (s *service) Create(ctx context.Context, input CreateContractorInput) (*ContractorDTO, error) {
	fields := pkgerrors.FieldErrors{}

	if strings.TrimSpace(input.Name) == "" {
		fields.Add("name", "must not be blank")
	}
	if input.Rating.IsNegative() || input.Rating.GreaterThan(maxRating) {
		fields.Add("rating", "must be between 0 and 5")
	}
	for i, specialty := range input.Specialties {
		if strings.TrimSpace(specialty) == "" {
			fields.Add(fmt.Sprintf("specialties[%d]", i), "must not be blank")
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	contractor := &models.Contractor{
		Name:            strings.TrimSpace(input.Name),
		Company:         input.Company,
		Email:           input.Email,
		Phone:           input.Phone,
		Specialties:     pq.StringArray(input.Specialties),
		Rating:          input.Rating,
		LicenseNumber:   input.LicenseNumber,
		InsuranceExpiry: input.InsuranceExpiry,
		IsActive:        true,
	}
	if contractor.Specialties == nil {
		contractor.Specialties = pq.StringArray{}
	}
	if err := s.repo.Create(ctx, contractor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create contractor")
	}
	return FromModel(contractor), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]ContractorDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list contractors")
	}
	return fromModels(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*ContractorDTO, error) {
	contractor, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(contractor), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateContractorInput) (*ContractorDTO, error) {
	contractor, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			fields.Add("name", "must not be blank")
		} else {
			contractor.Name = strings.TrimSpace(*input.Name)
		}
	}
	if input.Company != nil {
		contractor.Company = input.Company
	}
	if input.Email != nil {
		contractor.Email = input.Email
	}
	if input.Phone != nil {
		contractor.Phone = input.Phone
	}
	if input.Specialties != nil {
		for i, specialty := range *input.Specialties {
			if strings.TrimSpace(specialty) == "" {
				fields.Add(fmt.Sprintf("specialties[%d]", i), "must not be blank")
			}
		}
		if !fields.HasErrors() {
			contractor.Specialties = pq.StringArray(*input.Specialties)
		}
	}
	if input.Rating != nil {
		if input.Rating.IsNegative() || input.Rating.GreaterThan(maxRating) {
			fields.Add("rating", "must be between 0 and 5")
		} else {
			contractor.Rating = *input.Rating
		}
	}
	if input.LicenseNumber != nil {
		contractor.LicenseNumber = input.LicenseNumber
	}
	if input.InsuranceExpiry != nil {
		contractor.InsuranceExpiry = input.InsuranceExpiry
	}
	if input.IsActive != nil {
		contractor.IsActive = *input.IsActive
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, contractor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update contractor")
	}
	return FromModel(contractor), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	assigned, err := s.assignments.CountByContractor(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count contractor assignments")
	}
	if assigned > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "contractor has assigned requests").
			WithDetails(map[string]any{"maintenance_requests": assigned})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete contractor")
	}
	return nil
}

func (s *service) Stats(ctx context.Context) (*ContractorStatsDTO, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate contractor stats")
	}
	return stats, nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Contractor, error) {
	contractor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "contractor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load contractor")
	}
	return contractor, nil
}
