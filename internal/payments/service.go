package payments

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

type paymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, filter ListFilter) (*PaymentStatsDTO, error)
}

type referenceFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service exposes payment operations.
type Service interface {
	Create(ctx context.Context, input CreatePaymentInput) (*PaymentDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]PaymentDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*PaymentDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdatePaymentInput) (*PaymentDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context, filter ListFilter) (*PaymentStatsDTO, error)
}

type service struct {
	repo      paymentRepository
	residents referenceFinder
	units     referenceFinder
}

// NewService builds a payment service with the provided repositories.
func NewService(repo paymentRepository, residents, units referenceFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payment repository required")
	}
	if residents == nil || units == nil {
		return nil, fmt.Errorf("reference repositories required")
	}
	return &service{repo: repo, residents: residents, units: units}, nil
}

// CreatePaymentInput captures creation-time payment fields.
type CreatePaymentInput struct {
	ResidentID    uuid.UUID
	UnitID        uuid.UUID
	Amount        decimal.Decimal
	PaymentType   string
	PaymentMethod string
	PaymentDate   time.Time
	DueDate       *time.Time
	Status        string
	Notes         *string
}

// UpdatePaymentInput captures the allowed mutable payment fields.
type UpdatePaymentInput struct {
	Amount        *decimal.Decimal
	PaymentType   *string
	PaymentMethod *string
	PaymentDate   *time.Time
	DueDate       *time.Time
	Status        *string
	Notes         *string
}

func (s *service) Create(ctx context.Context, input CreatePaymentInput) (*PaymentDTO, error) {
	fields := pkgerrors.FieldErrors{}

	if !input.Amount.IsPositive() {
		fields.Add("amount", "must be positive")
	}
	paymentType, err := enums.ParsePaymentType(input.PaymentType)
	if err != nil {
		fields.Add("payment_type", "must be a valid payment type")
	}
	paymentMethod, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		fields.Add("payment_method", "must be a valid payment method")
	}
	status := enums.PaymentStatusPending
	if input.Status != "" {
		status, err = enums.ParsePaymentStatus(input.Status)
		if err != nil {
			fields.Add("status", "must be a valid payment status")
		}
	}
	if input.PaymentDate.IsZero() {
		fields.Add("payment_date", "is required")
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, input.ResidentID, input.UnitID); err != nil {
		return nil, err
	}

	payment := &models.Payment{
		ResidentID:    input.ResidentID,
		UnitID:        input.UnitID,
		Amount:        input.Amount,
		PaymentType:   paymentType,
		PaymentMethod: paymentMethod,
		PaymentDate:   input.PaymentDate,
		DueDate:       input.DueDate,
		Status:        status,
		Notes:         input.Notes,
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create payment")
	}
	return FromModel(payment), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]PaymentDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payments")
	}
	return fromModels(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*PaymentDTO, error) {
	payment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(payment), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdatePaymentInput) (*PaymentDTO, error) {
	payment, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if input.Amount != nil {
		if !input.Amount.IsPositive() {
			fields.Add("amount", "must be positive")
		} else {
			payment.Amount = *input.Amount
		}
	}
	if input.PaymentType != nil {
		paymentType, err := enums.ParsePaymentType(*input.PaymentType)
		if err != nil {
			fields.Add("payment_type", "must be a valid payment type")
		} else {
			payment.PaymentType = paymentType
		}
	}
	if input.PaymentMethod != nil {
		paymentMethod, err := enums.ParsePaymentMethod(*input.PaymentMethod)
		if err != nil {
			fields.Add("payment_method", "must be a valid payment method")
		} else {
			payment.PaymentMethod = paymentMethod
		}
	}
	if input.Status != nil {
		status, err := enums.ParsePaymentStatus(*input.Status)
		if err != nil {
			fields.Add("status", "must be a valid payment status")
		} else {
			payment.Status = status
		}
	}
	if input.PaymentDate != nil {
		if input.PaymentDate.IsZero() {
			fields.Add("payment_date", "is required")
		} else {
			payment.PaymentDate = *input.PaymentDate
		}
	}
	if input.DueDate != nil {
		payment.DueDate = input.DueDate
	}
	if input.Notes != nil {
		payment.Notes = input.Notes
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, payment); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update payment")
	}
	return FromModel(payment), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete payment")
	}
	return nil
}

func (s *service) Stats(ctx context.Context, filter ListFilter) (*PaymentStatsDTO, error) {
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(pkgerrors.FieldErrors{"to": "must not precede from"})
	}
	stats, err := s.repo.Stats(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate payment stats")
	}
	return stats, nil
}

func (s *service) checkReferences(ctx context.Context, residentID, unitID uuid.UUID) error {
	if residentID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(pkgerrors.FieldErrors{"resident_id": "is required"})
	}
	if unitID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(pkgerrors.FieldErrors{"unit_id": "is required"})
	}

	ok, err := s.residents.Exists(ctx, residentID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check resident")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeReferential, "resident does not exist").
			WithDetails(map[string]any{"resident_id": residentID})
	}

	ok, err = s.units.Exists(ctx, unitID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check unit")
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeReferential, "unit does not exist").
			WithDetails(map[string]any{"unit_id": unitID})
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load payment")
	}
	return payment, nil
}
