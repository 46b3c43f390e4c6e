package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/payments"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type paymentCreateRequest struct {
	ResidentID    uuid.UUID       `json:"resident_id" validate:"required"`
	UnitID        uuid.UUID       `json:"unit_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentType   string          `json:"payment_type" validate:"required"`
	PaymentMethod string          `json:"payment_method" validate:"required"`
	PaymentDate   time.Time       `json:"payment_date" validate:"required"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Status        string          `json:"status,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
}

func (req paymentCreateRequest) toInput() payments.CreatePaymentInput {
	return payments.CreatePaymentInput{
		ResidentID:    req.ResidentID,
		UnitID:        req.UnitID,
		Amount:        req.Amount,
		PaymentType:   req.PaymentType,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   req.PaymentDate,
		DueDate:       req.DueDate,
		Status:        req.Status,
		Notes:         req.Notes,
	}
}

type paymentUpdateRequest struct {
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	PaymentType   *string          `json:"payment_type,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	PaymentDate   *time.Time       `json:"payment_date,omitempty"`
	DueDate       *time.Time       `json:"due_date,omitempty"`
	Status        *string          `json:"status,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

func (req paymentUpdateRequest) toInput() payments.UpdatePaymentInput {
	return payments.UpdatePaymentInput{
		Amount:        req.Amount,
		PaymentType:   req.PaymentType,
		PaymentMethod: req.PaymentMethod,
		PaymentDate:   req.PaymentDate,
		DueDate:       req.DueDate,
		Status:        req.Status,
		Notes:         req.Notes,
	}
}

func paymentFilterFromQuery(r *http.Request) (payments.ListFilter, error) {
	filter := payments.ListFilter{}
	var err error
	if filter.ResidentID, err = queryUUIDPtr(r, "resident_id"); err != nil {
		return filter, err
	}
	if filter.UnitID, err = queryUUIDPtr(r, "unit_id"); err != nil {
		return filter, err
	}
	if raw := queryString(r, "status"); raw != nil {
		status, err := enums.ParsePaymentStatus(*raw)
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
		}
		filter.Status = &status
	}
	if raw := queryString(r, "payment_type"); raw != nil {
		paymentType, err := enums.ParsePaymentType(*raw)
		if err != nil {
			return filter, pkgerrors.New(pkgerrors.CodeValidation, "invalid payment_type filter")
		}
		filter.PaymentType = &paymentType
	}
	if filter.From, err = validators.ParseQueryDate(r, "from"); err != nil {
		return filter, err
	}
	if filter.To, err = validators.ParseQueryDate(r, "to"); err != nil {
		return filter, err
	}
	return filter, nil
}

// PaymentCreate records a payment against a resident and unit.
func PaymentCreate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req paymentCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, payment)
	}
}

// PaymentList returns payments with resident, unit, status, type and date filters.
func PaymentList(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := paymentFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PaymentGet returns one payment by id.
func PaymentGet(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "paymentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// PaymentUpdate applies partial changes to a payment.
func PaymentUpdate(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "paymentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req paymentUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payment, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, payment)
	}
}

// PaymentDelete removes a payment.
func PaymentDelete(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "paymentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PaymentStats returns payment aggregates over the same filters as listing.
func PaymentStats(svc payments.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := paymentFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
