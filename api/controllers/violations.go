package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/violations"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type violationCreateRequest struct {
	UnitID      uuid.UUID       `json:"unit_id" validate:"required"`
	ResidentID  *uuid.UUID      `json:"resident_id,omitempty"`
	Description string          `json:"description" validate:"required,min=1"`
	Severity    string          `json:"severity" validate:"required"`
	FineAmount  decimal.Decimal `json:"fine_amount"`
}

func (req violationCreateRequest) toInput() violations.CreateInput {
	return violations.CreateInput{
		UnitID:      req.UnitID,
		ResidentID:  req.ResidentID,
		Description: req.Description,
		Severity:    enums.ViolationSeverity(req.Severity),
		FineAmount:  req.FineAmount,
	}
}

type violationUpdateRequest struct {
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Severity    *string          `json:"severity,omitempty"`
	Status      *string          `json:"status,omitempty"`
	FineAmount  *decimal.Decimal `json:"fine_amount,omitempty"`
}

func (req violationUpdateRequest) toInput() violations.UpdateInput {
	in := violations.UpdateInput{
		Description: req.Description,
		FineAmount:  req.FineAmount,
	}
	if req.Severity != nil {
		severity := enums.ViolationSeverity(*req.Severity)
		in.Severity = &severity
	}
	if req.Status != nil {
		status := enums.ViolationStatus(*req.Status)
		in.Status = &status
	}
	return in
}

// ViolationCreate files a violation against a unit.
func ViolationCreate(svc violations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req violationCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		violation, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, violation)
	}
}

// ViolationList returns violations with unit, resident, status and severity filters.
func ViolationList(svc violations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := violations.ListFilter{}
		if filter.UnitID, err = queryUUIDPtr(r, "unit_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.ResidentID, err = queryUUIDPtr(r, "resident_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := queryString(r, "status"); raw != nil {
			status, err := enums.ParseViolationStatus(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filter.Status = &status
		}
		if raw := queryString(r, "severity"); raw != nil {
			severity, err := enums.ParseViolationSeverity(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid severity filter"))
				return
			}
			filter.Severity = &severity
		}

		list, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ViolationGet returns one violation by id.
func ViolationGet(svc violations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "violationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		violation, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, violation)
	}
}

// ViolationUpdate applies partial changes to a violation.
func ViolationUpdate(svc violations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "violationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req violationUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		violation, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, violation)
	}
}

// ViolationResolve marks the violation resolved with a resolution timestamp.
func ViolationResolve(svc violations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "violationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		violation, err := svc.Resolve(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, violation)
	}
}

// ViolationDelete removes a violation.
func ViolationDelete(svc violations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "violationID")
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

// ViolationStats returns violation aggregates and fine totals.
func ViolationStats(svc violations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
