package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/maintenance"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type maintenanceCreateRequest struct {
	UnitID      uuid.UUID `json:"unit_id" validate:"required"`
	ResidentID  uuid.UUID `json:"resident_id" validate:"required"`
	Title       string    `json:"title" validate:"required,min=1"`
	Description string    `json:"description" validate:"required,min=1"`
	Category    *string   `json:"category,omitempty"`
	Priority    string    `json:"priority,omitempty"`
	AssignedTo  *string   `json:"assigned_to,omitempty"`
}

func (req maintenanceCreateRequest) toInput() maintenance.CreateRequestInput {
	return maintenance.CreateRequestInput{
		UnitID:      req.UnitID,
		ResidentID:  req.ResidentID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
	}
}

type maintenanceUpdateRequest struct {
	Title       *string          `json:"title,omitempty" validate:"omitempty,min=1"`
	Description *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Category    *string          `json:"category,omitempty"`
	Priority    *string          `json:"priority,omitempty"`
	Status      *string          `json:"status,omitempty"`
	AssignedTo  *string          `json:"assigned_to,omitempty"`
	ActualCost  *decimal.Decimal `json:"actual_cost,omitempty"`
}

func (req maintenanceUpdateRequest) toInput() maintenance.UpdateRequestInput {
	return maintenance.UpdateRequestInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		ActualCost:  req.ActualCost,
	}
}

// MaintenanceCreate files a new maintenance request.
func MaintenanceCreate(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req maintenanceCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, request)
	}
}

// MaintenanceList returns requests with unit, resident, status and priority filters.
func MaintenanceList(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := maintenance.ListFilter{}
		if filter.UnitID, err = queryUUIDPtr(r, "unit_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.ResidentID, err = queryUUIDPtr(r, "resident_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := queryString(r, "status"); raw != nil {
			status, err := enums.ParseMaintenanceStatus(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filter.Status = &status
		}
		if raw := queryString(r, "priority"); raw != nil {
			priority, err := enums.ParseMaintenancePriority(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority filter"))
				return
			}
			filter.Priority = &priority
		}

		list, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// MaintenanceGet returns one request by id.
func MaintenanceGet(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}

// MaintenanceUpdate applies partial changes, enforcing status transitions.
func MaintenanceUpdate(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req maintenanceUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}

// MaintenanceDelete removes a request.
func MaintenanceDelete(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "requestID")
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

// MaintenanceStats returns request aggregates.
func MaintenanceStats(svc maintenance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
