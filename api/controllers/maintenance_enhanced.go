package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/maintenance"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type enhancedRequestCreateRequest struct {
	UnitID        uuid.UUID        `json:"unit_id" validate:"required"`
	PropertyID    uuid.UUID        `json:"property_id" validate:"required"`
	ResidentID    uuid.UUID        `json:"resident_id" validate:"required"`
	ContractorID  *uuid.UUID       `json:"contractor_id,omitempty"`
	CreatedBy     uuid.UUID        `json:"created_by" validate:"required"`
	Title         string           `json:"title" validate:"required,min=1"`
	Description   string           `json:"description" validate:"required,min=1"`
	Category      string           `json:"category" validate:"required"`
	Priority      string           `json:"priority,omitempty"`
	IsEmergency   bool             `json:"is_emergency"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
	ScheduledDate *time.Time       `json:"scheduled_date,omitempty"`
}

func (req enhancedRequestCreateRequest) toInput() maintenance.CreateEnhancedInput {
	return maintenance.CreateEnhancedInput{
		UnitID:        req.UnitID,
		PropertyID:    req.PropertyID,
		ResidentID:    req.ResidentID,
		ContractorID:  req.ContractorID,
		CreatedBy:     req.CreatedBy,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      req.Priority,
		IsEmergency:   req.IsEmergency,
		EstimatedCost: req.EstimatedCost,
		ScheduledDate: req.ScheduledDate,
	}
}

type enhancedRequestUpdateRequest struct {
	Title         *string          `json:"title,omitempty" validate:"omitempty,min=1"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,min=1"`
	Category      *string          `json:"category,omitempty"`
	Priority      *string          `json:"priority,omitempty"`
	Status        *string          `json:"status,omitempty"`
	IsEmergency   *bool            `json:"is_emergency,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
	ScheduledDate *time.Time       `json:"scheduled_date,omitempty"`
}

func (req enhancedRequestUpdateRequest) toInput() maintenance.UpdateEnhancedInput {
	return maintenance.UpdateEnhancedInput{
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Priority:      req.Priority,
		Status:        req.Status,
		IsEmergency:   req.IsEmergency,
		EstimatedCost: req.EstimatedCost,
		ScheduledDate: req.ScheduledDate,
	}
}

type assignContractorRequest struct {
	ContractorID uuid.UUID `json:"contractor_id" validate:"required"`
}

type workLogCreateRequest struct {
	WorkerName      string           `json:"worker_name" validate:"required,min=1"`
	WorkDate        time.Time        `json:"work_date" validate:"required"`
	HoursWorked     decimal.Decimal  `json:"hours_worked"`
	Cost            *decimal.Decimal `json:"cost,omitempty"`
	WorkDescription string           `json:"work_description" validate:"required,min=1"`
	CreatedBy       *uuid.UUID       `json:"created_by,omitempty"`
}

func (req workLogCreateRequest) toInput() maintenance.CreateWorkLogInput {
	return maintenance.CreateWorkLogInput{
		WorkerName:      req.WorkerName,
		WorkDate:        req.WorkDate,
		HoursWorked:     req.HoursWorked,
		Cost:            req.Cost,
		WorkDescription: req.WorkDescription,
		CreatedBy:       req.CreatedBy,
	}
}

type workLogUpdateRequest struct {
	WorkerName      *string          `json:"worker_name,omitempty" validate:"omitempty,min=1"`
	WorkDate        *time.Time       `json:"work_date,omitempty"`
	HoursWorked     *decimal.Decimal `json:"hours_worked,omitempty"`
	Cost            *decimal.Decimal `json:"cost,omitempty"`
	WorkDescription *string          `json:"work_description,omitempty" validate:"omitempty,min=1"`
}

func (req workLogUpdateRequest) toInput() maintenance.UpdateWorkLogInput {
	return maintenance.UpdateWorkLogInput{
		WorkerName:      req.WorkerName,
		WorkDate:        req.WorkDate,
		HoursWorked:     req.HoursWorked,
		Cost:            req.Cost,
		WorkDescription: req.WorkDescription,
	}
}

// EnhancedMaintenanceCreate files a tracked request with property and author context.
func EnhancedMaintenanceCreate(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enhancedRequestCreateRequest
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

// EnhancedMaintenanceList returns tracked requests with the full filter set.
func EnhancedMaintenanceList(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := maintenance.EnhancedListFilter{}
		if filter.UnitID, err = queryUUIDPtr(r, "unit_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.PropertyID, err = queryUUIDPtr(r, "property_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.ResidentID, err = queryUUIDPtr(r, "resident_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.ContractorID, err = queryUUIDPtr(r, "contractor_id"); err != nil {
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
		if filter.IsEmergency, err = queryBool(r, "is_emergency"); err != nil {
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

// EnhancedMaintenanceGet returns one tracked request by id.
func EnhancedMaintenanceGet(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
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

// EnhancedMaintenanceUpdate applies partial changes, enforcing status transitions.
func EnhancedMaintenanceUpdate(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req enhancedRequestUpdateRequest
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

// EnhancedMaintenanceDelete removes a tracked request and its work logs.
func EnhancedMaintenanceDelete(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
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

// EnhancedMaintenanceAssign routes an open request to a contractor.
func EnhancedMaintenanceAssign(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req assignContractorRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		request, err := svc.AssignContractor(r.Context(), id, req.ContractorID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, request)
	}
}

// EnhancedMaintenanceStats returns tracked-request aggregates.
func EnhancedMaintenanceStats(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}

// WorkLogCreate appends a work log entry to an open request.
func WorkLogCreate(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, err := pathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req workLogCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.AddWorkLog(r.Context(), requestID, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

// WorkLogList returns a request's work log in work-date order.
func WorkLogList(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, err := pathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListWorkLogs(r.Context(), requestID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// WorkLogStats returns per-request labor and cost totals.
func WorkLogStats(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID, err := pathID(r, "requestID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.WorkLogStats(r.Context(), requestID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}

// WorkLogListAll returns work logs across requests, filterable by request,
// worker, and work date.
func WorkLogListAll(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filter maintenance.WorkLogListFilter
		if filter.RequestID, err = queryUUIDPtr(r, "maintenance_request_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.WorkerName = queryString(r, "worker_name")
		if filter.WorkDate, err = validators.ParseQueryDate(r, "work_date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListAllWorkLogs(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// WorkLogGet returns a single work log entry.
func WorkLogGet(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "workLogID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.GetWorkLog(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entry)
	}
}

// WorkLogUpdate corrects an entry on a still-open request.
func WorkLogUpdate(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "workLogID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req workLogUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.UpdateWorkLog(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entry)
	}
}

// WorkLogDelete removes an entry from a still-open request.
func WorkLogDelete(svc maintenance.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "workLogID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteWorkLog(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
