package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/residents"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type residentCreateRequest struct {
	UnitID                uuid.UUID  `json:"unit_id" validate:"required"`
	FirstName             string     `json:"first_name" validate:"required,min=1"`
	LastName              string     `json:"last_name" validate:"required,min=1"`
	Email                 *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone                 *string    `json:"phone,omitempty"`
	ResidentType          string     `json:"resident_type" validate:"required"`
	MoveInDate            time.Time  `json:"move_in_date" validate:"required"`
	MoveOutDate           *time.Time `json:"move_out_date,omitempty"`
	EmergencyContactName  *string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone,omitempty"`
}

func (req residentCreateRequest) toInput() residents.CreateResidentInput {
	return residents.CreateResidentInput{
		UnitID:                req.UnitID,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		ResidentType:          req.ResidentType,
		MoveInDate:            req.MoveInDate,
		MoveOutDate:           req.MoveOutDate,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}
}

type residentUpdateRequest struct {
	FirstName             *string    `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName              *string    `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Email                 *string    `json:"email,omitempty" validate:"omitempty,email"`
	Phone                 *string    `json:"phone,omitempty"`
	ResidentType          *string    `json:"resident_type,omitempty"`
	MoveInDate            *time.Time `json:"move_in_date,omitempty"`
	MoveOutDate           *time.Time `json:"move_out_date,omitempty"`
	EmergencyContactName  *string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone,omitempty"`
}

func (req residentUpdateRequest) toInput() residents.UpdateResidentInput {
	return residents.UpdateResidentInput{
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		ResidentType:          req.ResidentType,
		MoveInDate:            req.MoveInDate,
		MoveOutDate:           req.MoveOutDate,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}
}

// ResidentCreate registers a new resident in a unit.
func ResidentCreate(svc residents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req residentCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resident, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, resident)
	}
}

// ResidentList returns residents with optional unit and type filters.
func ResidentList(svc residents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := residents.ListFilter{}
		if filter.UnitID, err = queryUUIDPtr(r, "unit_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := queryString(r, "resident_type"); raw != nil {
			residentType, err := enums.ParseResidentType(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid resident_type filter"))
				return
			}
			filter.ResidentType = &residentType
		}

		list, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ResidentGet returns one resident by id.
func ResidentGet(svc residents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resident, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resident)
	}
}

// ResidentUpdate applies partial changes to a resident.
func ResidentUpdate(svc residents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req residentUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resident, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resident)
	}
}

// ResidentDelete removes a resident without payments, requests or violations.
func ResidentDelete(svc residents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
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

// ResidentStats returns activity counts for one resident.
func ResidentStats(svc residents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
