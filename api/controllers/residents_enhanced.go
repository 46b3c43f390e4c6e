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
	"github.com/ridgeline-hq/hoa-backend/pkg/types"
)

type enhancedResidentCreateRequest struct {
	UserID           *uuid.UUID              `json:"user_id,omitempty"`
	UnitID           uuid.UUID               `json:"unit_id" validate:"required"`
	PropertyID       uuid.UUID               `json:"property_id" validate:"required"`
	FirstName        string                  `json:"first_name" validate:"required,min=1"`
	LastName         string                  `json:"last_name" validate:"required,min=1"`
	Email            *string                 `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string                 `json:"phone,omitempty"`
	ResidentType     string                  `json:"resident_type" validate:"required"`
	Role             string                  `json:"role,omitempty"`
	IsPrimary        bool                    `json:"is_primary"`
	MoveInDate       time.Time               `json:"move_in_date" validate:"required"`
	MoveOutDate      *time.Time              `json:"move_out_date,omitempty"`
	EmergencyContact *types.EmergencyContact `json:"emergency_contact,omitempty"`
	VehicleInfo      types.VehicleList       `json:"vehicle_info,omitempty"`
	PetInfo          types.PetList           `json:"pet_info,omitempty"`
}

func (req enhancedResidentCreateRequest) toInput() residents.CreateEnhancedInput {
	return residents.CreateEnhancedInput{
		UserID:           req.UserID,
		UnitID:           req.UnitID,
		PropertyID:       req.PropertyID,
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		ResidentType:     req.ResidentType,
		Role:             req.Role,
		IsPrimary:        req.IsPrimary,
		MoveInDate:       req.MoveInDate,
		MoveOutDate:      req.MoveOutDate,
		EmergencyContact: req.EmergencyContact,
		VehicleInfo:      req.VehicleInfo,
		PetInfo:          req.PetInfo,
	}
}

type enhancedResidentUpdateRequest struct {
	FirstName        *string                 `json:"first_name,omitempty" validate:"omitempty,min=1"`
	LastName         *string                 `json:"last_name,omitempty" validate:"omitempty,min=1"`
	Email            *string                 `json:"email,omitempty" validate:"omitempty,email"`
	Phone            *string                 `json:"phone,omitempty"`
	ResidentType     *string                 `json:"resident_type,omitempty"`
	Role             *string                 `json:"role,omitempty"`
	MoveInDate       *time.Time              `json:"move_in_date,omitempty"`
	MoveOutDate      *time.Time              `json:"move_out_date,omitempty"`
	EmergencyContact *types.EmergencyContact `json:"emergency_contact,omitempty"`
	VehicleInfo      *types.VehicleList      `json:"vehicle_info,omitempty"`
	PetInfo          *types.PetList          `json:"pet_info,omitempty"`
}

func (req enhancedResidentUpdateRequest) toInput() residents.UpdateEnhancedInput {
	return residents.UpdateEnhancedInput{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		Phone:            req.Phone,
		ResidentType:     req.ResidentType,
		Role:             req.Role,
		MoveInDate:       req.MoveInDate,
		MoveOutDate:      req.MoveOutDate,
		EmergencyContact: req.EmergencyContact,
		VehicleInfo:      req.VehicleInfo,
		PetInfo:          req.PetInfo,
	}
}

// EnhancedResidentCreate registers a resident with registry and occupancy data.
func EnhancedResidentCreate(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req enhancedResidentCreateRequest
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

// EnhancedResidentList returns residents with the full set of occupancy filters.
func EnhancedResidentList(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := residents.EnhancedListFilter{}
		if filter.UnitID, err = queryUUIDPtr(r, "unit_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.PropertyID, err = queryUUIDPtr(r, "property_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.UserID, err = queryUUIDPtr(r, "user_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.IsActive, err = queryBool(r, "is_active"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := queryString(r, "resident_type"); raw != nil {
			occupancy, err := enums.ParseOccupancyType(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid resident_type filter"))
				return
			}
			filter.ResidentType = &occupancy
		}

		list, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// EnhancedResidentGet returns one enhanced resident by id.
func EnhancedResidentGet(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
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

// EnhancedResidentUpdate applies partial changes to an enhanced resident.
func EnhancedResidentUpdate(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req enhancedResidentUpdateRequest
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

// EnhancedResidentDelete removes an enhanced resident.
func EnhancedResidentDelete(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
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

// EnhancedResidentActivate reactivates a previously deactivated resident.
func EnhancedResidentActivate(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resident, err := svc.Activate(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resident)
	}
}

// EnhancedResidentDeactivate deactivates a resident and drops primary status.
func EnhancedResidentDeactivate(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resident, err := svc.Deactivate(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resident)
	}
}

// EnhancedResidentSetPrimary makes the resident the unit's sole primary contact.
func EnhancedResidentSetPrimary(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resident, err := svc.SetPrimary(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, resident)
	}
}

// EnhancedResidentVehicles returns the resident's registered vehicles.
func EnhancedResidentVehicles(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		vehicles, err := svc.Vehicles(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, vehicles)
	}
}

// EnhancedResidentPets returns the resident's registered pets.
func EnhancedResidentPets(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pets, err := svc.Pets(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, pets)
	}
}

// EnhancedResidentEmergencyContact returns the resident's emergency contact.
func EnhancedResidentEmergencyContact(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "residentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := svc.EmergencyContact(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, contact)
	}
}

// EnhancedResidentStats returns population and occupancy summaries.
func EnhancedResidentStats(svc residents.EnhancedService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.StatsSummary(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
