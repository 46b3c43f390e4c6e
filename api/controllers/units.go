package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/units"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type unitCreateRequest struct {
	PropertyID uuid.UUID       `json:"property_id" validate:"required"`
	UnitNumber string          `json:"unit_number" validate:"required,min=1"`
	UnitType   string          `json:"unit_type" validate:"required"`
	SquareFeet *int            `json:"square_feet,omitempty" validate:"omitempty,gt=0"`
	Bedrooms   *int            `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms  decimal.Decimal `json:"bathrooms"`
	MonthlyFee decimal.Decimal `json:"monthly_fee"`
	IsOccupied bool            `json:"is_occupied"`
}

func (req unitCreateRequest) toInput() units.CreateUnitInput {
	return units.CreateUnitInput{
		PropertyID: req.PropertyID,
		UnitNumber: req.UnitNumber,
		UnitType:   req.UnitType,
		SquareFeet: req.SquareFeet,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		MonthlyFee: req.MonthlyFee,
		IsOccupied: req.IsOccupied,
	}
}

type unitUpdateRequest struct {
	UnitNumber *string          `json:"unit_number,omitempty" validate:"omitempty,min=1"`
	UnitType   *string          `json:"unit_type,omitempty"`
	SquareFeet *int             `json:"square_feet,omitempty" validate:"omitempty,gt=0"`
	Bedrooms   *int             `json:"bedrooms,omitempty" validate:"omitempty,gte=0"`
	Bathrooms  *decimal.Decimal `json:"bathrooms,omitempty"`
	MonthlyFee *decimal.Decimal `json:"monthly_fee,omitempty"`
	IsOccupied *bool            `json:"is_occupied,omitempty"`
}

func (req unitUpdateRequest) toInput() units.UpdateUnitInput {
	return units.UpdateUnitInput{
		UnitNumber: req.UnitNumber,
		UnitType:   req.UnitType,
		SquareFeet: req.SquareFeet,
		Bedrooms:   req.Bedrooms,
		Bathrooms:  req.Bathrooms,
		MonthlyFee: req.MonthlyFee,
		IsOccupied: req.IsOccupied,
	}
}

// UnitCreate registers a new unit under a property.
func UnitCreate(svc units.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req unitCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unit, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, unit)
	}
}

// UnitList returns units with optional property, occupancy and type filters.
func UnitList(svc units.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := units.ListFilter{}
		if filter.PropertyID, err = queryUUIDPtr(r, "property_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.IsOccupied, err = queryBool(r, "is_occupied"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.UnitType = queryString(r, "unit_type")

		list, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// UnitGet returns one unit by id.
func UnitGet(svc units.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "unitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unit, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, unit)
	}
}

// UnitUpdate applies partial changes to a unit.
func UnitUpdate(svc units.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "unitID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req unitUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		unit, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, unit)
	}
}

// UnitDelete removes a unit without residents.
func UnitDelete(svc units.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "unitID")
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
