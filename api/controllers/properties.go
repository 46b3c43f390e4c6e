package controllers

import (
	"net/http"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/properties"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type propertyCreateRequest struct {
	Name         string `json:"name" validate:"required,min=1"`
	Address      string `json:"address" validate:"required,min=1"`
	PropertyType string `json:"property_type" validate:"required"`
	TotalUnits   int    `json:"total_units" validate:"gte=0"`
	YearBuilt    *int   `json:"year_built,omitempty"`
}

func (req propertyCreateRequest) toInput() properties.CreatePropertyInput {
	return properties.CreatePropertyInput{
		Name:         req.Name,
		Address:      req.Address,
		PropertyType: req.PropertyType,
		TotalUnits:   req.TotalUnits,
		YearBuilt:    req.YearBuilt,
	}
}

type propertyUpdateRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Address      *string `json:"address,omitempty" validate:"omitempty,min=1"`
	PropertyType *string `json:"property_type,omitempty"`
	TotalUnits   *int    `json:"total_units,omitempty" validate:"omitempty,gte=0"`
	YearBuilt    *int    `json:"year_built,omitempty"`
}

func (req propertyUpdateRequest) toInput() properties.UpdatePropertyInput {
	return properties.UpdatePropertyInput{
		Name:         req.Name,
		Address:      req.Address,
		PropertyType: req.PropertyType,
		TotalUnits:   req.TotalUnits,
		YearBuilt:    req.YearBuilt,
	}
}

// PropertyCreate registers a new property.
func PropertyCreate(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req propertyCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		property, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, property)
	}
}

// PropertyList returns properties with optional type filtering.
func PropertyList(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := properties.ListFilter{}
		if raw := queryString(r, "property_type"); raw != nil {
			propertyType, err := enums.ParsePropertyType(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid property_type filter"))
				return
			}
			filter.PropertyType = &propertyType
		}

		list, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// PropertyGet returns one property by id.
func PropertyGet(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "propertyID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		property, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, property)
	}
}

// PropertyUpdate applies partial changes to a property.
func PropertyUpdate(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "propertyID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req propertyUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		property, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, property)
	}
}

// PropertyDelete removes a property without units.
func PropertyDelete(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "propertyID")
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

// PropertyStats returns occupancy figures for one property.
func PropertyStats(svc properties.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "propertyID")
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
