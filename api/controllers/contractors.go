package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/contractors"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type contractorCreateRequest struct {
	Name            string          `json:"name" validate:"required,min=1"`
	Company         *string         `json:"company,omitempty"`
	Email           *string         `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string         `json:"phone,omitempty"`
	Specialties     []string        `json:"specialties,omitempty"`
	Rating          decimal.Decimal `json:"rating"`
	LicenseNumber   *string         `json:"license_number,omitempty"`
	InsuranceExpiry *time.Time      `json:"insurance_expiry,omitempty"`
}

func (req contractorCreateRequest) toInput() contractors.CreateContractorInput {
	return contractors.CreateContractorInput{
		Name:            req.Name,
		Company:         req.Company,
		Email:           req.Email,
		Phone:           req.Phone,
		Specialties:     req.Specialties,
		Rating:          req.Rating,
		LicenseNumber:   req.LicenseNumber,
		InsuranceExpiry: req.InsuranceExpiry,
	}
}

type contractorUpdateRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Company         *string          `json:"company,omitempty"`
	Email           *string          `json:"email,omitempty" validate:"omitempty,email"`
	Phone           *string          `json:"phone,omitempty"`
	Specialties     *[]string        `json:"specialties,omitempty"`
	Rating          *decimal.Decimal `json:"rating,omitempty"`
	LicenseNumber   *string          `json:"license_number,omitempty"`
	InsuranceExpiry *time.Time       `json:"insurance_expiry,omitempty"`
	IsActive        *bool            `json:"is_active,omitempty"`
}

func (req contractorUpdateRequest) toInput() contractors.UpdateContractorInput {
	return contractors.UpdateContractorInput{
		Name:            req.Name,
		Company:         req.Company,
		Email:           req.Email,
		Phone:           req.Phone,
		Specialties:     req.Specialties,
		Rating:          req.Rating,
		LicenseNumber:   req.LicenseNumber,
		InsuranceExpiry: req.InsuranceExpiry,
		IsActive:        req.IsActive,
	}
}

// ContractorCreate registers a new contractor.
func ContractorCreate(svc contractors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req contractorCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contractor, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, contractor)
	}
}

// ContractorList returns contractors with specialty, rating and active filters.
func ContractorList(svc contractors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := contractors.ListFilter{}
		filter.Specialty = queryString(r, "specialty")
		if raw := strings.TrimSpace(r.URL.Query().Get("min_rating")); raw != "" {
			minRating, err := decimal.NewFromString(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "min_rating must be numeric"))
				return
			}
			filter.MinRating = &minRating
		}
		if filter.IsActive, err = queryBool(r, "is_active"); err != nil {
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

// ContractorGet returns one contractor by id.
func ContractorGet(svc contractors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "contractorID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contractor, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, contractor)
	}
}

// ContractorUpdate applies partial changes to a contractor.
func ContractorUpdate(svc contractors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "contractorID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req contractorUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contractor, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, contractor)
	}
}

// ContractorDelete removes a contractor without assigned requests.
func ContractorDelete(svc contractors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "contractorID")
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

// ContractorStats returns roster-level contractor aggregates.
func ContractorStats(svc contractors.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, stats)
	}
}
