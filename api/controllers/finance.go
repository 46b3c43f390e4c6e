package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/finance"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type accountCreateRequest struct {
	PropertyID  uuid.UUID       `json:"property_id" validate:"required"`
	Name        string          `json:"name" validate:"required,min=1"`
	AccountType string          `json:"account_type" validate:"required"`
	Balance     decimal.Decimal `json:"balance"`
}

func (req accountCreateRequest) toInput() finance.CreateAccountInput {
	return finance.CreateAccountInput{
		PropertyID:  req.PropertyID,
		Name:        req.Name,
		AccountType: enums.AccountType(req.AccountType),
		Balance:     req.Balance,
	}
}

type accountUpdateRequest struct {
	Name        *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	AccountType *string          `json:"account_type,omitempty"`
	Balance     *decimal.Decimal `json:"balance,omitempty"`
}

func (req accountUpdateRequest) toInput() finance.UpdateAccountInput {
	in := finance.UpdateAccountInput{
		Name:    req.Name,
		Balance: req.Balance,
	}
	if req.AccountType != nil {
		accountType := enums.AccountType(*req.AccountType)
		in.AccountType = &accountType
	}
	return in
}

type feeCreateRequest struct {
	PropertyID    uuid.UUID       `json:"property_id" validate:"required"`
	Name          string          `json:"name" validate:"required,min=1"`
	Amount        decimal.Decimal `json:"amount"`
	Frequency     string          `json:"frequency" validate:"required"`
	EffectiveDate time.Time       `json:"effective_date" validate:"required"`
}

func (req feeCreateRequest) toInput() finance.CreateFeeInput {
	return finance.CreateFeeInput{
		PropertyID:    req.PropertyID,
		Name:          req.Name,
		Amount:        req.Amount,
		Frequency:     enums.FeeFrequency(req.Frequency),
		EffectiveDate: req.EffectiveDate,
	}
}

type feeUpdateRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=1"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Frequency     *string          `json:"frequency,omitempty"`
	EffectiveDate *time.Time       `json:"effective_date,omitempty"`
}

func (req feeUpdateRequest) toInput() finance.UpdateFeeInput {
	in := finance.UpdateFeeInput{
		Name:          req.Name,
		Amount:        req.Amount,
		EffectiveDate: req.EffectiveDate,
	}
	if req.Frequency != nil {
		frequency := enums.FeeFrequency(*req.Frequency)
		in.Frequency = &frequency
	}
	return in
}

// AccountCreate opens a financial account for a property.
func AccountCreate(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req accountCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.CreateAccount(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, account)
	}
}

// AccountList returns accounts with property and type filters.
func AccountList(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := finance.AccountListFilter{}
		if filter.PropertyID, err = queryUUIDPtr(r, "property_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.AccountType = queryString(r, "account_type")

		list, err := svc.ListAccounts(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// AccountGet returns one account by id.
func AccountGet(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "accountID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.GetAccountByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, account)
	}
}

// AccountUpdate applies partial changes to an account.
func AccountUpdate(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "accountID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req accountUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := svc.UpdateAccount(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, account)
	}
}

// AccountDelete removes an account.
func AccountDelete(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "accountID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteAccount(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// FeeCreate defines a recurring management fee.
func FeeCreate(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req feeCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fee, err := svc.CreateFee(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, fee)
	}
}

// FeeList returns fees with property and frequency filters.
func FeeList(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := finance.FeeListFilter{}
		if filter.PropertyID, err = queryUUIDPtr(r, "property_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.Frequency = queryString(r, "frequency")

		list, err := svc.ListFees(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// FeeGet returns one fee by id.
func FeeGet(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "feeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fee, err := svc.GetFeeByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, fee)
	}
}

// FeeUpdate applies partial changes to a fee.
func FeeUpdate(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "feeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req feeUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fee, err := svc.UpdateFee(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, fee)
	}
}

// FeeDelete removes a fee.
func FeeDelete(svc finance.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "feeID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteFee(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
