package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/documents"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type documentCreateRequest struct {
	PropertyID *uuid.UUID `json:"property_id,omitempty"`
	UnitID     *uuid.UUID `json:"unit_id,omitempty"`
	Title      string     `json:"title" validate:"required,min=1"`
	DocType    *string    `json:"doc_type,omitempty"`
	FileURL    string     `json:"file_url" validate:"required,min=1"`
	UploadedBy *uuid.UUID `json:"uploaded_by,omitempty"`
}

func (req documentCreateRequest) toInput() documents.CreateInput {
	return documents.CreateInput{
		PropertyID: req.PropertyID,
		UnitID:     req.UnitID,
		Title:      req.Title,
		DocType:    req.DocType,
		FileURL:    req.FileURL,
		UploadedBy: req.UploadedBy,
	}
}

type documentUpdateRequest struct {
	Title   *string `json:"title,omitempty" validate:"omitempty,min=1"`
	DocType *string `json:"doc_type,omitempty"`
	FileURL *string `json:"file_url,omitempty" validate:"omitempty,min=1"`
}

func (req documentUpdateRequest) toInput() documents.UpdateInput {
	return documents.UpdateInput{
		Title:   req.Title,
		DocType: req.DocType,
		FileURL: req.FileURL,
	}
}

// DocumentCreate files document metadata.
func DocumentCreate(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req documentCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, doc)
	}
}

// DocumentList returns documents with property, unit and type filters.
func DocumentList(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := documents.ListFilter{}
		if filter.PropertyID, err = queryUUIDPtr(r, "property_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filter.UnitID, err = queryUUIDPtr(r, "unit_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.DocType = queryString(r, "doc_type")

		list, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// DocumentGet returns one document by id.
func DocumentGet(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "documentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, doc)
	}
}

// DocumentUpdate applies partial changes to document metadata.
func DocumentUpdate(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "documentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req documentUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		doc, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, doc)
	}
}

// DocumentDelete removes a document.
func DocumentDelete(svc documents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "documentID")
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
