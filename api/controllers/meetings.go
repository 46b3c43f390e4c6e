package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/api/validators"
	"github.com/ridgeline-hq/hoa-backend/internal/meetings"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

type meetingCreateRequest struct {
	PropertyID  *uuid.UUID `json:"property_id,omitempty"`
	Title       string     `json:"title" validate:"required,min=1"`
	MeetingType *string    `json:"meeting_type,omitempty"`
	ScheduledAt time.Time  `json:"scheduled_at" validate:"required"`
	Location    *string    `json:"location,omitempty"`
	Agenda      *string    `json:"agenda,omitempty"`
}

func (req meetingCreateRequest) toInput() meetings.CreateInput {
	return meetings.CreateInput{
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		MeetingType: req.MeetingType,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		Agenda:      req.Agenda,
	}
}

type meetingUpdateRequest struct {
	Title       *string    `json:"title,omitempty" validate:"omitempty,min=1"`
	MeetingType *string    `json:"meeting_type,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Agenda      *string    `json:"agenda,omitempty"`
	Minutes     *string    `json:"minutes,omitempty"`
	Status      *string    `json:"status,omitempty"`
}

func (req meetingUpdateRequest) toInput() meetings.UpdateInput {
	in := meetings.UpdateInput{
		Title:       req.Title,
		MeetingType: req.MeetingType,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		Agenda:      req.Agenda,
		Minutes:     req.Minutes,
	}
	if req.Status != nil {
		status := enums.MeetingStatus(*req.Status)
		in.Status = &status
	}
	return in
}

// MeetingCreate schedules an association meeting.
func MeetingCreate(svc meetings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req meetingCreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		meeting, err := svc.Create(r.Context(), req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, meeting)
	}
}

// MeetingList returns meetings with optional property and status filters.
func MeetingList(svc meetings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := meetings.ListFilter{}
		if filter.PropertyID, err = queryUUIDPtr(r, "property_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if raw := queryString(r, "status"); raw != nil {
			status, err := enums.ParseMeetingStatus(*raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter"))
				return
			}
			filter.Status = &status
		}

		list, err := svc.List(r.Context(), filter, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// MeetingGet returns one meeting by id.
func MeetingGet(svc meetings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "meetingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		meeting, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, meeting)
	}
}

// MeetingUpdate applies partial changes to a meeting.
func MeetingUpdate(svc meetings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "meetingID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req meetingUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		meeting, err := svc.Update(r.Context(), id, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, meeting)
	}
}

// MeetingDelete removes a meeting.
func MeetingDelete(svc meetings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "meetingID")
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
