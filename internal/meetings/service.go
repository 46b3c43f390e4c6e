package meetings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

type meetingRepository interface {
	Create(ctx context.Context, meeting *models.Meeting) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Meeting, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Meeting, error)
	Update(ctx context.Context, meeting *models.Meeting) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type referenceFinder interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

// Service enforces meeting rules on top of the repository.
type Service interface {
	Create(ctx context.Context, in CreateInput) (*MeetingDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]MeetingDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*MeetingDTO, error)
	Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*MeetingDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo       meetingRepository
	properties referenceFinder
}

// NewService builds the service with the provided repositories.
func NewService(repo meetingRepository, properties referenceFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("meeting repository required")
	}
	if properties == nil {
		return nil, fmt.Errorf("property repository required")
	}
	return &service{repo: repo, properties: properties}, nil
}

// CreateInput carries fields for scheduling a meeting.
type CreateInput struct {
	PropertyID  *uuid.UUID
	Title       string
	MeetingType *string
	ScheduledAt time.Time
	Location    *string
	Agenda      *string
}

// UpdateInput carries optional meeting mutations.
type UpdateInput struct {
	Title       *string
	MeetingType *string
	ScheduledAt *time.Time
	Location    *string
	Agenda      *string
	Minutes     *string
	Status      *enums.MeetingStatus
}

// Create schedules a new meeting.
func (s *service) Create(ctx context.Context, in CreateInput) (*MeetingDTO, error) {
	fields := pkgerrors.FieldErrors{}
	if in.Title == "" {
		fields.Add("title", "title is required")
	}
	if in.ScheduledAt.IsZero() {
		fields.Add("scheduled_at", "scheduled_at is required")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if in.PropertyID != nil {
		ok, err := s.properties.Exists(ctx, *in.PropertyID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to check property")
		}
		if !ok {
			return nil, pkgerrors.New(pkgerrors.CodeReferential, "referenced property does not exist")
		}
	}

	meeting := &models.Meeting{
		PropertyID:  in.PropertyID,
		Title:       in.Title,
		MeetingType: in.MeetingType,
		ScheduledAt: in.ScheduledAt,
		Location:    in.Location,
		Agenda:      in.Agenda,
		Status:      enums.MeetingStatusScheduled,
	}
	if err := s.repo.Create(ctx, meeting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to create meeting")
	}
	return FromModel(meeting), nil
}

// GetByID returns a single meeting.
func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*MeetingDTO, error) {
	meeting, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(meeting), nil
}

// List returns meetings matching the filter.
func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]MeetingDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to list meetings")
	}
	return fromModels(rows), nil
}

// Update applies partial changes to a meeting.
func (s *service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*MeetingDTO, error) {
	meeting, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if in.Title != nil {
		if *in.Title == "" {
			fields.Add("title", "title cannot be empty")
		} else {
			meeting.Title = *in.Title
		}
	}
	if in.MeetingType != nil {
		meeting.MeetingType = in.MeetingType
	}
	if in.ScheduledAt != nil {
		if in.ScheduledAt.IsZero() {
			fields.Add("scheduled_at", "scheduled_at cannot be empty")
		} else {
			meeting.ScheduledAt = *in.ScheduledAt
		}
	}
	if in.Location != nil {
		meeting.Location = in.Location
	}
	if in.Agenda != nil {
		meeting.Agenda = in.Agenda
	}
	if in.Minutes != nil {
		meeting.Minutes = in.Minutes
	}
	if in.Status != nil {
		if !in.Status.IsValid() {
			fields.Add("status", "invalid meeting status")
		} else {
			meeting.Status = *in.Status
		}
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, meeting); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to update meeting")
	}
	return FromModel(meeting), nil
}

// Delete removes a meeting.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete meeting")
	}
	return nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.Meeting, error) {
	meeting, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "meeting not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load meeting")
	}
	return meeting, nil
}
