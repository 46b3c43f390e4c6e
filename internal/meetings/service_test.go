package meetings

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, stubFinder{ok: true})
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestMeetingCreateSchedules(t *testing.T) {
	repo := &stubMeetingRepo{}
	svc := newMeetingSvc(t, repo, true)

	dto, err := svc.Create(context.Background(), CreateInput{
		Title:       "Annual budget review",
		ScheduledAt: time.Date(2025, 9, 15, 18, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create meeting: %v", err)
	}
	if dto.Status != enums.MeetingStatusScheduled {
		t.Fatalf("expected scheduled status, got %s", dto.Status)
	}
}

func TestMeetingCreateMissingTitle(t *testing.T) {
	svc := newMeetingSvc(t, &stubMeetingRepo{}, true)

	_, gotErr := svc.Create(context.Background(), CreateInput{
		ScheduledAt: time.Date(2025, 9, 15, 18, 0, 0, 0, time.UTC),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestMeetingCreateUnknownProperty(t *testing.T) {
	repo := &stubMeetingRepo{}
	svc := newMeetingSvc(t, repo, false)

	propertyID := uuid.New()
	_, gotErr := svc.Create(context.Background(), CreateInput{
		PropertyID:  &propertyID,
		Title:       "Annual budget review",
		ScheduledAt: time.Date(2025, 9, 15, 18, 0, 0, 0, time.UTC),
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential code, got %v", gotErr)
	}
	if repo.created != nil {
		t.Fatal("expected create to stop before the repository")
	}
}

func TestMeetingUpdateRecordsMinutes(t *testing.T) {
	meeting := baseMeeting()
	repo := &stubMeetingRepo{meeting: meeting}
	svc := newMeetingSvc(t, repo, true)

	minutes := "Quorum reached; reserve fund increase approved."
	status := enums.MeetingStatusCompleted
	dto, err := svc.Update(context.Background(), meeting.ID, UpdateInput{Minutes: &minutes, Status: &status})
	if err != nil {
		t.Fatalf("update meeting: %v", err)
	}
	if dto.Minutes == nil || *dto.Minutes != minutes {
		t.Fatalf("expected minutes recorded, got %v", dto.Minutes)
	}
	if dto.Status != enums.MeetingStatusCompleted {
		t.Fatalf("expected completed status, got %s", dto.Status)
	}
}

func TestMeetingUpdateInvalidStatus(t *testing.T) {
	repo := &stubMeetingRepo{meeting: baseMeeting()}
	svc := newMeetingSvc(t, repo, true)

	status := enums.MeetingStatus("postponed-ish")
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdateInput{Status: &status})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestMeetingGetByIDNotFound(t *testing.T) {
	repo := &stubMeetingRepo{err: gorm.ErrRecordNotFound}
	svc := newMeetingSvc(t, repo, true)

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func newMeetingSvc(t *testing.T, repo *stubMeetingRepo, propertyExists bool) Service {
	t.Helper()
	svc, err := NewService(repo, stubFinder{ok: propertyExists})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseMeeting() *models.Meeting {
	return &models.Meeting{
		ID:          uuid.New(),
		Title:       "Annual budget review",
		ScheduledAt: time.Date(2025, 9, 15, 18, 0, 0, 0, time.UTC),
		Status:      enums.MeetingStatusScheduled,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

type stubMeetingRepo struct {
	meeting *models.Meeting
	err     error
	created *models.Meeting
}

func (s *stubMeetingRepo) Create(ctx context.Context, meeting *models.Meeting) error {
	if s.err != nil {
		return s.err
	}
	meeting.ID = uuid.New()
	s.created = meeting
	return nil
}

func (s *stubMeetingRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Meeting, error) {
	return s.meeting, s.err
}

func (s *stubMeetingRepo) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.Meeting, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.meeting == nil {
		return nil, nil
	}
	return []models.Meeting{*s.meeting}, nil
}

func (s *stubMeetingRepo) Update(ctx context.Context, meeting *models.Meeting) error {
	return s.err
}

func (s *stubMeetingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

type stubFinder struct {
	ok  bool
	err error
}

func (s stubFinder) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.ok, s.err
}
