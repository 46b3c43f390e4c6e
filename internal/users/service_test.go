package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

func TestNewServiceRequiresRepo(t *testing.T) {
	_, err := NewService(nil, stubResidentCounter{})
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestNewServiceRequiresResidentCounter(t *testing.T) {
	_, err := NewService(&stubUserRepo{}, nil)
	if err == nil {
		t.Fatal("expected error creating service without resident counter")
	}
}

func TestUserCreateNormalizesEmail(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newUserSvc(t, repo)

	dto, err := svc.Create(context.Background(), CreateUserInput{
		Email:     "  Board.Chair@Example.COM ",
		FirstName: "Lena",
		LastName:  "Park",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if dto.Email != "board.chair@example.com" {
		t.Fatalf("expected lowercased email, got %q", dto.Email)
	}
	if dto.Role != enums.UserRoleResident {
		t.Fatalf("expected default role resident, got %s", dto.Role)
	}
	if !dto.IsActive {
		t.Fatal("expected user created active")
	}
	if repo.created == nil || repo.created.Permissions == nil {
		t.Fatal("expected permissions stored as empty array, not nil")
	}
}

func TestUserCreateInvalidEmail(t *testing.T) {
	svc := newUserSvc(t, &stubUserRepo{})

	_, gotErr := svc.Create(context.Background(), CreateUserInput{
		Email:     "not-an-email",
		FirstName: "Lena",
		LastName:  "Park",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestUserCreateDuplicateEmail(t *testing.T) {
	repo := &stubUserRepo{emailTaken: true}
	svc := newUserSvc(t, repo)

	_, gotErr := svc.Create(context.Background(), CreateUserInput{
		Email:     "taken@example.com",
		FirstName: "Lena",
		LastName:  "Park",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", gotErr)
	}
	if repo.created != nil {
		t.Fatal("expected create to stop before the repository")
	}
}

func TestUserCreateInvalidRole(t *testing.T) {
	svc := newUserSvc(t, &stubUserRepo{})

	_, gotErr := svc.Create(context.Background(), CreateUserInput{
		Email:     "lena@example.com",
		FirstName: "Lena",
		LastName:  "Park",
		Role:      "overlord",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestUserVerifyEmailIdempotent(t *testing.T) {
	user := baseUser()
	repo := &stubUserRepo{user: user}
	svc := newUserSvc(t, repo)

	dto, err := svc.VerifyEmail(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("verify email: %v", err)
	}
	if !dto.EmailVerified {
		t.Fatal("expected email verified")
	}
	if repo.updates != 1 {
		t.Fatalf("expected one update, got %d", repo.updates)
	}

	// Second call sees the flag already set and skips the write.
	if _, err := svc.VerifyEmail(context.Background(), user.ID); err != nil {
		t.Fatalf("verify email again: %v", err)
	}
	if repo.updates != 1 {
		t.Fatalf("expected repeat verification to skip the update, got %d", repo.updates)
	}
}

func TestUserDeleteBlockedByLinkedResidents(t *testing.T) {
	user := baseUser()
	repo := &stubUserRepo{user: user}
	svc, err := NewService(repo, stubResidentCounter{count: 2})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), user.ID)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict code, got %v", gotErr)
	}
	if repo.deleted {
		t.Fatal("expected delete to stop before the repository")
	}
}

func TestUserDeleteSucceeds(t *testing.T) {
	user := baseUser()
	repo := &stubUserRepo{user: user}
	svc := newUserSvc(t, repo)

	if err := svc.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	if !repo.deleted {
		t.Fatal("expected delete to reach the repository")
	}
}

func TestUserGetByIDNotFound(t *testing.T) {
	repo := &stubUserRepo{err: gorm.ErrRecordNotFound}
	svc := newUserSvc(t, repo)

	_, gotErr := svc.GetByID(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestUserUpdateBlankFirstName(t *testing.T) {
	repo := &stubUserRepo{user: baseUser()}
	svc := newUserSvc(t, repo)

	blank := "   "
	_, gotErr := svc.Update(context.Background(), uuid.New(), UpdateUserInput{FirstName: &blank})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func newUserSvc(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(repo, stubResidentCounter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseUser() *models.User {
	return &models.User{
		ID:          uuid.New(),
		Email:       "lena@example.com",
		FirstName:   "Lena",
		LastName:    "Park",
		Role:        enums.UserRoleBoardMember,
		Permissions: pq.StringArray{"documents:read"},
		IsActive:    true,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

type stubUserRepo struct {
	user       *models.User
	err        error
	emailTaken bool
	created    *models.User
	updates    int
	deleted    bool
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) error {
	if s.err != nil {
		return s.err
	}
	user.ID = uuid.New()
	s.created = user
	return nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.user, s.err
}

func (s *stubUserRepo) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.user == nil {
		return nil, nil
	}
	return []models.User{*s.user}, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	if s.err != nil {
		return s.err
	}
	s.updates++
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = true
	return nil
}

func (s *stubUserRepo) ExistsEmail(ctx context.Context, email string) (bool, error) {
	return s.emailTaken, nil
}

type stubResidentCounter struct {
	count int64
	err   error
}

func (s stubResidentCounter) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.count, s.err
}
