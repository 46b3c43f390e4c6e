package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

type userRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsEmail(ctx context.Context, email string) (bool, error)
}

type residentLinkCounter interface {
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}

// Service exposes user operations.
type Service interface {
	Create(ctx context.Context, input CreateUserInput) (*UserDTO, error)
	List(ctx context.Context, filter ListFilter, page pagination.Params) ([]UserDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	VerifyEmail(ctx context.Context, id uuid.UUID) (*UserDTO, error)
}

type service struct {
	repo      userRepository
	residents residentLinkCounter
}

// NewService builds a user service with the provided repositories.
func NewService(repo userRepository, residents residentLinkCounter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("user repository required")
	}
	if residents == nil {
		return nil, fmt.Errorf("resident repository required")
	}
	return &service{repo: repo, residents: residents}, nil
}

// CreateUserInput captures creation-time user fields.
type CreateUserInput struct {
	Email       string
	FirstName   string
	LastName    string
	Phone       *string
	Role        string
	Permissions []string
}

// UpdateUserInput captures the allowed mutable user fields.
type UpdateUserInput struct {
	FirstName   *string
	LastName    *string
	Phone       *string
	Role        *string
	Permissions *[]string
	IsActive    *bool
}

func (s *service) Create(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	fields := pkgerrors.FieldErrors{}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		fields.Add("email", "must be a valid email")
	}
	if strings.TrimSpace(input.FirstName) == "" {
		fields.Add("first_name", "must not be blank")
	}
	if strings.TrimSpace(input.LastName) == "" {
		fields.Add("last_name", "must not be blank")
	}
	role := enums.UserRoleResident
	if input.Role != "" {
		parsed, err := enums.ParseUserRole(input.Role)
		if err != nil {
			fields.Add("role", "must be a valid role")
		} else {
			role = parsed
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsEmail(ctx, email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check email")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already registered").
			WithDetails(map[string]any{"email": email})
	}

	user := &models.User{
		Email:       email,
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Phone:       input.Phone,
		Role:        role,
		Permissions: pq.StringArray(input.Permissions),
		IsActive:    true,
	}
	if user.Permissions == nil {
		user.Permissions = pq.StringArray{}
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
	}
	return FromModel(user), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, page pagination.Params) ([]UserDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return fromModels(rows), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			fields.Add("first_name", "must not be blank")
		} else {
			user.FirstName = strings.TrimSpace(*input.FirstName)
		}
	}
	if input.LastName != nil {
		if strings.TrimSpace(*input.LastName) == "" {
			fields.Add("last_name", "must not be blank")
		} else {
			user.LastName = strings.TrimSpace(*input.LastName)
		}
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Role != nil {
		role, err := enums.ParseUserRole(*input.Role)
		if err != nil {
			fields.Add("role", "must be a valid role")
		} else {
			user.Role = role
		}
	}
	if input.Permissions != nil {
		user.Permissions = pq.StringArray(*input.Permissions)
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}
	return FromModel(user), nil
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	linked, err := s.residents.CountByUser(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count linked residents")
	}
	if linked > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "user has linked resident records").
			WithDetails(map[string]any{"residents": linked})
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user")
	}
	return nil
}

// VerifyEmail marks the user's email as verified. The flag only moves
// false to true; repeat calls succeed without touching the row.
func (s *service) VerifyEmail(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !user.EmailVerified {
		user.EmailVerified = true
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "verify email")
		}
	}
	return FromModel(user), nil
}

func (s *service) load(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return user, nil
}
