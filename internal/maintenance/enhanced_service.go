package maintenance

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

type enhancedRepository interface {
	Create(ctx context.Context, request *models.MaintenanceRequestEnhanced) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequestEnhanced, error)
	List(ctx context.Context, filter EnhancedListFilter, page pagination.Params) ([]models.MaintenanceRequestEnhanced, error)
	Update(ctx context.Context, request *models.MaintenanceRequestEnhanced) error
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*EnhancedStatsDTO, error)
	CreateWorkLog(ctx context.Context, log *models.MaintenanceWorkLog) error
	FindWorkLogByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceWorkLog, error)
	ListWorkLogs(ctx context.Context, requestID uuid.UUID, page pagination.Params) ([]models.MaintenanceWorkLog, error)
	ListAllWorkLogs(ctx context.Context, filter WorkLogListFilter, page pagination.Params) ([]models.MaintenanceWorkLog, error)
	UpdateWorkLog(ctx context.Context, log *models.MaintenanceWorkLog) error
	DeleteWorkLog(ctx context.Context, id uuid.UUID) error
	WorkLogStats(ctx context.Context, requestID uuid.UUID) (*WorkLogStatsDTO, error)
}

// EnhancedService exposes enhanced maintenance request operations.
type EnhancedService interface {
	Create(ctx context.Context, input CreateEnhancedInput) (*EnhancedRequestDTO, error)
	List(ctx context.Context, filter EnhancedListFilter, page pagination.Params) ([]EnhancedRequestDTO, error)
	GetByID(ctx context.Context, id uuid.UUID) (*EnhancedRequestDTO, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateEnhancedInput) (*EnhancedRequestDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AssignContractor(ctx context.Context, id, contractorID uuid.UUID) (*EnhancedRequestDTO, error)
	Stats(ctx context.Context) (*EnhancedStatsDTO, error)
	AddWorkLog(ctx context.Context, requestID uuid.UUID, input CreateWorkLogInput) (*WorkLogDTO, error)
	ListWorkLogs(ctx context.Context, requestID uuid.UUID, page pagination.Params) ([]WorkLogDTO, error)
	ListAllWorkLogs(ctx context.Context, filter WorkLogListFilter, page pagination.Params) ([]WorkLogDTO, error)
	GetWorkLog(ctx context.Context, id uuid.UUID) (*WorkLogDTO, error)
	UpdateWorkLog(ctx context.Context, id uuid.UUID, input UpdateWorkLogInput) (*WorkLogDTO, error)
	DeleteWorkLog(ctx context.Context, id uuid.UUID) error
	WorkLogStats(ctx context.Context, requestID uuid.UUID) (*WorkLogStatsDTO, error)
}

type enhancedService struct {
	repo        enhancedRepository
	units       referenceFinder
	properties  referenceFinder
	residents   referenceFinder
	users       referenceFinder
	contractors referenceFinder
}

// NewEnhancedService builds an enhanced maintenance service with the provided repositories.
func NewEnhancedService(repo enhancedRepository, units, properties, residents, users, contractors referenceFinder) (EnhancedService, error) {
	if repo == nil {
		return nil, fmt.Errorf("enhanced maintenance repository required")
	}
	if units == nil || properties == nil || residents == nil || users == nil || contractors == nil {
		return nil, fmt.Errorf("reference repositories required")
	}
	return &enhancedService{
		repo:        repo,
		units:       units,
		properties:  properties,
		residents:   residents,
		users:       users,
		contractors: contractors,
	}, nil
}

// CreateEnhancedInput captures creation-time enhanced request fields.
type CreateEnhancedInput struct {
	UnitID        uuid.UUID
	PropertyID    uuid.UUID
	ResidentID    uuid.UUID
	ContractorID  *uuid.UUID
	CreatedBy     uuid.UUID
	Title         string
	Description   string
	Category      string
	Priority      string
	IsEmergency   bool
	EstimatedCost *decimal.Decimal
	ScheduledDate *time.Time
}

// UpdateEnhancedInput captures the allowed mutable enhanced request fields.
type UpdateEnhancedInput struct {
	Title         *string
	Description   *string
	Category      *string
	Priority      *string
	Status        *string
	IsEmergency   *bool
	EstimatedCost *decimal.Decimal
	ScheduledDate *time.Time
}

// CreateWorkLogInput captures creation-time work log fields.
type CreateWorkLogInput struct {
	WorkerName      string
	WorkDate        time.Time
	HoursWorked     decimal.Decimal
	Cost            *decimal.Decimal
	WorkDescription string
	CreatedBy       *uuid.UUID
}

// UpdateWorkLogInput captures the allowed mutable work log fields.
type UpdateWorkLogInput struct {
	WorkerName      *string
	WorkDate        *time.Time
	HoursWorked     *decimal.Decimal
	Cost            *decimal.Decimal
	WorkDescription *string
}

func (s *enhancedService) Create(ctx context.Context, input CreateEnhancedInput) (*EnhancedRequestDTO, error) {
	fields := pkgerrors.FieldErrors{}

	if strings.TrimSpace(input.Title) == "" {
		fields.Add("title", "must not be blank")
	}
	if strings.TrimSpace(input.Description) == "" {
		fields.Add("description", "must not be blank")
	}
	if strings.TrimSpace(input.Category) == "" {
		fields.Add("category", "must not be blank")
	}
	priority := enums.MaintenancePriorityMedium
	if input.Priority != "" {
		parsed, err := enums.ParseMaintenancePriority(input.Priority)
		if err != nil {
			fields.Add("priority", "must be a valid priority")
		} else {
			priority = parsed
		}
	}
	if input.EstimatedCost != nil && input.EstimatedCost.IsNegative() {
		fields.Add("estimated_cost", "must not be negative")
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}

	request := &models.MaintenanceRequestEnhanced{
		UnitID:        input.UnitID,
		PropertyID:    input.PropertyID,
		ResidentID:    input.ResidentID,
		ContractorID:  input.ContractorID,
		CreatedBy:     input.CreatedBy,
		Title:         strings.TrimSpace(input.Title),
		Description:   strings.TrimSpace(input.Description),
		Category:      strings.TrimSpace(input.Category),
		Priority:      priority,
		Status:        enums.MaintenanceStatusOpen,
		IsEmergency:   input.IsEmergency,
		EstimatedCost: input.EstimatedCost,
		ScheduledDate: input.ScheduledDate,
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create enhanced request")
	}
	return EnhancedFromModel(request), nil
}

func (s *enhancedService) List(ctx context.Context, filter EnhancedListFilter, page pagination.Params) ([]EnhancedRequestDTO, error) {
	rows, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list enhanced requests")
	}
	return enhancedFromModels(rows), nil
}

func (s *enhancedService) GetByID(ctx context.Context, id uuid.UUID) (*EnhancedRequestDTO, error) {
	request, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return EnhancedFromModel(request), nil
}

func (s *enhancedService) Update(ctx context.Context, id uuid.UUID, input UpdateEnhancedInput) (*EnhancedRequestDTO, error) {
	request, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := pkgerrors.FieldErrors{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			fields.Add("title", "must not be blank")
		} else {
			request.Title = strings.TrimSpace(*input.Title)
		}
	}
	if input.Description != nil {
		if strings.TrimSpace(*input.Description) == "" {
			fields.Add("description", "must not be blank")
		} else {
			request.Description = strings.TrimSpace(*input.Description)
		}
	}
	if input.Category != nil {
		if strings.TrimSpace(*input.Category) == "" {
			fields.Add("category", "must not be blank")
		} else {
			request.Category = strings.TrimSpace(*input.Category)
		}
	}
	if input.Priority != nil {
		priority, err := enums.ParseMaintenancePriority(*input.Priority)
		if err != nil {
			fields.Add("priority", "must be a valid priority")
		} else {
			request.Priority = priority
		}
	}
	if input.IsEmergency != nil {
		request.IsEmergency = *input.IsEmergency
	}
	if input.EstimatedCost != nil {
		if input.EstimatedCost.IsNegative() {
			fields.Add("estimated_cost", "must not be negative")
		} else {
			request.EstimatedCost = input.EstimatedCost
		}
	}
	if input.ScheduledDate != nil {
		request.ScheduledDate = input.ScheduledDate
	}

	if input.Status != nil {
		next, err := enums.ParseMaintenanceStatus(*input.Status)
		if err != nil {
			fields.Add("status", "must be a valid maintenance status")
		} else if !request.Status.CanTransitionTo(next) {
			return nil, pkgerrors.New(pkgerrors.CodeState, "status transition not allowed").
				WithDetails(map[string]any{"from": request.Status, "to": next})
		} else if next != request.Status {
			request.Status = next
			if next == enums.MaintenanceStatusCompleted {
				now := time.Now().UTC()
				request.CompletedDate = &now
			}
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update enhanced request")
	}
	return EnhancedFromModel(request), nil
}

func (s *enhancedService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete enhanced request")
	}
	return nil
}

func (s *enhancedService) AssignContractor(ctx context.Context, id, contractorID uuid.UUID) (*EnhancedRequestDTO, error) {
	request, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeState, "request is closed").
			WithDetails(map[string]any{"status": request.Status})
	}

	ok, err := s.contractors.Exists(ctx, contractorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check contractor")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeReferential, "contractor does not exist").
			WithDetails(map[string]any{"contractor_id": contractorID})
	}

	request.ContractorID = &contractorID
	if err := s.repo.Update(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign contractor")
	}
	return EnhancedFromModel(request), nil
}

func (s *enhancedService) Stats(ctx context.Context) (*EnhancedStatsDTO, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate enhanced stats")
	}
	return stats, nil
}

// AddWorkLog appends labor to an open request. Closed requests take no
// further entries.
func (s *enhancedService) AddWorkLog(ctx context.Context, requestID uuid.UUID, input CreateWorkLogInput) (*WorkLogDTO, error) {
	request, err := s.load(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeState, "request is closed").
			WithDetails(map[string]any{"status": request.Status})
	}

	fields := pkgerrors.FieldErrors{}
	if strings.TrimSpace(input.WorkerName) == "" {
		fields.Add("worker_name", "must not be blank")
	}
	if strings.TrimSpace(input.WorkDescription) == "" {
		fields.Add("work_description", "must not be blank")
	}
	if !input.HoursWorked.IsPositive() {
		fields.Add("hours_worked", "must be positive")
	}
	if input.Cost != nil && input.Cost.IsNegative() {
		fields.Add("cost", "must not be negative")
	}
	if input.WorkDate.IsZero() {
		fields.Add("work_date", "is required")
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	log := &models.MaintenanceWorkLog{
		MaintenanceRequestID: request.ID,
		WorkerName:           strings.TrimSpace(input.WorkerName),
		WorkDate:             input.WorkDate,
		HoursWorked:          input.HoursWorked,
		Cost:                 input.Cost,
		WorkDescription:      strings.TrimSpace(input.WorkDescription),
		CreatedBy:            input.CreatedBy,
	}
	if err := s.repo.CreateWorkLog(ctx, log); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create work log")
	}
	return WorkLogFromModel(log), nil
}

func (s *enhancedService) ListWorkLogs(ctx context.Context, requestID uuid.UUID, page pagination.Params) ([]WorkLogDTO, error) {
	if _, err := s.load(ctx, requestID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListWorkLogs(ctx, requestID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list work logs")
	}
	return workLogsFromModels(rows), nil
}

func (s *enhancedService) WorkLogStats(ctx context.Context, requestID uuid.UUID) (*WorkLogStatsDTO, error) {
	if _, err := s.load(ctx, requestID); err != nil {
		return nil, err
	}
	stats, err := s.repo.WorkLogStats(ctx, requestID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "aggregate work log stats")
	}
	return stats, nil
}

func (s *enhancedService) ListAllWorkLogs(ctx context.Context, filter WorkLogListFilter, page pagination.Params) ([]WorkLogDTO, error) {
	rows, err := s.repo.ListAllWorkLogs(ctx, filter, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list work logs")
	}
	return workLogsFromModels(rows), nil
}

func (s *enhancedService) GetWorkLog(ctx context.Context, id uuid.UUID) (*WorkLogDTO, error) {
	log, err := s.loadWorkLog(ctx, id)
	if err != nil {
		return nil, err
	}
	return WorkLogFromModel(log), nil
}

// UpdateWorkLog corrects an existing entry. Entries on closed requests are
// frozen along with the request.
func (s *enhancedService) UpdateWorkLog(ctx context.Context, id uuid.UUID, input UpdateWorkLogInput) (*WorkLogDTO, error) {
	log, err := s.loadWorkLog(ctx, id)
	if err != nil {
		return nil, err
	}
	request, err := s.load(ctx, log.MaintenanceRequestID)
	if err != nil {
		return nil, err
	}
	if request.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeState, "request is closed").
			WithDetails(map[string]any{"status": request.Status})
	}

	fields := pkgerrors.FieldErrors{}
	if input.WorkerName != nil {
		if strings.TrimSpace(*input.WorkerName) == "" {
			fields.Add("worker_name", "must not be blank")
		} else {
			log.WorkerName = strings.TrimSpace(*input.WorkerName)
		}
	}
	if input.WorkDescription != nil {
		if strings.TrimSpace(*input.WorkDescription) == "" {
			fields.Add("work_description", "must not be blank")
		} else {
			log.WorkDescription = strings.TrimSpace(*input.WorkDescription)
		}
	}
	if input.HoursWorked != nil {
		if !input.HoursWorked.IsPositive() {
			fields.Add("hours_worked", "must be positive")
		} else {
			log.HoursWorked = *input.HoursWorked
		}
	}
	if input.Cost != nil {
		if input.Cost.IsNegative() {
			fields.Add("cost", "must not be negative")
		} else {
			log.Cost = input.Cost
		}
	}
	if input.WorkDate != nil {
		if input.WorkDate.IsZero() {
			fields.Add("work_date", "is required")
		} else {
			log.WorkDate = *input.WorkDate
		}
	}
	if err := fields.Err(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateWorkLog(ctx, log); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update work log")
	}
	return WorkLogFromModel(log), nil
}

func (s *enhancedService) DeleteWorkLog(ctx context.Context, id uuid.UUID) error {
	log, err := s.loadWorkLog(ctx, id)
	if err != nil {
		return err
	}
	request, err := s.load(ctx, log.MaintenanceRequestID)
	if err != nil {
		return err
	}
	if request.Status.IsTerminal() {
		return pkgerrors.New(pkgerrors.CodeState, "request is closed").
			WithDetails(map[string]any{"status": request.Status})
	}
	if err := s.repo.DeleteWorkLog(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete work log")
	}
	return nil
}

func (s *enhancedService) loadWorkLog(ctx context.Context, id uuid.UUID) (*models.MaintenanceWorkLog, error) {
	log, err := s.repo.FindWorkLogByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "work log not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load work log")
	}
	return log, nil
}

func (s *enhancedService) checkReferences(ctx context.Context, input CreateEnhancedInput) error {
	required := pkgerrors.FieldErrors{}
	if input.UnitID == uuid.Nil {
		required.Add("unit_id", "is required")
	}
	if input.PropertyID == uuid.Nil {
		required.Add("property_id", "is required")
	}
	if input.ResidentID == uuid.Nil {
		required.Add("resident_id", "is required")
	}
	if input.CreatedBy == uuid.Nil {
		required.Add("created_by", "is required")
	}
	if err := required.Err(); err != nil {
		return err
	}

	checks := []struct {
		finder referenceFinder
		id     uuid.UUID
		field  string
		label  string
	}{
		{s.units, input.UnitID, "unit_id", "unit"},
		{s.properties, input.PropertyID, "property_id", "property"},
		{s.residents, input.ResidentID, "resident_id", "resident"},
		{s.users, input.CreatedBy, "created_by", "user"},
	}
	if input.ContractorID != nil {
		checks = append(checks, struct {
			finder referenceFinder
			id     uuid.UUID
			field  string
			label  string
		}{s.contractors, *input.ContractorID, "contractor_id", "contractor"})
	}

	for _, check := range checks {
		ok, err := check.finder.Exists(ctx, check.id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check "+check.label)
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeReferential, check.label+" does not exist").
				WithDetails(map[string]any{check.field: check.id})
		}
	}
	return nil
}

func (s *enhancedService) load(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequestEnhanced, error) {
	request, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "maintenance request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load enhanced request")
	}
	return request, nil
}
