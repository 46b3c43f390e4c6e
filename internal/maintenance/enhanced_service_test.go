package maintenance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/ridgeline-hq/hoa-backend/pkg/db/models"
	"github.com/ridgeline-hq/hoa-backend/pkg/enums"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/pagination"
)

func TestNewEnhancedServiceRequiresRepo(t *testing.T) {
	f := stubFinder{ok: true}
	_, err := NewEnhancedService(nil, f, f, f, f, f)
	if err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestNewEnhancedServiceRequiresReferenceRepos(t *testing.T) {
	f := stubFinder{ok: true}
	_, err := NewEnhancedService(&stubEnhancedRepo{}, f, f, nil, f, f)
	if err == nil {
		t.Fatal("expected error creating service without reference repos")
	}
}

func TestEnhancedCreateOpensRequest(t *testing.T) {
	repo := &stubEnhancedRepo{}
	svc := newEnhancedMaintSvc(t, repo)

	dto, err := svc.Create(context.Background(), baseEnhancedInput())
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	if dto.Status != enums.MaintenanceStatusOpen {
		t.Fatalf("expected open status, got %s", dto.Status)
	}
	if dto.CompletedDate != nil {
		t.Fatal("expected no completed date on a fresh request")
	}
}

func TestEnhancedCreateMissingCreatedBy(t *testing.T) {
	svc := newEnhancedMaintSvc(t, &stubEnhancedRepo{})

	input := baseEnhancedInput()
	input.CreatedBy = uuid.Nil

	_, gotErr := svc.Create(context.Background(), input)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestEnhancedUpdateCompletionStampsDate(t *testing.T) {
	request := baseEnhancedRequest()
	request.Status = enums.MaintenanceStatusInProgress
	repo := &stubEnhancedRepo{request: request}
	svc := newEnhancedMaintSvc(t, repo)

	next := "completed"
	dto, err := svc.Update(context.Background(), request.ID, UpdateEnhancedInput{Status: &next})
	if err != nil {
		t.Fatalf("update request: %v", err)
	}
	if dto.Status != enums.MaintenanceStatusCompleted {
		t.Fatalf("expected completed, got %s", dto.Status)
	}
	if dto.CompletedDate == nil {
		t.Fatal("expected completed date stamped")
	}
}

func TestEnhancedUpdateRejectsReopen(t *testing.T) {
	request := baseEnhancedRequest()
	request.Status = enums.MaintenanceStatusCancelled
	repo := &stubEnhancedRepo{request: request}
	svc := newEnhancedMaintSvc(t, repo)

	next := "in_progress"
	_, gotErr := svc.Update(context.Background(), request.ID, UpdateEnhancedInput{Status: &next})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeState {
		t.Fatalf("expected state conflict, got %v", gotErr)
	}
}

func TestAssignContractor(t *testing.T) {
	request := baseEnhancedRequest()
	repo := &stubEnhancedRepo{request: request}
	svc := newEnhancedMaintSvc(t, repo)

	contractorID := uuid.New()
	dto, err := svc.AssignContractor(context.Background(), request.ID, contractorID)
	if err != nil {
		t.Fatalf("assign contractor: %v", err)
	}
	if dto.ContractorID == nil || *dto.ContractorID != contractorID {
		t.Fatalf("expected contractor %s assigned, got %v", contractorID, dto.ContractorID)
	}
}

func TestAssignContractorOnClosedRequest(t *testing.T) {
	request := baseEnhancedRequest()
	request.Status = enums.MaintenanceStatusCompleted
	repo := &stubEnhancedRepo{request: request}
	svc := newEnhancedMaintSvc(t, repo)

	_, gotErr := svc.AssignContractor(context.Background(), request.ID, uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeState {
		t.Fatalf("expected state conflict, got %v", gotErr)
	}
}

func TestAssignUnknownContractor(t *testing.T) {
	request := baseEnhancedRequest()
	repo := &stubEnhancedRepo{request: request}
	f := stubFinder{ok: true}
	svc, err := NewEnhancedService(repo, f, f, f, f, stubFinder{ok: false})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.AssignContractor(context.Background(), request.ID, uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeReferential {
		t.Fatalf("expected referential code, got %v", gotErr)
	}
}

func TestAddWorkLog(t *testing.T) {
	request := baseEnhancedRequest()
	request.Status = enums.MaintenanceStatusInProgress
	repo := &stubEnhancedRepo{request: request}
	svc := newEnhancedMaintSvc(t, repo)

	dto, err := svc.AddWorkLog(context.Background(), request.ID, CreateWorkLogInput{
		WorkerName:      "  R. Delgado ",
		WorkDate:        time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		HoursWorked:     decimal.NewFromFloat(3.5),
		WorkDescription: "Replaced supply line",
	})
	if err != nil {
		t.Fatalf("add work log: %v", err)
	}
	if dto.WorkerName != "R. Delgado" {
		t.Fatalf("expected trimmed worker name, got %q", dto.WorkerName)
	}
	if dto.MaintenanceRequestID != request.ID {
		t.Fatal("expected log bound to the request")
	}
}

func TestAddWorkLogOnClosedRequest(t *testing.T) {
	request := baseEnhancedRequest()
	request.Status = enums.MaintenanceStatusCancelled
	repo := &stubEnhancedRepo{request: request}
	svc := newEnhancedMaintSvc(t, repo)

	_, gotErr := svc.AddWorkLog(context.Background(), request.ID, CreateWorkLogInput{
		WorkerName:      "R. Delgado",
		WorkDate:        time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		HoursWorked:     decimal.NewFromFloat(3.5),
		WorkDescription: "Replaced supply line",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeState {
		t.Fatalf("expected state conflict, got %v", gotErr)
	}
	if repo.workLogCreated != nil {
		t.Fatal("expected work log rejected before the repository")
	}
}

func TestAddWorkLogRequiresPositiveHours(t *testing.T) {
	request := baseEnhancedRequest()
	repo := &stubEnhancedRepo{request: request}
	svc := newEnhancedMaintSvc(t, repo)

	_, gotErr := svc.AddWorkLog(context.Background(), request.ID, CreateWorkLogInput{
		WorkerName:      "R. Delgado",
		WorkDate:        time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
		HoursWorked:     decimal.Zero,
		WorkDescription: "Inspection",
	})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestWorkLogStatsUnknownRequest(t *testing.T) {
	repo := &stubEnhancedRepo{err: gorm.ErrRecordNotFound}
	svc := newEnhancedMaintSvc(t, repo)

	_, gotErr := svc.WorkLogStats(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestGetWorkLogNotFound(t *testing.T) {
	repo := &stubEnhancedRepo{}
	svc := newEnhancedMaintSvc(t, repo)

	_, gotErr := svc.GetWorkLog(context.Background(), uuid.New())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestUpdateWorkLogCorrectsEntry(t *testing.T) {
	request := baseEnhancedRequest()
	repo := &stubEnhancedRepo{request: request, workLog: baseWorkLog(request.ID)}
	svc := newEnhancedMaintSvc(t, repo)

	name := "  Rosa Delgado  "
	hours := decimal.NewFromFloat(5.5)
	dto, err := svc.UpdateWorkLog(context.Background(), repo.workLog.ID, UpdateWorkLogInput{
		WorkerName:  &name,
		HoursWorked: &hours,
	})
	if err != nil {
		t.Fatalf("update work log: %v", err)
	}
	if dto.WorkerName != "Rosa Delgado" {
		t.Fatalf("expected trimmed worker name, got %q", dto.WorkerName)
	}
	if !dto.HoursWorked.Equal(hours) {
		t.Fatalf("expected hours %s, got %s", hours, dto.HoursWorked)
	}
	if repo.workLogUpdates != 1 {
		t.Fatalf("expected one repository update, got %d", repo.workLogUpdates)
	}
}

func TestUpdateWorkLogRejectsZeroHours(t *testing.T) {
	request := baseEnhancedRequest()
	repo := &stubEnhancedRepo{request: request, workLog: baseWorkLog(request.ID)}
	svc := newEnhancedMaintSvc(t, repo)

	hours := decimal.Zero
	_, gotErr := svc.UpdateWorkLog(context.Background(), repo.workLog.ID, UpdateWorkLogInput{HoursWorked: &hours})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
	if repo.workLogUpdates != 0 {
		t.Fatal("expected update never to reach the repository")
	}
}

func TestUpdateWorkLogOnClosedRequest(t *testing.T) {
	request := baseEnhancedRequest()
	request.Status = enums.MaintenanceStatusCompleted
	repo := &stubEnhancedRepo{request: request, workLog: baseWorkLog(request.ID)}
	svc := newEnhancedMaintSvc(t, repo)

	name := "Rosa Delgado"
	_, gotErr := svc.UpdateWorkLog(context.Background(), repo.workLog.ID, UpdateWorkLogInput{WorkerName: &name})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeState {
		t.Fatalf("expected state code, got %v", gotErr)
	}
	if repo.workLogUpdates != 0 {
		t.Fatal("expected update never to reach the repository")
	}
}

func TestDeleteWorkLog(t *testing.T) {
	request := baseEnhancedRequest()
	repo := &stubEnhancedRepo{request: request, workLog: baseWorkLog(request.ID)}
	svc := newEnhancedMaintSvc(t, repo)

	if err := svc.DeleteWorkLog(context.Background(), repo.workLog.ID); err != nil {
		t.Fatalf("delete work log: %v", err)
	}
	if repo.workLogDeletes != 1 {
		t.Fatalf("expected one repository delete, got %d", repo.workLogDeletes)
	}
}

func TestDeleteWorkLogOnClosedRequest(t *testing.T) {
	request := baseEnhancedRequest()
	request.Status = enums.MaintenanceStatusCancelled
	repo := &stubEnhancedRepo{request: request, workLog: baseWorkLog(request.ID)}
	svc := newEnhancedMaintSvc(t, repo)

	gotErr := svc.DeleteWorkLog(context.Background(), repo.workLog.ID)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeState {
		t.Fatalf("expected state code, got %v", gotErr)
	}
	if repo.workLogDeletes != 0 {
		t.Fatal("expected delete never to reach the repository")
	}
}

func TestListAllWorkLogsForwardsFilter(t *testing.T) {
	request := baseEnhancedRequest()
	repo := &stubEnhancedRepo{request: request, workLog: baseWorkLog(request.ID)}
	svc := newEnhancedMaintSvc(t, repo)

	worker := "rosa"
	list, err := svc.ListAllWorkLogs(context.Background(), WorkLogListFilter{
		RequestID:  &request.ID,
		WorkerName: &worker,
	}, pagination.Params{})
	if err != nil {
		t.Fatalf("list work logs: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one entry, got %d", len(list))
	}
	if repo.lastListFilter.RequestID == nil || *repo.lastListFilter.RequestID != request.ID {
		t.Fatal("expected request filter to reach the repository")
	}
	if repo.lastListFilter.WorkerName == nil || *repo.lastListFilter.WorkerName != worker {
		t.Fatal("expected worker filter to reach the repository")
	}
}

func newEnhancedMaintSvc(t *testing.T, repo *stubEnhancedRepo) EnhancedService {
	t.Helper()
	f := stubFinder{ok: true}
	svc, err := NewEnhancedService(repo, f, f, f, f, f)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func baseEnhancedInput() CreateEnhancedInput {
	return CreateEnhancedInput{
		UnitID:      uuid.New(),
		PropertyID:  uuid.New(),
		ResidentID:  uuid.New(),
		CreatedBy:   uuid.New(),
		Title:       "HVAC failure",
		Description: "No cold air in unit 204",
		Category:    "hvac",
	}
}

func baseEnhancedRequest() *models.MaintenanceRequestEnhanced {
	return &models.MaintenanceRequestEnhanced{
		ID:          uuid.New(),
		UnitID:      uuid.New(),
		PropertyID:  uuid.New(),
		ResidentID:  uuid.New(),
		CreatedBy:   uuid.New(),
		Title:       "HVAC failure",
		Description: "No cold air in unit 204",
		Category:    "hvac",
		Priority:    enums.MaintenancePriorityHigh,
		Status:      enums.MaintenanceStatusOpen,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

func baseWorkLog(requestID uuid.UUID) *models.MaintenanceWorkLog {
	return &models.MaintenanceWorkLog{
		ID:                   uuid.New(),
		MaintenanceRequestID: requestID,
		WorkerName:           "Miguel Torres",
		WorkDate:             time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		HoursWorked:          decimal.NewFromFloat(3.5),
		WorkDescription:      "Replaced condenser fan",
		CreatedAt:            time.Now(),
		UpdatedAt:            time.Now(),
	}
}

type stubEnhancedRepo struct {
	request         *models.MaintenanceRequestEnhanced
	err             error
	workLog         *models.MaintenanceWorkLog
	workLogCreated  *models.MaintenanceWorkLog
	workLogUpdates  int
	workLogDeletes  int
	lastListFilter  WorkLogListFilter
	listFilterCalls int
}

func (s *stubEnhancedRepo) Create(ctx context.Context, request *models.MaintenanceRequestEnhanced) error {
	if s.err != nil {
		return s.err
	}
	request.ID = uuid.New()
	return nil
}

func (s *stubEnhancedRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceRequestEnhanced, error) {
	return s.request, s.err
}

func (s *stubEnhancedRepo) List(ctx context.Context, filter EnhancedListFilter, page pagination.Params) ([]models.MaintenanceRequestEnhanced, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.request == nil {
		return nil, nil
	}
	return []models.MaintenanceRequestEnhanced{*s.request}, nil
}

func (s *stubEnhancedRepo) Update(ctx context.Context, request *models.MaintenanceRequestEnhanced) error {
	return s.err
}

func (s *stubEnhancedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return s.err
}

func (s *stubEnhancedRepo) Stats(ctx context.Context) (*EnhancedStatsDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &EnhancedStatsDTO{}, nil
}

func (s *stubEnhancedRepo) CreateWorkLog(ctx context.Context, log *models.MaintenanceWorkLog) error {
	if s.err != nil {
		return s.err
	}
	log.ID = uuid.New()
	s.workLogCreated = log
	return nil
}

func (s *stubEnhancedRepo) ListWorkLogs(ctx context.Context, requestID uuid.UUID, page pagination.Params) ([]models.MaintenanceWorkLog, error) {
	return nil, s.err
}

func (s *stubEnhancedRepo) FindWorkLogByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceWorkLog, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.workLog == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.workLog, nil
}

func (s *stubEnhancedRepo) ListAllWorkLogs(ctx context.Context, filter WorkLogListFilter, page pagination.Params) ([]models.MaintenanceWorkLog, error) {
	s.lastListFilter = filter
	s.listFilterCalls++
	if s.err != nil {
		return nil, s.err
	}
	if s.workLog == nil {
		return nil, nil
	}
	return []models.MaintenanceWorkLog{*s.workLog}, nil
}

func (s *stubEnhancedRepo) UpdateWorkLog(ctx context.Context, log *models.MaintenanceWorkLog) error {
	if s.err != nil {
		return s.err
	}
	s.workLogUpdates++
	return nil
}

func (s *stubEnhancedRepo) DeleteWorkLog(ctx context.Context, id uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.workLogDeletes++
	return nil
}

func (s *stubEnhancedRepo) WorkLogStats(ctx context.Context, requestID uuid.UUID) (*WorkLogStatsDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &WorkLogStatsDTO{MaintenanceRequestID: requestID}, nil
}
