package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"dieselx/internal/domain"
	"dieselx/internal/repository"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t *domain.Task) error {
	args := m.Called(ctx, t)
	if t != nil && t.ID == "" {
		t.ID = "task-1"
	}
	return args.Error(0)
}

func (m *MockTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByOrg(ctx context.Context, orgID string, f repository.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, orgID, f)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *MockTaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockTaskRepository) Schedule(ctx context.Context, id string, date *time.Time) error {
	args := m.Called(ctx, id, date)
	return args.Error(0)
}

func (m *MockTaskRepository) AssignMechanic(ctx context.Context, id string, mechanicID *string) error {
	args := m.Called(ctx, id, mechanicID)
	return args.Error(0)
}

type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func storedTask(status domain.TaskStatus) *domain.Task {
	return &domain.Task{
		ID:             "task-1",
		OrganizationID: "org-1",
		EquipmentID:    "eq-1",
		CustomerID:     "cust-1",
		Type:           domain.TaskDefect,
		Status:         status,
	}
}

func TestUpdateStatusValidTransition(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	taskRepo.On("GetByID", mock.Anything, "task-1").Return(storedTask(domain.TaskCreated), nil)
	taskRepo.On("UpdateStatus", mock.Anything, "task-1", domain.TaskApproved).Return(nil)

	svc := NewService(taskRepo, new(MockEquipmentRepository))

	task, err := svc.UpdateStatus(context.Background(), "org-1", "task-1", "approved")
	assert.NoError(t, err)
	assert.Equal(t, domain.TaskApproved, task.Status)
	taskRepo.AssertExpectations(t)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	taskRepo.On("GetByID", mock.Anything, "task-1").Return(storedTask(domain.TaskCreated), nil)

	svc := NewService(taskRepo, new(MockEquipmentRepository))

	_, err := svc.UpdateStatus(context.Background(), "org-1", "task-1", "in_progress")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Contains(t, err.Error(), "approved")
	taskRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatusTerminalState(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	taskRepo.On("GetByID", mock.Anything, "task-1").Return(storedTask(domain.TaskNotApproved), nil)

	svc := NewService(taskRepo, new(MockEquipmentRepository))

	_, err := svc.UpdateStatus(context.Background(), "org-1", "task-1", "created")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestUpdateStatusWrongOrg(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	taskRepo.On("GetByID", mock.Anything, "task-1").Return(storedTask(domain.TaskCreated), nil)

	svc := NewService(taskRepo, new(MockEquipmentRepository))

	_, err := svc.UpdateStatus(context.Background(), "other-org", "task-1", "approved")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestCreateCopiesCustomerFromEquipment(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(&domain.Equipment{
		ID:             "eq-1",
		OrganizationID: "org-1",
		CustomerID:     "cust-9",
	}, nil)

	taskRepo := new(MockTaskRepository)
	taskRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(taskRepo, eqRepo)

	task, err := svc.Create(context.Background(), "org-1", &CreateTaskRequest{
		EquipmentID: "eq-1",
		Type:        "planned_maintenance",
		Description: "250h service",
	})
	assert.NoError(t, err)
	assert.Equal(t, "cust-9", task.CustomerID)
	assert.Equal(t, domain.TaskCreated, task.Status)
	assert.Equal(t, domain.TaskPlannedMaintenance, task.Type)
}

func TestCreateRejectsForeignEquipment(t *testing.T) {
	eqRepo := new(MockEquipmentRepository)
	eqRepo.On("GetByID", mock.Anything, "eq-1").Return(&domain.Equipment{
		ID:             "eq-1",
		OrganizationID: "other-org",
	}, nil)

	svc := NewService(new(MockTaskRepository), eqRepo)

	_, err := svc.Create(context.Background(), "org-1", &CreateTaskRequest{
		EquipmentID: "eq-1",
		Type:        "defect",
		Description: "x",
	})
	assert.ErrorIs(t, err, ErrEquipmentNotFound)
}

func TestTransitionsListsValidTargets(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	taskRepo.On("GetByID", mock.Anything, "task-1").Return(storedTask(domain.TaskInProgress), nil)

	svc := NewService(taskRepo, new(MockEquipmentRepository))

	view, err := svc.Transitions(context.Background(), "org-1", "task-1")
	assert.NoError(t, err)
	assert.Equal(t, "in_progress", view.Status)
	assert.ElementsMatch(t, []string{"completed", "not_approved"}, view.ValidStatuses)
}

func TestGetNotFound(t *testing.T) {
	taskRepo := new(MockTaskRepository)
	taskRepo.On("GetByID", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	svc := NewService(taskRepo, new(MockEquipmentRepository))

	_, err := svc.Get(context.Background(), "org-1", "missing")
	assert.ErrorIs(t, err, ErrTaskNotFound)
}
