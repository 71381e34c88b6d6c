package tasks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"dieselx/internal/domain"
	"dieselx/internal/repository"
)

type Service struct {
	tasks     TaskRepository
	equipment EquipmentRepository
}

func NewService(tasks TaskRepository, equipment EquipmentRepository) *Service {
	return &Service{tasks: tasks, equipment: equipment}
}

func (s *Service) List(ctx context.Context, orgID string, f ListFilter) ([]domain.Task, error) {
	return s.tasks.ListByOrg(ctx, orgID, repository.TaskFilter{
		Status:      f.Status,
		Type:        f.Type,
		EquipmentID: f.EquipmentID,
		Limit:       f.Limit,
		Offset:      f.Offset,
	})
}

func (s *Service) Get(ctx context.Context, orgID, id string) (*domain.Task, error) {
	return s.orgTask(ctx, orgID, id)
}

// Create records a manually raised task. Generated tasks from the QR portal
// never pass through here.
func (s *Service) Create(ctx context.Context, orgID string, req *CreateTaskRequest) (*domain.Task, error) {
	eq, err := s.equipment.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	if eq.OrganizationID != orgID {
		return nil, ErrEquipmentNotFound
	}

	task := &domain.Task{
		OrganizationID: orgID,
		EquipmentID:    eq.ID,
		CustomerID:     eq.CustomerID,
		Type:           domain.TaskType(req.Type),
		Status:         domain.TaskCreated,
		Description:    req.Description,
		ScheduledDate:  req.ScheduledDate,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateStatus moves a task through its lifecycle. Only transitions allowed
// by the status machine are accepted.
func (s *Service) UpdateStatus(ctx context.Context, orgID, id string, status string) (*domain.Task, error) {
	task, err := s.orgTask(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	to := domain.TaskStatus(status)
	if err := domain.ValidateTransition(task.Status, to); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTransition, err)
	}

	if err := s.tasks.UpdateStatus(ctx, id, to); err != nil {
		return nil, err
	}
	task.Status = to
	task.UpdatedAt = time.Now()
	return task, nil
}

func (s *Service) Schedule(ctx context.Context, orgID, id string, date *time.Time) (*domain.Task, error) {
	task, err := s.orgTask(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.Schedule(ctx, id, date); err != nil {
		return nil, err
	}
	task.ScheduledDate = date
	return task, nil
}

func (s *Service) Assign(ctx context.Context, orgID, id string, mechanicID *string) (*domain.Task, error) {
	task, err := s.orgTask(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	if err := s.tasks.AssignMechanic(ctx, id, mechanicID); err != nil {
		return nil, err
	}
	task.AssignedMechanicID = mechanicID
	return task, nil
}

// Transitions returns the statuses the task may move to from its current
// state, for driving the action buttons in the UI.
func (s *Service) Transitions(ctx context.Context, orgID, id string) (*TransitionsView, error) {
	task, err := s.orgTask(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	next := domain.ValidNextStatuses(task.Status)
	out := make([]string, len(next))
	for i, st := range next {
		out[i] = string(st)
	}
	return &TransitionsView{Status: string(task.Status), ValidStatuses: out}, nil
}

func (s *Service) orgTask(ctx context.Context, orgID, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	if task.OrganizationID != orgID {
		return nil, ErrTaskNotFound
	}
	return task, nil
}
