package tasks

import (
	"context"
	"time"

	"dieselx/internal/domain"
	"dieselx/internal/repository"
)

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	ListByOrg(ctx context.Context, orgID string, f repository.TaskFilter) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error
	Schedule(ctx context.Context, id string, date *time.Time) error
	AssignMechanic(ctx context.Context, id string, mechanicID *string) error
}

type EquipmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
}
