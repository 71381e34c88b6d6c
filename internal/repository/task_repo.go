package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dieselx/internal/domain"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func toDomainTask(m taskModel) *domain.Task {
	return &domain.Task{
		ID:                       m.ID,
		OrganizationID:           m.OrganizationID,
		EquipmentID:              m.EquipmentID,
		CustomerID:               m.CustomerID,
		Type:                     domain.TaskType(m.Type),
		Status:                   domain.TaskStatus(m.Status),
		Description:              strVal(m.Description),
		ReportedByName:           strVal(m.ReportedByName),
		ReportedByPhone:          strVal(m.ReportedByPhone),
		EquipmentReadingAtReport: m.EquipmentReadingAtReport,
		ScheduledDate:            m.ScheduledDate,
		AssignedMechanicID:       m.AssignedMechanicID,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func toTaskModel(t *domain.Task) taskModel {
	return taskModel{
		ID:                       t.ID,
		OrganizationID:           t.OrganizationID,
		EquipmentID:              t.EquipmentID,
		CustomerID:               t.CustomerID,
		Type:                     string(t.Type),
		Status:                   string(t.Status),
		Description:              strPtr(t.Description),
		ReportedByName:           strPtr(t.ReportedByName),
		ReportedByPhone:          strPtr(t.ReportedByPhone),
		EquipmentReadingAtReport: t.EquipmentReadingAtReport,
		ScheduledDate:            t.ScheduledDate,
		AssignedMechanicID:       t.AssignedMechanicID,
		CreatedAt:                t.CreatedAt,
		UpdatedAt:                t.UpdatedAt,
	}
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	m := toTaskModel(t)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*t = *toDomainTask(m)
	return nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var m taskModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainTask(m), nil
}

type TaskFilter struct {
	Status      string
	Type        string
	EquipmentID string
	Limit       int
	Offset      int
}

func (r *TaskRepository) ListByOrg(ctx context.Context, orgID string, f TaskFilter) ([]domain.Task, error) {
	q := r.db.WithContext(ctx).Where("organization_id = ?", orgID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.EquipmentID != "" {
		q = q.Where("equipment_id = ?", f.EquipmentID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var models []taskModel
	if err := q.Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Task, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainTask(m))
	}
	return out, nil
}

func (r *TaskRepository) UpdateStatus(ctx context.Context, id string, status domain.TaskStatus) error {
	return r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()}).Error
}

func (r *TaskRepository) Schedule(ctx context.Context, id string, date *time.Time) error {
	return r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"scheduled_date": date, "updated_at": time.Now()}).Error
}

func (r *TaskRepository) AssignMechanic(ctx context.Context, id string, mechanicID *string) error {
	return r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"assigned_mechanic_id": mechanicID, "updated_at": time.Now()}).Error
}
