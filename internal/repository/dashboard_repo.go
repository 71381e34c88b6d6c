package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardRepository serves the read-side aggregation queries. Everything
// here is organization-scoped and read-only.
type DashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

var closedTaskStatuses = []string{"completed", "not_approved"}

func (r *DashboardRepository) CountActiveEquipment(ctx context.Context, orgID string) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("organization_id = ? AND status = ?", orgID, "active").
		Count(&cnt)
	return cnt, tx.Error
}

func (r *DashboardRepository) CountActiveTasks(ctx context.Context, orgID string) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("organization_id = ? AND status NOT IN ?", orgID, closedTaskStatuses).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *DashboardRepository) CountCompletedSince(ctx context.Context, orgID string, since time.Time) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("organization_id = ? AND status = ? AND updated_at >= ?", orgID, "completed", since).
		Count(&cnt)
	return cnt, tx.Error
}

func (r *DashboardRepository) CountDueForService(ctx context.Context, orgID string) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("organization_id = ? AND status = ?", orgID, "active").
		Where("next_service_due IS NOT NULL AND current_reading >= next_service_due").
		Count(&cnt)
	return cnt, tx.Error
}

func (r *DashboardRepository) CountOverdueTasks(ctx context.Context, orgID string, now time.Time) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&taskModel{}).
		Where("organization_id = ? AND scheduled_date IS NOT NULL AND scheduled_date < ?", orgID, now).
		Where("status NOT IN ?", closedTaskStatuses).
		Count(&cnt)
	return cnt, tx.Error
}

type AttentionTaskRow struct {
	ID            string
	Description   string
	EquipmentID   string
	EquipmentName string
	CustomerName  string
	Status        string
	ScheduledDate *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const attentionTaskSelect = `tasks.id, tasks.description, tasks.status,
	tasks.scheduled_date, tasks.created_at, tasks.updated_at,
	equipment.id AS equipment_id, equipment.unit_name AS equipment_name,
	customers.name AS customer_name`

func (r *DashboardRepository) attentionTaskQuery(ctx context.Context, orgID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("tasks").
		Select(attentionTaskSelect).
		Joins("INNER JOIN equipment ON equipment.id = tasks.equipment_id AND equipment.organization_id = ?", orgID).
		Joins("INNER JOIN customers ON customers.id = tasks.customer_id AND customers.organization_id = ?", orgID).
		Where("tasks.organization_id = ?", orgID)
}

// CreatedTasks returns tasks awaiting approval, newest first.
func (r *DashboardRepository) CreatedTasks(ctx context.Context, orgID string, limit int) ([]AttentionTaskRow, error) {
	var rows []AttentionTaskRow
	tx := r.attentionTaskQuery(ctx, orgID).
		Where("tasks.status = ?", "created").
		Order("tasks.created_at DESC").
		Limit(limit).
		Scan(&rows)
	return rows, tx.Error
}

// OverdueTasks returns open tasks with a past scheduled date, oldest first.
func (r *DashboardRepository) OverdueTasks(ctx context.Context, orgID string, now time.Time, limit int) ([]AttentionTaskRow, error) {
	var rows []AttentionTaskRow
	tx := r.attentionTaskQuery(ctx, orgID).
		Where("tasks.scheduled_date IS NOT NULL AND tasks.scheduled_date < ?", now).
		Where("tasks.status NOT IN ?", closedTaskStatuses).
		Order("tasks.scheduled_date ASC").
		Limit(limit).
		Scan(&rows)
	return rows, tx.Error
}

type CriticalDefectRow struct {
	ID            string
	EquipmentID   string
	EquipmentName string
	CustomerName  string
	OperatorName  string
	Description   string
	CreatedAt     time.Time
}

// UnlinkedCriticalDefects returns critical reports with no generated task.
// Under normal operation this set is empty: every critical report yields a
// task at intake time.
func (r *DashboardRepository) UnlinkedCriticalDefects(ctx context.Context, orgID string, limit int) ([]CriticalDefectRow, error) {
	var rows []CriticalDefectRow
	tx := r.db.WithContext(ctx).
		Table("qr_defect_reports").
		Select(`qr_defect_reports.id, qr_defect_reports.operator_name,
			qr_defect_reports.description, qr_defect_reports.created_at,
			equipment.id AS equipment_id, equipment.unit_name AS equipment_name,
			customers.name AS customer_name`).
		Joins("INNER JOIN equipment ON equipment.id = qr_defect_reports.equipment_id AND equipment.organization_id = ?", orgID).
		Joins("INNER JOIN customers ON customers.id = equipment.customer_id AND customers.organization_id = ?", orgID).
		Where("qr_defect_reports.organization_id = ?", orgID).
		Where("qr_defect_reports.severity = ? AND qr_defect_reports.generated_task_id IS NULL", "critical").
		Order("qr_defect_reports.created_at DESC").
		Limit(limit).
		Scan(&rows)
	return rows, tx.Error
}

type EquipmentAlertRow struct {
	EquipmentID          string
	EquipmentName        string
	CustomerName         string
	TrackingUnit         string
	CurrentReading       int
	NextServiceDue       *int
	ServiceIntervalHours *int
	ServiceIntervalKms   *int
}

const equipmentAlertSelect = `equipment.id AS equipment_id,
	equipment.unit_name AS equipment_name, customers.name AS customer_name,
	equipment.tracking_unit, equipment.current_reading, equipment.next_service_due,
	equipment.service_interval_hours, equipment.service_interval_kms`

// BrokenDownEquipment returns active units currently down, most recently
// updated first.
func (r *DashboardRepository) BrokenDownEquipment(ctx context.Context, orgID string, limit int) ([]EquipmentAlertRow, error) {
	var rows []EquipmentAlertRow
	tx := r.db.WithContext(ctx).
		Table("equipment").
		Select(equipmentAlertSelect).
		Joins("INNER JOIN customers ON customers.id = equipment.customer_id AND customers.organization_id = ?", orgID).
		Where("equipment.organization_id = ? AND equipment.status = ?", orgID, "active").
		Where("equipment.operating_status = ?", "down").
		Order("equipment.updated_at DESC, equipment.unit_name ASC").
		Limit(limit).
		Scan(&rows)
	return rows, tx.Error
}

// ServiceCandidates returns active units that have a next service due ahead
// of their current reading. The approaching-service threshold is applied by
// the caller.
func (r *DashboardRepository) ServiceCandidates(ctx context.Context, orgID string) ([]EquipmentAlertRow, error) {
	var rows []EquipmentAlertRow
	tx := r.db.WithContext(ctx).
		Table("equipment").
		Select(equipmentAlertSelect).
		Joins("INNER JOIN customers ON customers.id = equipment.customer_id AND customers.organization_id = ?", orgID).
		Where("equipment.organization_id = ? AND equipment.status = ?", orgID, "active").
		Where("equipment.next_service_due IS NOT NULL AND equipment.current_reading < equipment.next_service_due").
		Order("(equipment.next_service_due - equipment.current_reading) ASC, equipment.unit_name ASC").
		Scan(&rows)
	return rows, tx.Error
}

type RecentTaskRow struct {
	ID            string
	Description   string
	TaskType      string
	Status        string
	EquipmentID   string
	EquipmentName string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r *DashboardRepository) RecentTasks(ctx context.Context, orgID string, limit int) ([]RecentTaskRow, error) {
	var rows []RecentTaskRow
	tx := r.db.WithContext(ctx).
		Table("tasks").
		Select(`tasks.id, tasks.description, tasks.type AS task_type, tasks.status,
			tasks.created_at, tasks.updated_at,
			equipment.id AS equipment_id, equipment.unit_name AS equipment_name`).
		Joins("INNER JOIN equipment ON equipment.id = tasks.equipment_id AND equipment.organization_id = ?", orgID).
		Where("tasks.organization_id = ?", orgID).
		Order("tasks.updated_at DESC, tasks.created_at DESC").
		Limit(limit).
		Scan(&rows)
	return rows, tx.Error
}
