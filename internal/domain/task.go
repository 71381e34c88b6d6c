package domain

import "time"

type TaskType string

const (
	TaskBreakdown          TaskType = "breakdown"
	TaskDefect             TaskType = "defect"
	TaskPlannedMaintenance TaskType = "planned_maintenance"
)

type TaskStatus string

const (
	TaskCreated     TaskStatus = "created"
	TaskApproved    TaskStatus = "approved"
	TaskPrepared    TaskStatus = "prepared"
	TaskAssigned    TaskStatus = "assigned"
	TaskAccepted    TaskStatus = "accepted"
	TaskInProgress  TaskStatus = "in_progress"
	TaskCompleted   TaskStatus = "completed"
	TaskNotApproved TaskStatus = "not_approved"
)

type Task struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organization_id"`
	EquipmentID    string `json:"equipment_id" validate:"required"`

	// CustomerID is copied from the equipment's owner at creation time and
	// never follows later reassignments.
	CustomerID               string     `json:"customer_id"`
	Type                     TaskType   `json:"type"`
	Status                   TaskStatus `json:"status"`
	Description              string     `json:"description,omitempty" gorm:"type:text"`
	ReportedByName           string     `json:"reported_by_name,omitempty"`
	ReportedByPhone          string     `json:"reported_by_phone,omitempty"`
	EquipmentReadingAtReport *int       `json:"equipment_reading_at_report,omitempty"`
	ScheduledDate            *time.Time `json:"scheduled_date,omitempty"`
	AssignedMechanicID       *string    `json:"assigned_mechanic_id,omitempty"`
	CreatedAt                time.Time  `json:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at"`

	Equipment *Equipment `json:"equipment,omitempty" gorm:"foreignKey:EquipmentID"`
}
