package tasks

import "time"

type CreateTaskRequest struct {
	EquipmentID   string     `json:"equipment_id" validate:"required"`
	Type          string     `json:"type" validate:"required,oneof=breakdown defect planned_maintenance"`
	Description   string     `json:"description" validate:"required"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type ScheduleRequest struct {
	ScheduledDate *time.Time `json:"scheduled_date"`
}

type AssignRequest struct {
	MechanicID *string `json:"mechanic_id"`
}

type ListFilter struct {
	Status      string `form:"status"`
	Type        string `form:"type"`
	EquipmentID string `form:"equipment_id"`
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
}

type TransitionsView struct {
	Status        string   `json:"status"`
	ValidStatuses []string `json:"valid_statuses"`
}
