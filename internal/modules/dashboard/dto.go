package dashboard

import "time"

type Stats struct {
	ActiveEquipment    int64 `json:"active_equipment"`
	ActiveTasks        int64 `json:"active_tasks"`
	CompletedThisMonth int64 `json:"completed_this_month"`
	DueForService      int64 `json:"due_for_service"`
	OverdueTasks       int64 `json:"overdue_tasks"`
}

type AttentionTask struct {
	ID            string     `json:"id"`
	Description   string     `json:"description"`
	EquipmentID   string     `json:"equipment_id"`
	EquipmentName string     `json:"equipment_name"`
	CustomerName  string     `json:"customer_name"`
	Status        string     `json:"status"`
	ScheduledDate *time.Time `json:"scheduled_date,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type CriticalDefect struct {
	ID            string    `json:"id"`
	EquipmentID   string    `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name"`
	CustomerName  string    `json:"customer_name"`
	OperatorName  string    `json:"operator_name"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

type Attention struct {
	AwaitingApproval []AttentionTask  `json:"awaiting_approval"`
	Overdue          []AttentionTask  `json:"overdue"`
	CriticalDefects  []CriticalDefect `json:"critical_defects"`
}

// EquipmentAlert flags a unit as broken_down or approaching_service.
type EquipmentAlert struct {
	EquipmentID      string `json:"equipment_id"`
	EquipmentName    string `json:"equipment_name"`
	CustomerName     string `json:"customer_name"`
	AlertType        string `json:"alert_type"`
	TrackingUnit     string `json:"tracking_unit"`
	CurrentReading   int    `json:"current_reading"`
	NextServiceDue   *int   `json:"next_service_due,omitempty"`
	RemainingToDue   *int   `json:"remaining_to_due,omitempty"`
}

type RecentTask struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	TaskType      string    `json:"task_type"`
	Status        string    `json:"status"`
	EquipmentID   string    `json:"equipment_id"`
	EquipmentName string    `json:"equipment_name"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type View struct {
	Stats           Stats            `json:"stats"`
	Attention       Attention        `json:"attention"`
	EquipmentAlerts []EquipmentAlert `json:"equipment_alerts"`
	RecentActivity  []RecentTask     `json:"recent_activity"`
	GeneratedAt     time.Time        `json:"generated_at"`
}
