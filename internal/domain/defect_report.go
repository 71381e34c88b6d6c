package domain

import "time"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DefectReport is a standalone operator-submitted issue report from the QR
// portal. Breakdown reports are defect reports with severity forced to
// critical and IsEquipmentDown set.
type DefectReport struct {
	ID               string    `json:"id"`
	OrganizationID   string    `json:"organization_id"`
	EquipmentID      string    `json:"equipment_id"`
	OperatorName     string    `json:"operator_name"`
	OperatorPhone    string    `json:"operator_phone,omitempty"`
	EquipmentReading int       `json:"equipment_reading"`
	Description      string    `json:"description" gorm:"type:text"`
	Severity         Severity  `json:"severity"`
	IsEquipmentDown  bool      `json:"is_equipment_down"`
	GeneratedTaskID  *string   `json:"generated_task_id,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	Media []DefectReportMedia `json:"media,omitempty" gorm:"foreignKey:ReportID"`
}

type DefectReportMedia struct {
	ID        string    `json:"id"`
	ReportID  string    `json:"report_id"`
	FileURL   string    `json:"file_url"`
	FileType  string    `json:"file_type"` // "image" | "video"
	FileName  string    `json:"file_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
