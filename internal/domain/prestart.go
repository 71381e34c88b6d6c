package domain

import "time"

// PrestartSubmission is one operator's completed checklist for one equipment
// unit. It is persisted atomically with its items and any generated tasks.
type PrestartSubmission struct {
	ID               string    `json:"id"`
	OrganizationID   string    `json:"organization_id"`
	EquipmentID      string    `json:"equipment_id"`
	TemplateID       string    `json:"template_id"`
	OperatorName     string    `json:"operator_name"`
	OperatorPhone    string    `json:"operator_phone,omitempty"`
	EquipmentReading int       `json:"equipment_reading"`
	CreatedAt        time.Time `json:"created_at"`

	Items []PrestartSubmissionItem `json:"items,omitempty" gorm:"foreignKey:SubmissionID"`
}

type PrestartSubmissionItem struct {
	ID             string `json:"id"`
	SubmissionID   string `json:"submission_id"`
	TemplateItemID string `json:"template_item_id"`

	// Result holds "pass", "fail", "yes", "no", or the raw text/number value.
	Result             string    `json:"result"`
	FailureDescription string    `json:"failure_description,omitempty"`
	GeneratedTaskID    *string   `json:"generated_task_id,omitempty"`
	CreatedAt          time.Time `json:"created_at"`

	Media []PrestartItemMedia `json:"media,omitempty" gorm:"foreignKey:SubmissionItemID"`
}

type PrestartItemMedia struct {
	ID               string    `json:"id"`
	SubmissionItemID string    `json:"submission_item_id"`
	FileURL          string    `json:"file_url"`
	FileType         string    `json:"file_type"` // "image" | "video"
	FileName         string    `json:"file_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
