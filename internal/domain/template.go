package domain

import "time"

type PrestartFieldType string

const (
	FieldPassFail PrestartFieldType = "pass_fail"
	FieldYesNo    PrestartFieldType = "yes_no"
	FieldText     PrestartFieldType = "text"
	FieldNumber   PrestartFieldType = "number"
)

type PrestartTemplate struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name" validate:"required"`
	Description    string    `json:"description,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Items []PrestartTemplateItem `json:"items,omitempty" gorm:"foreignKey:TemplateID"`
}

type PrestartTemplateItem struct {
	ID         string            `json:"id"`
	TemplateID string            `json:"template_id"`
	Label      string            `json:"label" validate:"required"`
	FieldType  PrestartFieldType `json:"field_type"`
	IsRequired bool              `json:"is_required"`

	// IsCritical marks items whose failure takes the equipment down and
	// generates a breakdown task instead of a defect task.
	IsCritical bool      `json:"is_critical"`
	SortOrder  int       `json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
}

// TemplateAssignment binds a pre-start template to one equipment unit.
type TemplateAssignment struct {
	ID                 string    `json:"id"`
	EquipmentID        string    `json:"equipment_id"`
	PrestartTemplateID string    `json:"prestart_template_id"`
	CreatedAt          time.Time `json:"created_at"`
}
