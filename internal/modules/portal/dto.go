package portal

import (
	"mime/multipart"
	"time"
)

// PrestartItemInput is one answered checklist item as it arrives from the
// portal form, media files still unparsed.
type PrestartItemInput struct {
	TemplateItemID     string `json:"template_item_id"`
	Result             string `json:"result"`
	FailureDescription string `json:"failure_description"`

	Media []*multipart.FileHeader `json:"-"`
}

type PrestartRequest struct {
	OperatorName     string
	OperatorPhone    string
	EquipmentReading int
	Items            []PrestartItemInput
}

type ReportRequest struct {
	OperatorName     string
	OperatorPhone    string
	EquipmentReading int
	Description      string
	Severity         string

	Photos []*multipart.FileHeader
	Videos []*multipart.FileHeader
}

// EquipmentView is the public portal read model. It exposes only what an
// operator standing at the machine needs to see.
type EquipmentView struct {
	ID               string `json:"id"`
	UnitName         string `json:"unit_name"`
	Make             string `json:"make,omitempty"`
	Model            string `json:"model,omitempty"`
	TrackingUnit     string `json:"tracking_unit"`
	CurrentReading   int    `json:"current_reading"`
	OperatingStatus  string `json:"operating_status"`
	NextServiceType  string `json:"next_service_type,omitempty"`
	CustomerName     string `json:"customer_name"`
	OrganizationName string `json:"organization_name"`
	OrganizationLogo string `json:"organization_logo,omitempty"`
}

type ReadingResult struct {
	Updated        bool   `json:"updated"`
	CurrentReading int    `json:"current_reading"`
	Message        string `json:"message"`
}

type SubmitResult struct {
	SubmissionID     string   `json:"submission_id,omitempty"`
	ReportID         string   `json:"report_id,omitempty"`
	GeneratedTaskIDs []string `json:"generated_task_ids,omitempty"`
	EquipmentDown    bool     `json:"equipment_down"`
	Message          string   `json:"message"`
}

type HistoryItemView struct {
	ID                 string             `json:"id"`
	Label              string             `json:"label"`
	Result             string             `json:"result"`
	FailureDescription string             `json:"failure_description,omitempty"`
	IsCritical         bool               `json:"is_critical"`
	Media              []HistoryMediaView `json:"media"`
}

type HistoryMediaView struct {
	ID       string `json:"id"`
	FileURL  string `json:"file_url"`
	FileType string `json:"file_type"`
}

type HistoryEntryView struct {
	ID               string            `json:"id"`
	OperatorName     string            `json:"operator_name"`
	EquipmentReading int               `json:"equipment_reading"`
	CreatedAt        time.Time         `json:"created_at"`
	Items            []HistoryItemView `json:"items"`
}

// OperatorPrefill is what the portal remembers about the operator between
// visits, carried in a browser cookie.
type OperatorPrefill struct {
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}
