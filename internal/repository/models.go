package repository

import "time"

// Row models are private to this package; services only ever see
// internal/domain types. Models is consumed by database.Migrate.

type userModel struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash"`
	Name         string    `gorm:"column:name"`
	Phone        *string   `gorm:"column:phone"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

type organizationModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	LogoURL   *string   `gorm:"column:logo_url"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (organizationModel) TableName() string { return "organizations" }

type orgMemberModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	OrganizationID string    `gorm:"column:organization_id;index"`
	UserID         string    `gorm:"column:user_id;index"`
	Role           string    `gorm:"column:role"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (orgMemberModel) TableName() string { return "org_members" }

type customerModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	OrganizationID string    `gorm:"column:organization_id;index"`
	Name           string    `gorm:"column:name"`
	ContactName    *string   `gorm:"column:contact_name"`
	ContactEmail   *string   `gorm:"column:contact_email"`
	ContactPhone   *string   `gorm:"column:contact_phone"`
	Address        *string   `gorm:"column:address"`
	Notes          *string   `gorm:"column:notes;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (customerModel) TableName() string { return "customers" }

type equipmentModel struct {
	ID                   string    `gorm:"column:id;primaryKey"`
	OrganizationID       string    `gorm:"column:organization_id;index"`
	CustomerID           string    `gorm:"column:customer_id;index"`
	UnitName             string    `gorm:"column:unit_name"`
	Make                 *string   `gorm:"column:make"`
	Model                *string   `gorm:"column:model"`
	SerialNumber         *string   `gorm:"column:serial_number"`
	Registration         *string   `gorm:"column:registration"`
	Location             *string   `gorm:"column:location"`
	PhotoURL             *string   `gorm:"column:photo_url"`
	TrackingUnit         string    `gorm:"column:tracking_unit"`
	CurrentReading       int       `gorm:"column:current_reading"`
	NextServiceDue       *int      `gorm:"column:next_service_due"`
	NextServiceType      *string   `gorm:"column:next_service_type"`
	ServiceIntervalHours *int      `gorm:"column:service_interval_hours"`
	ServiceIntervalKms   *int      `gorm:"column:service_interval_kms"`
	Status               string    `gorm:"column:status"`
	OperatingStatus      string    `gorm:"column:operating_status"`
	QRCodeURL            *string   `gorm:"column:qr_code_url"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (equipmentModel) TableName() string { return "equipment" }

type taskModel struct {
	ID                       string     `gorm:"column:id;primaryKey"`
	OrganizationID           string     `gorm:"column:organization_id;index"`
	EquipmentID              string     `gorm:"column:equipment_id;index"`
	CustomerID               string     `gorm:"column:customer_id;index"`
	Type                     string     `gorm:"column:type"`
	Status                   string     `gorm:"column:status;index"`
	Description              *string    `gorm:"column:description;type:text"`
	ReportedByName           *string    `gorm:"column:reported_by_name"`
	ReportedByPhone          *string    `gorm:"column:reported_by_phone"`
	EquipmentReadingAtReport *int       `gorm:"column:equipment_reading_at_report"`
	ScheduledDate            *time.Time `gorm:"column:scheduled_date"`
	AssignedMechanicID       *string    `gorm:"column:assigned_mechanic_id"`
	CreatedAt                time.Time  `gorm:"column:created_at"`
	UpdatedAt                time.Time  `gorm:"column:updated_at"`
}

func (taskModel) TableName() string { return "tasks" }

type prestartTemplateModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	OrganizationID string    `gorm:"column:organization_id;index"`
	Name           string    `gorm:"column:name"`
	Description    *string   `gorm:"column:description;type:text"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (prestartTemplateModel) TableName() string { return "prestart_templates" }

type prestartTemplateItemModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	TemplateID string    `gorm:"column:template_id;index"`
	Label      string    `gorm:"column:label"`
	FieldType  string    `gorm:"column:field_type"`
	IsRequired bool      `gorm:"column:is_required"`
	IsCritical bool      `gorm:"column:is_critical"`
	SortOrder  int       `gorm:"column:sort_order"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (prestartTemplateItemModel) TableName() string { return "prestart_template_items" }

type templateAssignmentModel struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	EquipmentID        string    `gorm:"column:equipment_id;uniqueIndex"`
	PrestartTemplateID string    `gorm:"column:prestart_template_id"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (templateAssignmentModel) TableName() string { return "template_assignments" }

type prestartSubmissionModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	OrganizationID   string    `gorm:"column:organization_id;index"`
	EquipmentID      string    `gorm:"column:equipment_id;index"`
	TemplateID       string    `gorm:"column:template_id"`
	OperatorName     string    `gorm:"column:operator_name"`
	OperatorPhone    *string   `gorm:"column:operator_phone"`
	EquipmentReading int       `gorm:"column:equipment_reading"`
	CreatedAt        time.Time `gorm:"column:created_at;index"`
}

func (prestartSubmissionModel) TableName() string { return "prestart_submissions" }

type prestartSubmissionItemModel struct {
	ID                 string    `gorm:"column:id;primaryKey"`
	SubmissionID       string    `gorm:"column:submission_id;index"`
	TemplateItemID     string    `gorm:"column:template_item_id"`
	Result             string    `gorm:"column:result"`
	FailureDescription *string   `gorm:"column:failure_description"`
	GeneratedTaskID    *string   `gorm:"column:generated_task_id"`
	CreatedAt          time.Time `gorm:"column:created_at"`
}

func (prestartSubmissionItemModel) TableName() string { return "prestart_submission_items" }

type prestartItemMediaModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	SubmissionItemID string    `gorm:"column:submission_item_id;index"`
	FileURL          string    `gorm:"column:file_url"`
	FileType         string    `gorm:"column:file_type"`
	FileName         *string   `gorm:"column:file_name"`
	CreatedAt        time.Time `gorm:"column:created_at"`
}

func (prestartItemMediaModel) TableName() string { return "prestart_submission_item_media" }

type defectReportModel struct {
	ID               string    `gorm:"column:id;primaryKey"`
	OrganizationID   string    `gorm:"column:organization_id;index"`
	EquipmentID      string    `gorm:"column:equipment_id;index"`
	OperatorName     string    `gorm:"column:operator_name"`
	OperatorPhone    *string   `gorm:"column:operator_phone"`
	EquipmentReading int       `gorm:"column:equipment_reading"`
	Description      string    `gorm:"column:description;type:text"`
	Severity         string    `gorm:"column:severity;index"`
	IsEquipmentDown  bool      `gorm:"column:is_equipment_down"`
	GeneratedTaskID  *string   `gorm:"column:generated_task_id"`
	CreatedAt        time.Time `gorm:"column:created_at;index"`
}

func (defectReportModel) TableName() string { return "qr_defect_reports" }

type defectReportMediaModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	ReportID  string    `gorm:"column:report_id;index"`
	FileURL   string    `gorm:"column:file_url"`
	FileType  string    `gorm:"column:file_type"`
	FileName  *string   `gorm:"column:file_name"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (defectReportMediaModel) TableName() string { return "qr_defect_report_media" }

// Models returns every row model for schema migration.
func Models() []any {
	return []any{
		&userModel{},
		&organizationModel{},
		&orgMemberModel{},
		&customerModel{},
		&equipmentModel{},
		&taskModel{},
		&prestartTemplateModel{},
		&prestartTemplateItemModel{},
		&templateAssignmentModel{},
		&prestartSubmissionModel{},
		&prestartSubmissionItemModel{},
		&prestartItemMediaModel{},
		&defectReportModel{},
		&defectReportMediaModel{},
	}
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
