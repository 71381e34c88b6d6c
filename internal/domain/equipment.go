package domain

import "time"

type TrackingUnit string

const (
	TrackingHours      TrackingUnit = "hours"
	TrackingKilometers TrackingUnit = "kilometers"
)

type OperatingStatus string

const (
	OperatingUp   OperatingStatus = "up"
	OperatingDown OperatingStatus = "down"
)

type EquipmentStatus string

const (
	EquipmentActive   EquipmentStatus = "active"
	EquipmentInactive EquipmentStatus = "inactive"
)

type Equipment struct {
	ID             string       `json:"id"`
	OrganizationID string       `json:"organization_id"`
	CustomerID     string       `json:"customer_id" validate:"required"`
	UnitName       string       `json:"unit_name" validate:"required"`
	Make           string       `json:"make,omitempty"`
	Model          string       `json:"model,omitempty"`
	SerialNumber   string       `json:"serial_number,omitempty"`
	Registration   string       `json:"registration,omitempty"`
	Location       string       `json:"location,omitempty"`
	PhotoURL       string       `json:"photo_url,omitempty"`
	TrackingUnit   TrackingUnit `json:"tracking_unit"`

	// CurrentReading is monotonically non-decreasing; every write path must
	// reject a lower value.
	CurrentReading       int             `json:"current_reading"`
	NextServiceDue       *int            `json:"next_service_due,omitempty"`
	NextServiceType      string          `json:"next_service_type,omitempty"`
	ServiceIntervalHours *int            `json:"service_interval_hours,omitempty"`
	ServiceIntervalKms   *int            `json:"service_interval_kms,omitempty"`
	Status               EquipmentStatus `json:"status"`
	OperatingStatus      OperatingStatus `json:"operating_status"`
	QRCodeURL            string          `json:"qr_code_url,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	Customer *Customer `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

// ServiceInterval returns the configured interval for the unit the equipment
// is tracked in, or nil when none is set.
func (e *Equipment) ServiceInterval() *int {
	if e.TrackingUnit == TrackingKilometers {
		return e.ServiceIntervalKms
	}
	return e.ServiceIntervalHours
}
