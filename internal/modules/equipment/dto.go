package equipment

type CreateEquipmentRequest struct {
	CustomerID           string `json:"customer_id" validate:"required"`
	UnitName             string `json:"unit_name" validate:"required"`
	Make                 string `json:"make"`
	Model                string `json:"model"`
	SerialNumber         string `json:"serial_number"`
	Registration         string `json:"registration"`
	Location             string `json:"location"`
	TrackingUnit         string `json:"tracking_unit" validate:"required,oneof=hours kilometers"`
	CurrentReading       int    `json:"current_reading" validate:"min=0"`
	NextServiceDue       *int   `json:"next_service_due"`
	NextServiceType      string `json:"next_service_type"`
	ServiceIntervalHours *int   `json:"service_interval_hours"`
	ServiceIntervalKms   *int   `json:"service_interval_kms"`
}

// UpdateEquipmentRequest uses pointers so absent fields keep their stored
// values.
type UpdateEquipmentRequest struct {
	CustomerID           *string `json:"customer_id"`
	UnitName             *string `json:"unit_name"`
	Make                 *string `json:"make"`
	Model                *string `json:"model"`
	SerialNumber         *string `json:"serial_number"`
	Registration         *string `json:"registration"`
	Location             *string `json:"location"`
	CurrentReading       *int    `json:"current_reading"`
	NextServiceDue       *int    `json:"next_service_due"`
	NextServiceType      *string `json:"next_service_type"`
	ServiceIntervalHours *int    `json:"service_interval_hours"`
	ServiceIntervalKms   *int    `json:"service_interval_kms"`
}

type OperatingStatusRequest struct {
	OperatingStatus string `json:"operating_status" validate:"required,oneof=up down"`
}

type QRCodeView struct {
	EquipmentID string `json:"equipment_id"`
	TargetURL   string `json:"target_url"`
	ImageURL    string `json:"image_url"`
}
