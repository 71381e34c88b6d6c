package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dieselx/internal/domain"
)

type EquipmentRepository struct {
	db *gorm.DB
}

func NewEquipmentRepository(db *gorm.DB) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

func toDomainEquipment(m equipmentModel) *domain.Equipment {
	return &domain.Equipment{
		ID:                   m.ID,
		OrganizationID:       m.OrganizationID,
		CustomerID:           m.CustomerID,
		UnitName:             m.UnitName,
		Make:                 strVal(m.Make),
		Model:                strVal(m.Model),
		SerialNumber:         strVal(m.SerialNumber),
		Registration:         strVal(m.Registration),
		Location:             strVal(m.Location),
		PhotoURL:             strVal(m.PhotoURL),
		TrackingUnit:         domain.TrackingUnit(m.TrackingUnit),
		CurrentReading:       m.CurrentReading,
		NextServiceDue:       m.NextServiceDue,
		NextServiceType:      strVal(m.NextServiceType),
		ServiceIntervalHours: m.ServiceIntervalHours,
		ServiceIntervalKms:   m.ServiceIntervalKms,
		Status:               domain.EquipmentStatus(m.Status),
		OperatingStatus:      domain.OperatingStatus(m.OperatingStatus),
		QRCodeURL:            strVal(m.QRCodeURL),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func toEquipmentModel(e *domain.Equipment) equipmentModel {
	return equipmentModel{
		ID:                   e.ID,
		OrganizationID:       e.OrganizationID,
		CustomerID:           e.CustomerID,
		UnitName:             e.UnitName,
		Make:                 strPtr(e.Make),
		Model:                strPtr(e.Model),
		SerialNumber:         strPtr(e.SerialNumber),
		Registration:         strPtr(e.Registration),
		Location:             strPtr(e.Location),
		PhotoURL:             strPtr(e.PhotoURL),
		TrackingUnit:         string(e.TrackingUnit),
		CurrentReading:       e.CurrentReading,
		NextServiceDue:       e.NextServiceDue,
		NextServiceType:      strPtr(e.NextServiceType),
		ServiceIntervalHours: e.ServiceIntervalHours,
		ServiceIntervalKms:   e.ServiceIntervalKms,
		Status:               string(e.Status),
		OperatingStatus:      string(e.OperatingStatus),
		QRCodeURL:            strPtr(e.QRCodeURL),
		CreatedAt:            e.CreatedAt,
		UpdatedAt:            e.UpdatedAt,
	}
}

func (r *EquipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	m := toEquipmentModel(e)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*e = *toDomainEquipment(m)
	return nil
}

func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*domain.Equipment, error) {
	var m equipmentModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainEquipment(m), nil
}

// PortalEquipmentRow is the public portal read model: equipment joined with
// its customer and owning organization.
type PortalEquipmentRow struct {
	ID               string
	UnitName         string
	Make             string
	Model            string
	TrackingUnit     string
	CurrentReading   int
	OperatingStatus  string
	NextServiceType  string
	CustomerName     string
	OrganizationID   string
	OrganizationName string
	OrganizationLogo string
}

func (r *EquipmentRepository) GetPortalView(ctx context.Context, id string) (*PortalEquipmentRow, error) {
	var row PortalEquipmentRow
	tx := r.db.WithContext(ctx).
		Table("equipment").
		Select(`equipment.id, equipment.unit_name, equipment.make, equipment.model,
			equipment.tracking_unit, equipment.current_reading, equipment.operating_status,
			equipment.next_service_type,
			customers.name AS customer_name,
			organizations.id AS organization_id,
			organizations.name AS organization_name,
			organizations.logo_url AS organization_logo`).
		Joins("INNER JOIN customers ON customers.id = equipment.customer_id").
		Joins("INNER JOIN organizations ON organizations.id = equipment.organization_id").
		Where("equipment.id = ?", id).
		Scan(&row)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if row.ID == "" {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

func (r *EquipmentRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.Equipment, error) {
	var models []equipmentModel
	tx := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("unit_name ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Equipment, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainEquipment(m))
	}
	return out, nil
}

func (r *EquipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	e.UpdatedAt = time.Now()
	m := toEquipmentModel(e)
	return r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ?", e.ID).
		Select("*").Omit("id", "organization_id", "created_at").
		Updates(&m).Error
}

func (r *EquipmentRepository) SetStatus(ctx context.Context, id string, status domain.EquipmentStatus) error {
	return r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()}).Error
}

func (r *EquipmentRepository) SetOperatingStatus(ctx context.Context, id string, status domain.OperatingStatus) error {
	return r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"operating_status": string(status), "updated_at": time.Now()}).Error
}

func (r *EquipmentRepository) SetQRCodeURL(ctx context.Context, id, url string) error {
	return r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"qr_code_url": url, "updated_at": time.Now()}).Error
}

// AdvanceReading moves the reading forward, never back. The guard predicate
// makes concurrent submissions last-writer-wins without ever lowering the
// stored value.
func (r *EquipmentRepository) AdvanceReading(ctx context.Context, id string, reading int) error {
	return r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("id = ? AND current_reading < ?", id, reading).
		Updates(map[string]any{"current_reading": reading, "updated_at": time.Now()}).Error
}

func (r *EquipmentRepository) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).
		Model(&equipmentModel{}).
		Where("customer_id = ?", customerID).
		Count(&cnt)
	return cnt, tx.Error
}
