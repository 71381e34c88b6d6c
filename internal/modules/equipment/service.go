package equipment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dieselx/internal/domain"
	"dieselx/internal/storage"
)

type Service struct {
	equipment EquipmentRepository
	customers CustomerRepository
	templates TemplateAssigner
	qr        QRGenerator
	files     storage.Store
	qrBucket  string
}

func NewService(
	equipment EquipmentRepository,
	customers CustomerRepository,
	templates TemplateAssigner,
	qr QRGenerator,
	files storage.Store,
	qrBucket string,
) *Service {
	return &Service{
		equipment: equipment,
		customers: customers,
		templates: templates,
		qr:        qr,
		files:     files,
		qrBucket:  qrBucket,
	}
}

func (s *Service) List(ctx context.Context, orgID string) ([]domain.Equipment, error) {
	return s.equipment.ListByOrg(ctx, orgID)
}

func (s *Service) Get(ctx context.Context, orgID, id string) (*domain.Equipment, error) {
	return s.orgEquipment(ctx, orgID, id)
}

// Create registers a unit and generates its QR code. When no next service
// due is given but a service interval is, the due point is seeded one
// interval ahead of the current reading.
func (s *Service) Create(ctx context.Context, orgID string, req *CreateEquipmentRequest) (*domain.Equipment, error) {
	customer, err := s.customers.GetByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if customer.OrganizationID != orgID {
		return nil, ErrCustomerNotFound
	}

	eq := &domain.Equipment{
		ID:                   uuid.New().String(),
		OrganizationID:       orgID,
		CustomerID:           customer.ID,
		UnitName:             req.UnitName,
		Make:                 req.Make,
		Model:                req.Model,
		SerialNumber:         req.SerialNumber,
		Registration:         req.Registration,
		Location:             req.Location,
		TrackingUnit:         domain.TrackingUnit(req.TrackingUnit),
		CurrentReading:       req.CurrentReading,
		NextServiceDue:       req.NextServiceDue,
		NextServiceType:      req.NextServiceType,
		ServiceIntervalHours: req.ServiceIntervalHours,
		ServiceIntervalKms:   req.ServiceIntervalKms,
		Status:               domain.EquipmentActive,
		OperatingStatus:      domain.OperatingUp,
	}
	if eq.NextServiceDue == nil {
		if interval := eq.ServiceInterval(); interval != nil && *interval > 0 {
			due := eq.CurrentReading + *interval
			eq.NextServiceDue = &due
		}
	}

	if url, err := s.generateQR(ctx, eq.ID); err != nil {
		// The unit is still usable without a code; it can be regenerated.
		log.Printf("equipment: QR generation failed for %s: %v", eq.ID, err)
	} else {
		eq.QRCodeURL = url
	}

	if err := s.equipment.Create(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// Update applies partial changes. The reading can only move forward.
func (s *Service) Update(ctx context.Context, orgID, id string, req *UpdateEquipmentRequest) (*domain.Equipment, error) {
	eq, err := s.orgEquipment(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil && *req.CustomerID != eq.CustomerID {
		customer, err := s.customers.GetByID(ctx, *req.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
		if customer.OrganizationID != orgID {
			return nil, ErrCustomerNotFound
		}
		eq.CustomerID = customer.ID
	}

	if req.CurrentReading != nil {
		if *req.CurrentReading < eq.CurrentReading {
			return nil, fmt.Errorf("%w: recorded value is %d", ErrReadingRegression, eq.CurrentReading)
		}
		eq.CurrentReading = *req.CurrentReading
	}

	if req.UnitName != nil {
		eq.UnitName = *req.UnitName
	}
	if req.Make != nil {
		eq.Make = *req.Make
	}
	if req.Model != nil {
		eq.Model = *req.Model
	}
	if req.SerialNumber != nil {
		eq.SerialNumber = *req.SerialNumber
	}
	if req.Registration != nil {
		eq.Registration = *req.Registration
	}
	if req.Location != nil {
		eq.Location = *req.Location
	}
	if req.NextServiceDue != nil {
		eq.NextServiceDue = req.NextServiceDue
	}
	if req.NextServiceType != nil {
		eq.NextServiceType = *req.NextServiceType
	}
	if req.ServiceIntervalHours != nil {
		eq.ServiceIntervalHours = req.ServiceIntervalHours
	}
	if req.ServiceIntervalKms != nil {
		eq.ServiceIntervalKms = req.ServiceIntervalKms
	}

	if err := s.equipment.Update(ctx, eq); err != nil {
		return nil, err
	}
	return eq, nil
}

// Deactivate retires a unit. Its QR code stops resolving on the portal.
func (s *Service) Deactivate(ctx context.Context, orgID, id string) error {
	if _, err := s.orgEquipment(ctx, orgID, id); err != nil {
		return err
	}
	return s.equipment.SetStatus(ctx, id, domain.EquipmentInactive)
}

func (s *Service) Activate(ctx context.Context, orgID, id string) error {
	if _, err := s.orgEquipment(ctx, orgID, id); err != nil {
		return err
	}
	return s.equipment.SetStatus(ctx, id, domain.EquipmentActive)
}

// SetOperatingStatus moves a unit between up and down, e.g. restoring it
// after a breakdown repair.
func (s *Service) SetOperatingStatus(ctx context.Context, orgID, id string, status string) (*domain.Equipment, error) {
	eq, err := s.orgEquipment(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	st := domain.OperatingStatus(status)
	if err := s.equipment.SetOperatingStatus(ctx, id, st); err != nil {
		return nil, err
	}
	eq.OperatingStatus = st
	return eq, nil
}

func (s *Service) AssignTemplate(ctx context.Context, orgID, id, templateID string) error {
	if _, err := s.orgEquipment(ctx, orgID, id); err != nil {
		return err
	}
	return s.templates.Assign(ctx, id, templateID)
}

// QRCode returns the stored QR code for the unit, generating and persisting
// one if missing.
func (s *Service) QRCode(ctx context.Context, orgID, id string) (*QRCodeView, error) {
	eq, err := s.orgEquipment(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if eq.QRCodeURL == "" {
		url, err := s.generateQR(ctx, eq.ID)
		if err != nil {
			return nil, err
		}
		if err := s.equipment.SetQRCodeURL(ctx, eq.ID, url); err != nil {
			return nil, err
		}
		eq.QRCodeURL = url
	}

	return &QRCodeView{
		EquipmentID: eq.ID,
		TargetURL:   s.qr.TargetURL(eq.ID),
		ImageURL:    eq.QRCodeURL,
	}, nil
}

// QRCodePNG renders the code on demand for printing.
func (s *Service) QRCodePNG(ctx context.Context, orgID, id string) ([]byte, error) {
	eq, err := s.orgEquipment(ctx, orgID, id)
	if err != nil {
		return nil, err
	}
	_, png, err := s.qr.GeneratePNG(eq.ID)
	return png, err
}

func (s *Service) generateQR(ctx context.Context, equipmentID string) (string, error) {
	_, png, err := s.qr.GeneratePNG(equipmentID)
	if err != nil {
		return "", err
	}
	res, err := s.files.UploadBytes(ctx, s.qrBucket, "", equipmentID+".png", png)
	if err != nil {
		return "", err
	}
	return res.URL, nil
}

func (s *Service) orgEquipment(ctx context.Context, orgID, id string) (*domain.Equipment, error) {
	eq, err := s.equipment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	if eq.OrganizationID != orgID {
		return nil, ErrEquipmentNotFound
	}
	return eq, nil
}
