package equipment

import (
	"context"

	"dieselx/internal/domain"
)

type EquipmentRepository interface {
	Create(ctx context.Context, e *domain.Equipment) error
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	ListByOrg(ctx context.Context, orgID string) ([]domain.Equipment, error)
	Update(ctx context.Context, e *domain.Equipment) error
	SetStatus(ctx context.Context, id string, status domain.EquipmentStatus) error
	SetOperatingStatus(ctx context.Context, id string, status domain.OperatingStatus) error
	SetQRCodeURL(ctx context.Context, id, url string) error
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

type TemplateAssigner interface {
	Assign(ctx context.Context, equipmentID, templateID string) error
}

// QRGenerator renders the portal link for an equipment unit as a PNG.
type QRGenerator interface {
	TargetURL(equipmentID string) string
	GeneratePNG(equipmentID string) (string, []byte, error)
}
