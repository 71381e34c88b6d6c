package portal

import (
	"context"
	"time"

	"dieselx/internal/domain"
	"dieselx/internal/repository"
)

type EquipmentRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Equipment, error)
	GetPortalView(ctx context.Context, id string) (*repository.PortalEquipmentRow, error)
	AdvanceReading(ctx context.Context, id string, reading int) error
}

type TemplateRepository interface {
	GetForEquipment(ctx context.Context, equipmentID string) (*domain.PrestartTemplate, error)
}

type HistoryRepository interface {
	History(ctx context.Context, equipmentID string, since time.Time, limit int) ([]repository.HistoryEntry, error)
}

// TxRunner runs the intake write path inside a single transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(tx repository.PortalTx) error) error
}
