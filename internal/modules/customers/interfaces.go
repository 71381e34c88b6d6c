package customers

import (
	"context"

	"dieselx/internal/domain"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *domain.Customer) error
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	ListByOrg(ctx context.Context, orgID string) ([]domain.Customer, error)
	Update(ctx context.Context, c *domain.Customer) error
	Delete(ctx context.Context, id string) error
}

type EquipmentCounter interface {
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
}
