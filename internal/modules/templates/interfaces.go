package templates

import (
	"context"

	"dieselx/internal/domain"
)

type TemplateRepository interface {
	Create(ctx context.Context, t *domain.PrestartTemplate) error
	GetByID(ctx context.Context, id string) (*domain.PrestartTemplate, error)
	ListByOrg(ctx context.Context, orgID string) ([]domain.PrestartTemplate, error)
	Delete(ctx context.Context, id string) error
}
