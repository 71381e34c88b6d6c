package templates

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dieselx/internal/domain"
)

type Service struct {
	templates TemplateRepository
}

func NewService(templates TemplateRepository) *Service {
	return &Service{templates: templates}
}

func (s *Service) List(ctx context.Context, orgID string) ([]domain.PrestartTemplate, error) {
	return s.templates.ListByOrg(ctx, orgID)
}

func (s *Service) Get(ctx context.Context, orgID, id string) (*domain.PrestartTemplate, error) {
	return s.orgTemplate(ctx, orgID, id)
}

func (s *Service) Create(ctx context.Context, orgID string, req *CreateTemplateRequest) (*domain.PrestartTemplate, error) {
	tpl := &domain.PrestartTemplate{
		OrganizationID: orgID,
		Name:           req.Name,
		Description:    req.Description,
		Items:          make([]domain.PrestartTemplateItem, 0, len(req.Items)),
	}
	for i, item := range req.Items {
		sortOrder := item.SortOrder
		if sortOrder == 0 {
			sortOrder = i + 1
		}
		tpl.Items = append(tpl.Items, domain.PrestartTemplateItem{
			Label:      item.Label,
			FieldType:  domain.PrestartFieldType(item.FieldType),
			IsRequired: item.IsRequired,
			IsCritical: item.IsCritical,
			SortOrder:  sortOrder,
		})
	}

	if err := s.templates.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

// Delete removes a template, its items and its equipment assignments. Past
// submissions keep their item references.
func (s *Service) Delete(ctx context.Context, orgID, id string) error {
	if _, err := s.orgTemplate(ctx, orgID, id); err != nil {
		return err
	}
	return s.templates.Delete(ctx, id)
}

func (s *Service) orgTemplate(ctx context.Context, orgID, id string) (*domain.PrestartTemplate, error) {
	tpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if tpl.OrganizationID != orgID {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}
