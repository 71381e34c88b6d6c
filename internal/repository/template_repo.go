package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dieselx/internal/domain"
)

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

func toDomainTemplate(m prestartTemplateModel) *domain.PrestartTemplate {
	return &domain.PrestartTemplate{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		Description:    strVal(m.Description),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toDomainTemplateItem(m prestartTemplateItemModel) domain.PrestartTemplateItem {
	return domain.PrestartTemplateItem{
		ID:         m.ID,
		TemplateID: m.TemplateID,
		Label:      m.Label,
		FieldType:  domain.PrestartFieldType(m.FieldType),
		IsRequired: m.IsRequired,
		IsCritical: m.IsCritical,
		SortOrder:  m.SortOrder,
		CreatedAt:  m.CreatedAt,
	}
}

// Create persists a template with its items in one transaction.
func (r *TemplateRepository) Create(ctx context.Context, t *domain.PrestartTemplate) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		m := prestartTemplateModel{
			ID:             t.ID,
			OrganizationID: t.OrganizationID,
			Name:           t.Name,
			Description:    strPtr(t.Description),
		}
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		t.CreatedAt = m.CreatedAt
		t.UpdatedAt = m.UpdatedAt

		for i := range t.Items {
			item := &t.Items[i]
			if item.ID == "" {
				item.ID = uuid.New().String()
			}
			item.TemplateID = t.ID
			im := prestartTemplateItemModel{
				ID:         item.ID,
				TemplateID: item.TemplateID,
				Label:      item.Label,
				FieldType:  string(item.FieldType),
				IsRequired: item.IsRequired,
				IsCritical: item.IsCritical,
				SortOrder:  item.SortOrder,
			}
			if err := tx.Create(&im).Error; err != nil {
				return err
			}
			item.CreatedAt = im.CreatedAt
		}
		return nil
	})
}

func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*domain.PrestartTemplate, error) {
	var m prestartTemplateModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}

	t := toDomainTemplate(m)
	items, err := r.itemsForTemplate(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return t, nil
}

func (r *TemplateRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.PrestartTemplate, error) {
	var models []prestartTemplateModel
	tx := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.PrestartTemplate, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainTemplate(m))
	}
	return out, nil
}

// GetForEquipment resolves the template assigned to the equipment, with its
// items ordered by sort order. Returns gorm.ErrRecordNotFound when the
// equipment has no assignment.
func (r *TemplateRepository) GetForEquipment(ctx context.Context, equipmentID string) (*domain.PrestartTemplate, error) {
	var a templateAssignmentModel
	if err := r.db.WithContext(ctx).
		Where("equipment_id = ?", equipmentID).
		First(&a).Error; err != nil {
		return nil, err
	}

	return r.GetByID(ctx, a.PrestartTemplateID)
}

// Assign binds a template to an equipment unit, replacing any previous
// assignment.
func (r *TemplateRepository) Assign(ctx context.Context, equipmentID, templateID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("equipment_id = ?", equipmentID).
			Delete(&templateAssignmentModel{}).Error; err != nil {
			return err
		}
		return tx.Create(&templateAssignmentModel{
			ID:                 uuid.New().String(),
			EquipmentID:        equipmentID,
			PrestartTemplateID: templateID,
			CreatedAt:          time.Now(),
		}).Error
	})
}

func (r *TemplateRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("prestart_template_id = ?", id).
			Delete(&templateAssignmentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("template_id = ?", id).
			Delete(&prestartTemplateItemModel{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&prestartTemplateModel{}).Error
	})
}

func (r *TemplateRepository) itemsForTemplate(ctx context.Context, templateID string) ([]domain.PrestartTemplateItem, error) {
	var models []prestartTemplateItemModel
	tx := r.db.WithContext(ctx).
		Where("template_id = ?", templateID).
		Order("sort_order ASC, created_at ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	items := make([]domain.PrestartTemplateItem, 0, len(models))
	for _, m := range models {
		items = append(items, toDomainTemplateItem(m))
	}
	return items, nil
}
