package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dieselx/internal/domain"
)

type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func toDomainCustomer(m customerModel) *domain.Customer {
	return &domain.Customer{
		ID:             m.ID,
		OrganizationID: m.OrganizationID,
		Name:           m.Name,
		ContactName:    strVal(m.ContactName),
		ContactEmail:   strVal(m.ContactEmail),
		ContactPhone:   strVal(m.ContactPhone),
		Address:        strVal(m.Address),
		Notes:          strVal(m.Notes),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func toCustomerModel(c *domain.Customer) customerModel {
	return customerModel{
		ID:             c.ID,
		OrganizationID: c.OrganizationID,
		Name:           c.Name,
		ContactName:    strPtr(c.ContactName),
		ContactEmail:   strPtr(c.ContactEmail),
		ContactPhone:   strPtr(c.ContactPhone),
		Address:        strPtr(c.Address),
		Notes:          strPtr(c.Notes),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	m := toCustomerModel(c)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*c = *toDomainCustomer(m)
	return nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	var m customerModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainCustomer(m), nil
}

func (r *CustomerRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.Customer, error) {
	var models []customerModel
	tx := r.db.WithContext(ctx).
		Where("organization_id = ?", orgID).
		Order("name ASC").
		Find(&models)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Customer, 0, len(models))
	for _, m := range models {
		out = append(out, *toDomainCustomer(m))
	}
	return out, nil
}

func (r *CustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	c.UpdatedAt = time.Now()
	m := toCustomerModel(c)
	return r.db.WithContext(ctx).
		Model(&customerModel{}).
		Where("id = ?", c.ID).
		Select("*").Omit("id", "organization_id", "created_at").
		Updates(&m).Error
}

func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&customerModel{}).Error
}
