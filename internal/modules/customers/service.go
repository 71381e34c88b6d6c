package customers

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dieselx/internal/domain"
)

type Service struct {
	customers CustomerRepository
	equipment EquipmentCounter
}

func NewService(customers CustomerRepository, equipment EquipmentCounter) *Service {
	return &Service{customers: customers, equipment: equipment}
}

func (s *Service) List(ctx context.Context, orgID string) ([]domain.Customer, error) {
	return s.customers.ListByOrg(ctx, orgID)
}

func (s *Service) Get(ctx context.Context, orgID, id string) (*domain.Customer, error) {
	return s.orgCustomer(ctx, orgID, id)
}

func (s *Service) Create(ctx context.Context, orgID string, req *CreateCustomerRequest) (*domain.Customer, error) {
	customer := &domain.Customer{
		OrganizationID: orgID,
		Name:           req.Name,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
		Address:        req.Address,
		Notes:          req.Notes,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *Service) Update(ctx context.Context, orgID, id string, req *UpdateCustomerRequest) (*domain.Customer, error) {
	customer, err := s.orgCustomer(ctx, orgID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.ContactName != nil {
		customer.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		customer.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		customer.ContactPhone = *req.ContactPhone
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.Notes != nil {
		customer.Notes = *req.Notes
	}

	if err := s.customers.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete removes a customer with no equipment. Customers with units must
// have them reassigned or retired first.
func (s *Service) Delete(ctx context.Context, orgID, id string) error {
	if _, err := s.orgCustomer(ctx, orgID, id); err != nil {
		return err
	}

	count, err := s.equipment.CountByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrCustomerHasAssets
	}
	return s.customers.Delete(ctx, id)
}

func (s *Service) orgCustomer(ctx context.Context, orgID, id string) (*domain.Customer, error) {
	customer, err := s.customers.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if customer.OrganizationID != orgID {
		return nil, ErrCustomerNotFound
	}
	return customer, nil
}
