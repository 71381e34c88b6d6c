package customers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"dieselx/internal/domain"
)

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	if c != nil && c.ID == "" {
		c.ID = "cust-1"
	}
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListByOrg(ctx context.Context, orgID string) ([]domain.Customer, error) {
	args := m.Called(ctx, orgID)
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockEquipmentCounter struct {
	mock.Mock
}

func (m *MockEquipmentCounter) CountByCustomer(ctx context.Context, customerID string) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func storedCustomer() *domain.Customer {
	return &domain.Customer{
		ID:             "cust-1",
		OrganizationID: "org-1",
		Name:           "Westgate Quarry",
	}
}

func TestDeleteBlockedWhileEquipmentAssigned(t *testing.T) {
	custRepo := new(MockCustomerRepository)
	custRepo.On("GetByID", mock.Anything, "cust-1").Return(storedCustomer(), nil)
	counter := new(MockEquipmentCounter)
	counter.On("CountByCustomer", mock.Anything, "cust-1").Return(int64(3), nil)

	svc := NewService(custRepo, counter)

	err := svc.Delete(context.Background(), "org-1", "cust-1")
	assert.ErrorIs(t, err, ErrCustomerHasAssets)
	custRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteWithoutEquipment(t *testing.T) {
	custRepo := new(MockCustomerRepository)
	custRepo.On("GetByID", mock.Anything, "cust-1").Return(storedCustomer(), nil)
	custRepo.On("Delete", mock.Anything, "cust-1").Return(nil)
	counter := new(MockEquipmentCounter)
	counter.On("CountByCustomer", mock.Anything, "cust-1").Return(int64(0), nil)

	svc := NewService(custRepo, counter)

	assert.NoError(t, svc.Delete(context.Background(), "org-1", "cust-1"))
	custRepo.AssertExpectations(t)
}

func TestGetWrongOrgHidden(t *testing.T) {
	custRepo := new(MockCustomerRepository)
	custRepo.On("GetByID", mock.Anything, "cust-1").Return(storedCustomer(), nil)

	svc := NewService(custRepo, new(MockEquipmentCounter))

	_, err := svc.Get(context.Background(), "other-org", "cust-1")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUpdateAppliesPartialChanges(t *testing.T) {
	custRepo := new(MockCustomerRepository)
	custRepo.On("GetByID", mock.Anything, "cust-1").Return(storedCustomer(), nil)
	custRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(custRepo, new(MockEquipmentCounter))

	phone := "+61 400 555 666"
	customer, err := svc.Update(context.Background(), "org-1", "cust-1", &UpdateCustomerRequest{
		ContactPhone: &phone,
	})
	assert.NoError(t, err)
	assert.Equal(t, phone, customer.ContactPhone)
	assert.Equal(t, "Westgate Quarry", customer.Name)
}
