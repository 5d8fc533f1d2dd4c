package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/pkg/apperror"
	"github.com/marketpos/marketpos-api/pkg/pagination"
	"github.com/marketpos/marketpos-api/pkg/utils"
)

// CustomerService handles customer CRUD operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(customerRepo repository.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// CreateCustomerInput represents the create customer input. CreditLimit is a
// decimal amount.
type CreateCustomerInput struct {
	Name        string
	Type        enum.CustomerType
	Email       *string
	Phone       *string
	Address     *string
	City        *string
	TaxOffice   *string
	TaxNumber   *string
	CreditLimit float64
	Note        *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customerType := input.Type
	if customerType == "" {
		customerType = enum.CustomerTypeIndividual
	}
	if !customerType.Valid() {
		return nil, apperror.NewBadRequestError("Unknown customer type")
	}

	customer := &entity.Customer{
		Name:        input.Name,
		Type:        customerType,
		Code:        utils.GenerateCustomerCode(),
		Email:       input.Email,
		Phone:       input.Phone,
		Address:     input.Address,
		City:        input.City,
		TaxOffice:   input.TaxOffice,
		TaxNumber:   input.TaxNumber,
		CreditLimit: int64(input.CreditLimit * 100),
		Active:      true,
		Note:        input.Note,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// UpdateCustomerInput represents the update customer input. Nil fields are
// left unchanged.
type UpdateCustomerInput struct {
	Name        *string
	Type        *enum.CustomerType
	Email       *string
	Phone       *string
	Address     *string
	City        *string
	TaxOffice   *string
	TaxNumber   *string
	CreditLimit *float64
	Active      *bool
	Note        *string
}

// UpdateCustomer updates a customer's mutable fields
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, apperror.NewBadRequestError("Unknown customer type")
		}
		customer.Type = *input.Type
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.City != nil {
		customer.City = input.City
	}
	if input.TaxOffice != nil {
		customer.TaxOffice = input.TaxOffice
	}
	if input.TaxNumber != nil {
		customer.TaxNumber = input.TaxNumber
	}
	if input.CreditLimit != nil {
		customer.CreditLimit = int64(*input.CreditLimit * 100)
	}
	if input.Active != nil {
		customer.Active = *input.Active
	}
	if input.Note != nil {
		customer.Note = input.Note
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// DeleteCustomer soft-deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers lists customers with search and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, total, err := s.customerRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(customers, pag), nil
}
