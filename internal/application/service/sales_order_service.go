package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/pkg/apperror"
	"github.com/marketpos/marketpos-api/pkg/pagination"
	"github.com/marketpos/marketpos-api/pkg/utils"
)

// SalesOrderService handles back-office sales orders: quotations that move
// through confirmation and delivery instead of being settled at the register.
type SalesOrderService struct {
	orderRepo    repository.SalesOrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
}

// NewSalesOrderService creates a new sales order service
func NewSalesOrderService(
	orderRepo repository.SalesOrderRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
	}
}

// SalesOrderLineInput represents one line of a create or update request.
// Product fields are free text so a quotation can carry positions that are
// not in the catalog; ProductID, when given, links the line to the catalog
// and fills in name, code and price for any field left empty.
type SalesOrderLineInput struct {
	ProductID       *uuid.UUID
	ProductName     string
	ProductCode     *string
	Description     *string
	Quantity        float64
	UnitPrice       float64
	DiscountPercent float64
	TaxRatePercent  *float64
}

// CreateSalesOrderInput represents the data needed to create a sales order
type CreateSalesOrderInput struct {
	CustomerID       uuid.UUID
	OrderDate        *time.Time
	ValidityDate     *time.Time
	ExpectedDelivery *time.Time
	DeliveryAddress  *string
	InvoiceAddress   *string
	PaymentTerm      *enum.PaymentTerm
	DiscountAmount   float64
	Reference        *string
	Note             *string
	InternalNote     *string
	Lines            []SalesOrderLineInput
}

// UpdateSalesOrderInput represents the data for updating a draft or
// quotation. Lines, when present, replace the existing set wholesale.
type UpdateSalesOrderInput struct {
	CustomerID       *uuid.UUID
	OrderDate        *time.Time
	ValidityDate     *time.Time
	ExpectedDelivery *time.Time
	DeliveryAddress  *string
	InvoiceAddress   *string
	PaymentTerm      *enum.PaymentTerm
	DiscountAmount   *float64
	Reference        *string
	Note             *string
	InternalNote     *string
	Lines            []SalesOrderLineInput
}

// CreateSalesOrder creates a new draft order with a sequential name
func (s *SalesOrderService) CreateSalesOrder(ctx context.Context, input *CreateSalesOrderInput) (*entity.SalesOrder, error) {
	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	if !customer.Active {
		return nil, apperror.NewBadRequestError("Customer " + customer.Name + " is archived")
	}

	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Order needs at least one line")
	}

	lines, err := s.buildLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	prefix := utils.MonthPrefix("SO", now)
	seq, err := s.orderRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	orderDate := now
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	paymentTerm := enum.PaymentTermImmediate
	if input.PaymentTerm != nil {
		if !input.PaymentTerm.Valid() {
			return nil, apperror.NewBadRequestError("Unknown payment term")
		}
		paymentTerm = *input.PaymentTerm
	}

	order := &entity.SalesOrder{
		Name:             utils.DocumentName("SO", now, seq+1),
		State:            enum.SalesOrderStateDraft,
		CustomerID:       customer.ID,
		OrderDate:        orderDate,
		ValidityDate:     input.ValidityDate,
		ExpectedDelivery: input.ExpectedDelivery,
		DeliveryAddress:  input.DeliveryAddress,
		InvoiceAddress:   input.InvoiceAddress,
		PaymentTerm:      paymentTerm,
		AmountDiscount:   int64(math.Round(input.DiscountAmount * 100)),
		Reference:        input.Reference,
		Note:             input.Note,
		InternalNote:     input.InternalNote,
		Lines:            lines,
	}
	order.RecalculateTotals()

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	order.Customer = customer
	return order, nil
}

// UpdateSalesOrder updates an order still in draft or quotation.
// Once confirmed, an order is immutable except for its state transitions.
func (s *SalesOrderService) UpdateSalesOrder(ctx context.Context, id uuid.UUID, input *UpdateSalesOrderInput) (*entity.SalesOrder, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.State.Editable() {
		return nil, apperror.NewConflictError("Order in state " + order.State.String() + " cannot be edited")
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
		order.CustomerID = customer.ID
		order.Customer = customer
	}
	if input.OrderDate != nil {
		order.OrderDate = *input.OrderDate
	}
	if input.ValidityDate != nil {
		order.ValidityDate = input.ValidityDate
	}
	if input.ExpectedDelivery != nil {
		order.ExpectedDelivery = input.ExpectedDelivery
	}
	if input.DeliveryAddress != nil {
		order.DeliveryAddress = input.DeliveryAddress
	}
	if input.InvoiceAddress != nil {
		order.InvoiceAddress = input.InvoiceAddress
	}
	if input.PaymentTerm != nil {
		if !input.PaymentTerm.Valid() {
			return nil, apperror.NewBadRequestError("Unknown payment term")
		}
		order.PaymentTerm = *input.PaymentTerm
	}
	if input.DiscountAmount != nil {
		order.AmountDiscount = int64(math.Round(*input.DiscountAmount * 100))
	}
	if input.Reference != nil {
		order.Reference = input.Reference
	}
	if input.Note != nil {
		order.Note = input.Note
	}
	if input.InternalNote != nil {
		order.InternalNote = input.InternalNote
	}

	if input.Lines != nil {
		if len(input.Lines) == 0 {
			return nil, apperror.NewBadRequestError("Order needs at least one line")
		}
		lines, err := s.buildLines(ctx, input.Lines)
		if err != nil {
			return nil, err
		}
		if err := s.orderRepo.ReplaceLines(ctx, order, lines); err != nil {
			return nil, err
		}
		return order, nil
	}

	order.RecalculateTotals()
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// ConfirmSalesOrder moves a draft or quotation to confirmed and stamps the
// confirmation date
func (s *SalesOrderService) ConfirmSalesOrder(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.State.Editable() {
		return nil, apperror.NewConflictError("Order in state " + order.State.String() + " cannot be confirmed")
	}

	now := time.Now()
	order.State = enum.SalesOrderStateConfirmed
	order.ConfirmationDate = &now

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkDelivered moves a confirmed order to delivered
func (s *SalesOrderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.State != enum.SalesOrderStateConfirmed {
		return nil, apperror.NewConflictError("Order in state " + order.State.String() + " cannot be delivered")
	}

	order.State = enum.SalesOrderStateDelivered
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CancelSalesOrder cancels an order. Delivered orders stay delivered; goods
// already with the customer come back through a return, not a cancellation.
func (s *SalesOrderService) CancelSalesOrder(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.State.Cancellable() {
		return nil, apperror.NewConflictError("Order in state " + order.State.String() + " cannot be cancelled")
	}

	order.State = enum.SalesOrderStateCancelled
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteSalesOrder removes an order. Only drafts can be deleted; anything
// that has been sent to a customer is cancelled instead so the trail stays.
func (s *SalesOrderService) DeleteSalesOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return err
	}

	if order.State != enum.SalesOrderStateDraft {
		return apperror.NewConflictError("Only draft orders can be deleted")
	}

	return s.orderRepo.Delete(ctx, id)
}

// GetSalesOrder retrieves an order with its customer and lines
func (s *SalesOrderService) GetSalesOrder(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	return s.getOrder(ctx, id)
}

// ListSalesOrders lists orders with filtering
func (s *SalesOrderService) ListSalesOrders(ctx context.Context, params *repository.SalesOrderFilterParams) (*pagination.PaginatedResult[entity.SalesOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// SalesDashboard summarizes the order book for the sales overview screen
type SalesDashboard struct {
	ActiveCustomers int64                 `json:"active_customers"`
	States          []SalesDashboardState `json:"states"`
}

// SalesDashboardState is the order count and summed value for one state
type SalesDashboardState struct {
	State enum.SalesOrderState `json:"state"`
	Count int64                `json:"count"`
	Total float64              `json:"total"`
}

// GetDashboard aggregates order counts and totals per state alongside the
// active customer count
func (s *SalesOrderService) GetDashboard(ctx context.Context) (*SalesDashboard, error) {
	customers, err := s.customerRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.orderRepo.CountByState(ctx)
	if err != nil {
		return nil, err
	}

	dashboard := &SalesDashboard{ActiveCustomers: customers}
	for _, row := range rows {
		dashboard.States = append(dashboard.States, SalesDashboardState{
			State: row.State,
			Count: row.Count,
			Total: float64(row.AmountTotal) / 100,
		})
	}
	return dashboard, nil
}

func (s *SalesOrderService) getOrder(ctx context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Sales order")
	}
	return order, nil
}

// buildLines turns line inputs into entities with computed amounts. Sequence
// numbers are spaced by ten so a line can be inserted between two others
// later without renumbering.
func (s *SalesOrderService) buildLines(ctx context.Context, inputs []SalesOrderLineInput) ([]entity.SalesOrderLine, error) {
	lines := make([]entity.SalesOrderLine, 0, len(inputs))
	for i, in := range inputs {
		line := entity.SalesOrderLine{
			ProductID:       in.ProductID,
			ProductName:     in.ProductName,
			ProductCode:     in.ProductCode,
			Description:     in.Description,
			Quantity:        in.Quantity,
			UnitPrice:       int64(math.Round(in.UnitPrice * 100)),
			DiscountPercent: in.DiscountPercent,
			TaxRatePercent:  20,
			Sequence:        (i + 1) * 10,
		}
		if in.TaxRatePercent != nil {
			line.TaxRatePercent = *in.TaxRatePercent
		}

		if in.ProductID != nil {
			product, err := s.productRepo.GetByID(ctx, *in.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, apperror.NewNotFoundError("Product " + in.ProductID.String())
			}
			if line.ProductName == "" {
				line.ProductName = product.Name
			}
			if line.ProductCode == nil {
				line.ProductCode = &product.Code
			}
			if in.UnitPrice == 0 {
				line.UnitPrice = product.ListPrice
			}
			if in.TaxRatePercent == nil {
				line.TaxRatePercent = product.TaxRatePercent
			}
		}

		if line.ProductName == "" {
			return nil, apperror.NewBadRequestError("Line needs a product name")
		}
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Quantity must be positive for " + line.ProductName)
		}
		if line.DiscountPercent < 0 || line.DiscountPercent > 100 {
			return nil, apperror.NewBadRequestError("Discount must be between 0 and 100 for " + line.ProductName)
		}

		line.Subtotal = int64(math.Round(float64(line.UnitPrice) * line.Quantity * (1 - line.DiscountPercent/100)))
		line.Tax = int64(math.Round(float64(line.Subtotal) * line.TaxRatePercent / 100))
		line.Total = line.Subtotal + line.Tax

		lines = append(lines, line)
	}
	return lines, nil
}
