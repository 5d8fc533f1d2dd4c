package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/pkg/aiclient"
	"github.com/marketpos/marketpos-api/pkg/apperror"
	"github.com/marketpos/marketpos-api/pkg/pagination"
	"github.com/marketpos/marketpos-api/pkg/utils"
)

// InvoiceService handles sales invoice operations, including generating an
// invoice from a committed POS order and drafting one from a scanned
// document via the OCR service.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	ai           aiclient.Client
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	ai aiclient.Client,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		ai:           ai,
	}
}

// CreateFromOrder generates an invoice for a committed order and moves the
// order to invoiced. Each order can be invoiced at most once.
func (s *InvoiceService) CreateFromOrder(ctx context.Context, orderID uuid.UUID, customerID uuid.UUID) (*entity.Invoice, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}

	if order.State != enum.OrderStatePaid && order.State != enum.OrderStateDone {
		return nil, apperror.NewConflictError("Order in state " + order.State.String() + " cannot be invoiced")
	}

	existing, err := s.invoiceRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Order is already invoiced")
	}

	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	now := time.Now()
	prefix := utils.MonthPrefix("INV", now)
	seq, err := s.invoiceRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	var subtotal int64
	invoice := &entity.Invoice{
		InvoiceNo:   utils.DocumentName("INV", now, seq+1),
		CustomerID:  &customer.ID,
		OrderID:     &order.ID,
		InvoiceDate: now,
		TaxAmount:   order.AmountTax,
		TotalAmount: order.AmountTotal,
		PaidAmount:  order.AmountTotal, // POS orders are settled at checkout
		Status:      enum.InvoiceStatusPaid,
	}

	for _, line := range order.Lines {
		subtotal += line.Subtotal
		invoice.Lines = append(invoice.Lines, entity.InvoiceLine{
			Description:    line.ProductName,
			Quantity:       line.Quantity,
			UnitPrice:      line.UnitPrice,
			TaxRatePercent: line.TaxRatePercent,
			Total:          line.Subtotal + line.Tax,
		})
	}
	invoice.Subtotal = subtotal

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	order.State = enum.OrderStateInvoiced
	order.InvoiceID = &invoice.ID
	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	return invoice, nil
}

// DraftFromScanInput represents a scanned document to run through OCR
type DraftFromScanInput struct {
	Document []byte
	Filename string
}

// DraftFromScan sends a scanned invoice to the OCR service and stores the
// extracted fields as a draft for review. Low-confidence extractions are
// still saved; the confidence is the reviewer's problem, not a failure.
func (s *InvoiceService) DraftFromScan(ctx context.Context, input *DraftFromScanInput) (*entity.Invoice, error) {
	extraction, err := s.ai.ExtractInvoice(ctx, input.Document, input.Filename)
	if err != nil {
		return nil, apperror.NewBadGatewayError("Invoice extraction failed: " + err.Error())
	}

	now := time.Now()
	prefix := utils.MonthPrefix("INV", now)
	seq, err := s.invoiceRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}

	invoiceDate := now
	if extraction.InvoiceDate != "" {
		if parsed, perr := time.Parse("2006-01-02", extraction.InvoiceDate); perr == nil {
			invoiceDate = parsed
		}
	}

	note := "Drafted from scan " + input.Filename
	if extraction.InvoiceNo != "" {
		note += ", supplier ref " + extraction.InvoiceNo
	}
	if extraction.SupplierName != "" {
		note += ", supplier " + extraction.SupplierName
	}

	invoice := &entity.Invoice{
		InvoiceNo:   utils.DocumentName("INV", now, seq+1),
		InvoiceDate: invoiceDate,
		Subtotal:    int64(extraction.Subtotal * 100),
		TaxAmount:   int64(extraction.TaxAmount * 100),
		TotalAmount: int64(extraction.TotalAmount * 100),
		Status:      enum.InvoiceStatusDraft,
		Note:        &note,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}
	return invoice, nil
}

// GetInvoice retrieves an invoice with its lines
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices with filtering
func (s *InvoiceService) ListInvoices(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// UpdateInvoiceStatus moves an invoice to a new status
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	if !status.Valid() {
		return apperror.NewBadRequestError("Unknown invoice status")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	return s.invoiceRepo.UpdateStatus(ctx, id, status)
}
