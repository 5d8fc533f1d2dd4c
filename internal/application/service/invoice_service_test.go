package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/pkg/aiclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCommittedOrder(t *testing.T, orderRepo *fakeOrderRepo) *entity.PosOrder {
	t.Helper()

	order := &entity.PosOrder{
		Name:        "ORD/2026/08/0001",
		SessionID:   uuid.New(),
		State:       enum.OrderStatePaid,
		AmountTax:   3600,
		AmountTotal: 21600,
		AmountPaid:  22000,
		Lines: []entity.PosOrderLine{
			{
				ProductID:      uuid.New(),
				ProductName:    "Mineral Water 1.5L",
				Quantity:       2,
				UnitPrice:      10000,
				TaxRatePercent: 20,
				Subtotal:       18000,
				Tax:            3600,
			},
		},
	}
	require.NoError(t, orderRepo.Create(context.Background(), order))
	return order
}

// TestCreateFromOrder generates an invoice from a paid order and moves the
// order to invoiced
func TestCreateFromOrder(t *testing.T) {
	t.Parallel()

	invoiceRepo := newFakeInvoiceRepo()
	orderRepo := newFakeOrderRepo()
	customerRepo := newFakeCustomerRepo()
	svc := NewInvoiceService(invoiceRepo, orderRepo, customerRepo, &fakeAIClient{})

	order := seedCommittedOrder(t, orderRepo)
	customer := &entity.Customer{Name: "Acme", Type: enum.CustomerTypeCorporate, Code: "CUST-1"}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	invoice, err := svc.CreateFromOrder(context.Background(), order.ID, customer.ID)
	require.NoError(t, err)

	assert.Regexp(t, `^INV/\d{4}/\d{2}/0001$`, invoice.InvoiceNo)
	assert.Equal(t, int64(18000), invoice.Subtotal)
	assert.Equal(t, int64(21600), invoice.TotalAmount)
	assert.Equal(t, enum.InvoiceStatusPaid, invoice.Status)
	require.Len(t, invoice.Lines, 1)

	stored, _ := orderRepo.GetByID(context.Background(), order.ID)
	assert.Equal(t, enum.OrderStateInvoiced, stored.State)
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, invoice.ID, *stored.InvoiceID)

	// Invoicing the same order again is rejected
	_, err = svc.CreateFromOrder(context.Background(), order.ID, customer.ID)
	require.Error(t, err)
}

// TestCreateFromOrderRejectsCancelled verifies a cancelled order cannot be
// invoiced
func TestCreateFromOrderRejectsCancelled(t *testing.T) {
	t.Parallel()

	invoiceRepo := newFakeInvoiceRepo()
	orderRepo := newFakeOrderRepo()
	customerRepo := newFakeCustomerRepo()
	svc := NewInvoiceService(invoiceRepo, orderRepo, customerRepo, &fakeAIClient{})

	order := seedCommittedOrder(t, orderRepo)
	require.NoError(t, orderRepo.UpdateState(context.Background(), order.ID, enum.OrderStateCancelled))

	customer := &entity.Customer{Name: "Acme", Code: "CUST-1"}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	_, err := svc.CreateFromOrder(context.Background(), order.ID, customer.ID)
	require.Error(t, err)
}

// TestDraftFromScan stores the OCR extraction as a draft invoice
func TestDraftFromScan(t *testing.T) {
	t.Parallel()

	invoiceRepo := newFakeInvoiceRepo()
	svc := NewInvoiceService(invoiceRepo, newFakeOrderRepo(), newFakeCustomerRepo(), &fakeAIClient{
		extraction: &aiclient.InvoiceExtraction{
			InvoiceNo:    "F-2026-118",
			InvoiceDate:  "2026-08-15",
			SupplierName: "Acme Wholesale",
			Subtotal:     360.75,
			TaxAmount:    72.15,
			TotalAmount:  432.90,
			Confidence:   0.87,
		},
	})

	invoice, err := svc.DraftFromScan(context.Background(), &DraftFromScanInput{
		Document: []byte("%PDF-1.4"),
		Filename: "scan.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusDraft, invoice.Status)
	assert.Equal(t, int64(43290), invoice.TotalAmount)
	assert.Equal(t, "2026-08-15", invoice.InvoiceDate.Format("2006-01-02"))
	require.NotNil(t, invoice.Note)
	assert.Contains(t, *invoice.Note, "Acme Wholesale")
}

// TestDraftFromScanUpstreamFailure surfaces the OCR failure as a gateway
// error and stores nothing
func TestDraftFromScanUpstreamFailure(t *testing.T) {
	t.Parallel()

	invoiceRepo := newFakeInvoiceRepo()
	svc := NewInvoiceService(invoiceRepo, newFakeOrderRepo(), newFakeCustomerRepo(), &fakeAIClient{err: assert.AnError})

	_, err := svc.DraftFromScan(context.Background(), &DraftFromScanInput{Document: []byte("x"), Filename: "scan.pdf"})
	require.Error(t, err)
	assert.Empty(t, invoiceRepo.invoices)
}
