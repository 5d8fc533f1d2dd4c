package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
)

type salesOrderFixture struct {
	svc          *SalesOrderService
	orderRepo    *fakeSalesOrderRepo
	customerRepo *fakeCustomerRepo
	customer     *entity.Customer
	product      *entity.Product
}

func newSalesOrderFixture(t *testing.T) *salesOrderFixture {
	t.Helper()

	orderRepo := newFakeSalesOrderRepo()
	customerRepo := newFakeCustomerRepo()
	productRepo := newFakeProductRepo()

	customer := &entity.Customer{
		ID:     uuid.New(),
		Name:   "Kardeşler Market",
		Code:   "CUST-0001",
		Active: true,
	}
	require.NoError(t, customerRepo.Create(context.Background(), customer))

	product := &entity.Product{
		ID:             uuid.New(),
		Name:           "Olive Oil 1L",
		Code:           "OIL-1L",
		ListPrice:      12000,
		TaxRatePercent: 10,
		Active:         true,
	}
	require.NoError(t, productRepo.Create(context.Background(), product))

	return &salesOrderFixture{
		svc:          NewSalesOrderService(orderRepo, customerRepo, productRepo),
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		customer:     customer,
		product:      product,
	}
}

// TestCreateSalesOrder verifies a draft is created with sequential naming and
// line amounts computed from the submitted price, quantity and discount.
func TestCreateSalesOrder(t *testing.T) {
	t.Parallel()

	fx := newSalesOrderFixture(t)
	ctx := context.Background()

	order, err := fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{
				ProductName:     "Pallet delivery",
				Quantity:        2,
				UnitPrice:       10.00,
				DiscountPercent: 10,
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SalesOrderStateDraft, order.State)
	assert.Contains(t, order.Name, "SO/")
	assert.Equal(t, enum.PaymentTermImmediate, order.PaymentTerm)

	require.Len(t, order.Lines, 1)
	line := order.Lines[0]
	assert.Equal(t, int64(1000), line.UnitPrice)
	assert.Equal(t, int64(1800), line.Subtotal) // 2 x 10.00 less 10%
	assert.Equal(t, float64(20), line.TaxRatePercent)
	assert.Equal(t, int64(360), line.Tax)
	assert.Equal(t, 10, line.Sequence)

	assert.Equal(t, int64(1800), order.AmountUntaxed)
	assert.Equal(t, int64(360), order.AmountTax)
	assert.Equal(t, int64(2160), order.AmountTotal)
}

// TestCreateSalesOrderCatalogLine verifies a line referencing a catalog
// product inherits its name, code, price and tax rate when left blank.
func TestCreateSalesOrderCatalogLine(t *testing.T) {
	t.Parallel()

	fx := newSalesOrderFixture(t)
	ctx := context.Background()

	order, err := fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{ProductID: &fx.product.ID, Quantity: 3},
		},
	})
	require.NoError(t, err)

	require.Len(t, order.Lines, 1)
	line := order.Lines[0]
	assert.Equal(t, "Olive Oil 1L", line.ProductName)
	require.NotNil(t, line.ProductCode)
	assert.Equal(t, "OIL-1L", *line.ProductCode)
	assert.Equal(t, int64(12000), line.UnitPrice)
	assert.Equal(t, float64(10), line.TaxRatePercent)
	assert.Equal(t, int64(36000), line.Subtotal)
	assert.Equal(t, int64(3600), line.Tax)
}

// TestCreateSalesOrderArchivedCustomer verifies archived customers cannot
// receive new orders.
func TestCreateSalesOrderArchivedCustomer(t *testing.T) {
	t.Parallel()

	fx := newSalesOrderFixture(t)
	ctx := context.Background()

	fx.customer.Active = false
	require.NoError(t, fx.customerRepo.Update(ctx, fx.customer))

	_, err := fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{ProductName: "Anything", Quantity: 1, UnitPrice: 5},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "archived")
}

// TestUpdateSalesOrderReplacesLines verifies an update with lines swaps the
// whole set and recomputes the totals.
func TestUpdateSalesOrderReplacesLines(t *testing.T) {
	t.Parallel()

	fx := newSalesOrderFixture(t)
	ctx := context.Background()

	order, err := fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{ProductName: "Old line", Quantity: 1, UnitPrice: 100},
		},
	})
	require.NoError(t, err)

	updated, err := fx.svc.UpdateSalesOrder(ctx, order.ID, &UpdateSalesOrderInput{
		Lines: []SalesOrderLineInput{
			{ProductName: "New line A", Quantity: 1, UnitPrice: 10, TaxRatePercent: ptrFloat(0)},
			{ProductName: "New line B", Quantity: 1, UnitPrice: 20, TaxRatePercent: ptrFloat(0)},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Lines, 2)
	assert.Equal(t, "New line A", updated.Lines[0].ProductName)
	assert.Equal(t, 10, updated.Lines[0].Sequence)
	assert.Equal(t, 20, updated.Lines[1].Sequence)
	assert.Equal(t, int64(3000), updated.AmountUntaxed)
	assert.Equal(t, int64(3000), updated.AmountTotal)
}

// TestUpdateConfirmedOrderRejected verifies confirmed orders are frozen.
func TestUpdateConfirmedOrderRejected(t *testing.T) {
	t.Parallel()

	fx := newSalesOrderFixture(t)
	ctx := context.Background()

	order, err := fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{ProductName: "Frozen", Quantity: 1, UnitPrice: 50},
		},
	})
	require.NoError(t, err)

	_, err = fx.svc.ConfirmSalesOrder(ctx, order.ID)
	require.NoError(t, err)

	note := "too late"
	_, err = fx.svc.UpdateSalesOrder(ctx, order.ID, &UpdateSalesOrderInput{Note: &note})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be edited")
}

// TestConfirmSalesOrder verifies confirmation stamps the date and a second
// confirmation is rejected.
func TestConfirmSalesOrder(t *testing.T) {
	t.Parallel()

	fx := newSalesOrderFixture(t)
	ctx := context.Background()

	order, err := fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{ProductName: "Confirm me", Quantity: 1, UnitPrice: 50},
		},
	})
	require.NoError(t, err)

	confirmed, err := fx.svc.ConfirmSalesOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.SalesOrderStateConfirmed, confirmed.State)
	require.NotNil(t, confirmed.ConfirmationDate)

	_, err = fx.svc.ConfirmSalesOrder(ctx, order.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be confirmed")
}

// TestCancelDeliveredOrderRejected verifies delivered orders stay delivered;
// returns are a separate flow.
func TestCancelDeliveredOrderRejected(t *testing.T) {
	t.Parallel()

	fx := newSalesOrderFixture(t)
	ctx := context.Background()

	order, err := fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{ProductName: "Shipped", Quantity: 1, UnitPrice: 50},
		},
	})
	require.NoError(t, err)

	_, err = fx.svc.ConfirmSalesOrder(ctx, order.ID)
	require.NoError(t, err)
	_, err = fx.svc.MarkDelivered(ctx, order.ID)
	require.NoError(t, err)

	_, err = fx.svc.CancelSalesOrder(ctx, order.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be cancelled")
}

// TestDeleteSalesOrderDraftOnly verifies only drafts can be deleted.
func TestDeleteSalesOrderDraftOnly(t *testing.T) {
	t.Parallel()

	fx := newSalesOrderFixture(t)
	ctx := context.Background()

	draft, err := fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{ProductName: "Draft", Quantity: 1, UnitPrice: 10},
		},
	})
	require.NoError(t, err)

	confirmed, err := fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{ProductName: "Confirmed", Quantity: 1, UnitPrice: 10},
		},
	})
	require.NoError(t, err)
	_, err = fx.svc.ConfirmSalesOrder(ctx, confirmed.ID)
	require.NoError(t, err)

	require.NoError(t, fx.svc.DeleteSalesOrder(ctx, draft.ID))
	_, err = fx.svc.GetSalesOrder(ctx, draft.ID)
	require.Error(t, err)

	err = fx.svc.DeleteSalesOrder(ctx, confirmed.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only draft orders")
}

// TestSalesDashboard verifies the per-state aggregation and the active
// customer count.
func TestSalesDashboard(t *testing.T) {
	t.Parallel()

	fx := newSalesOrderFixture(t)
	ctx := context.Background()

	first, err := fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{ProductName: "A", Quantity: 1, UnitPrice: 100, TaxRatePercent: ptrFloat(0)},
		},
	})
	require.NoError(t, err)
	_, err = fx.svc.ConfirmSalesOrder(ctx, first.ID)
	require.NoError(t, err)

	_, err = fx.svc.CreateSalesOrder(ctx, &CreateSalesOrderInput{
		CustomerID: fx.customer.ID,
		Lines: []SalesOrderLineInput{
			{ProductName: "B", Quantity: 1, UnitPrice: 50, TaxRatePercent: ptrFloat(0)},
		},
	})
	require.NoError(t, err)

	dashboard, err := fx.svc.GetDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), dashboard.ActiveCustomers)
	require.Len(t, dashboard.States, 2)

	byState := make(map[enum.SalesOrderState]SalesDashboardState)
	for _, row := range dashboard.States {
		byState[row.State] = row
	}
	assert.Equal(t, int64(1), byState[enum.SalesOrderStateConfirmed].Count)
	assert.Equal(t, 100.0, byState[enum.SalesOrderStateConfirmed].Total)
	assert.Equal(t, int64(1), byState[enum.SalesOrderStateDraft].Count)
	assert.Equal(t, 50.0, byState[enum.SalesOrderStateDraft].Total)
}

func ptrFloat(v float64) *float64 {
	return &v
}
