package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/internal/domain/pos"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/pkg/apperror"
	"github.com/marketpos/marketpos-api/pkg/pagination"
	"github.com/marketpos/marketpos-api/pkg/utils"
)

// CheckoutService turns a cart into a committed order. Line arithmetic and
// payment reconciliation are delegated to the pos package; this service owns
// the side effects: stock decrement, persistence and the session ledger.
type CheckoutService struct {
	orderRepo     repository.OrderRepository
	sessionRepo   repository.SessionRepository
	productRepo   repository.ProductRepository
	customerRepo  repository.CustomerRepository
	stockMoveRepo repository.StockMoveRepository
}

// NewCheckoutService creates a new checkout service
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	sessionRepo repository.SessionRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	stockMoveRepo repository.StockMoveRepository,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:     orderRepo,
		sessionRepo:   sessionRepo,
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		stockMoveRepo: stockMoveRepo,
	}
}

// CheckoutLineInput is one cart line as submitted by the register client.
// Quantity is fractional for weighed goods; DiscountPercent is clamped to
// [0, 100] server-side.
type CheckoutLineInput struct {
	ProductID       uuid.UUID
	Quantity        float64
	DiscountPercent float64
}

// TenderInput is one payment offered toward the order total, as a decimal
// amount.
type TenderInput struct {
	Method    enum.PaymentMethod
	Amount    float64
	CardLast4 *string
}

// CommitOrderInput represents the commit order input
type CommitOrderInput struct {
	CustomerID *uuid.UUID
	Lines      []CheckoutLineInput
	Tenders    []TenderInput
	Note       *string
}

// CommitOrder validates and commits a checkout against the open session.
//
// Totals are always recomputed server-side from the submitted lines; the
// client's displayed totals are never trusted. Reconciliation must succeed
// before any state changes. Stock is decremented atomically before the order
// is persisted, and restored if persistence fails.
func (s *CheckoutService) CommitOrder(ctx context.Context, input *CommitOrderInput) (*entity.PosOrder, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("Cannot commit an empty order")
	}

	session, err := s.sessionRepo.GetOpen(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || session.State != enum.SessionStateActive {
		return nil, apperror.NewConflictError(pos.ErrSessionNotActive.Error())
	}

	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperror.NewNotFoundError("Customer")
		}
	}

	cart, productMap, err := s.buildCart(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	totals := cart.Totals()

	tenders := make([]pos.Tender, len(input.Tenders))
	for i, t := range input.Tenders {
		tenders[i] = pos.Tender{
			Method: t.Method,
			Amount: int64(t.Amount * 100),
		}
	}

	result, err := pos.Reconcile(totals.Total, tenders)
	if err != nil {
		if errors.Is(err, pos.ErrInsufficientPayment) || errors.Is(err, pos.ErrNoTender) {
			return nil, apperror.NewUnprocessableError(err.Error())
		}
		return nil, apperror.NewBadRequestError(err.Error())
	}

	// Atomically decrement stock; race-condition safe. If any product lacks
	// stock the whole batch is rolled back.
	stockDecrements := make(map[uuid.UUID]float64, cart.Len())
	for _, line := range cart.Lines() {
		stockDecrements[line.ProductRef] = line.Quantity
	}

	failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, stockDecrements)
	if err != nil {
		return nil, err
	}
	if len(failedIDs) > 0 {
		var failedNames []string
		for _, id := range failedIDs {
			if product, exists := productMap[id]; exists {
				failedNames = append(failedNames, product.Name)
			}
		}
		return nil, apperror.NewConflictError(fmt.Sprintf("Insufficient stock for: %v", failedNames))
	}

	now := time.Now()
	prefix := utils.MonthPrefix("ORD", now)
	seq, err := s.orderRepo.CountByPrefix(ctx, prefix)
	if err != nil {
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	order := &entity.PosOrder{
		Name:         utils.DocumentName("ORD", now, seq+1),
		SessionID:    session.ID,
		CustomerID:   input.CustomerID,
		State:        enum.OrderStatePaid,
		OrderDate:    now,
		AmountTax:    totals.Tax,
		AmountTotal:  totals.Total,
		AmountPaid:   result.Tendered,
		AmountChange: result.Change,
		ReceiptNo:    utils.GenerateReceiptNo(),
		Note:         input.Note,
	}

	for _, line := range cart.Lines() {
		product := productMap[line.ProductRef]
		order.Lines = append(order.Lines, entity.PosOrderLine{
			ProductID:       product.ID,
			ProductName:     product.Name,
			Barcode:         product.Barcode,
			Quantity:        line.Quantity,
			UnitPrice:       line.UnitPrice,
			DiscountPercent: line.DiscountPercent,
			TaxRatePercent:  line.TaxRatePercent,
			Subtotal:        line.Subtotal(),
			Tax:             line.Tax(),
		})
	}

	for i, t := range input.Tenders {
		order.Payments = append(order.Payments, entity.PosPayment{
			Method:    t.Method,
			Amount:    tenders[i].Amount,
			CardLast4: t.CardLast4,
			PaidAt:    now,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		// Stock was already decremented, restore it
		_ = s.productRepo.AtomicIncrementBatch(ctx, stockDecrements)
		return nil, err
	}

	moves := make([]entity.StockMove, 0, len(order.Lines))
	for _, line := range order.Lines {
		moves = append(moves, entity.StockMove{
			ProductID: line.ProductID,
			Type:      enum.StockMoveOut,
			Quantity:  line.Quantity,
			Reference: order.Name,
			MovedAt:   now,
		})
	}
	if err := s.stockMoveRepo.CreateBatch(ctx, moves); err != nil {
		return nil, err
	}

	// Fold the committed total into the session ledger
	ledger := session.Ledger()
	if err := ledger.RecordCommittedOrder(totals.Total); err != nil {
		return nil, apperror.NewConflictError(err.Error())
	}
	session.ApplyLedger(ledger)

	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	return s.orderRepo.GetWithDetails(ctx, order.ID)
}

// QuoteTotalsInput represents a totals preview request
type QuoteTotalsInput struct {
	Lines []CheckoutLineInput
}

// QuoteTotals recomputes cart totals server-side without committing anything.
// The register client calls this to keep its displayed totals honest. Lines
// go through the same validation as a commit, so a quote never succeeds for
// an order the commit would reject.
func (s *CheckoutService) QuoteTotals(ctx context.Context, input *QuoteTotalsInput) (*pos.Totals, error) {
	cart, _, err := s.buildCart(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	totals := cart.Totals()
	return &totals, nil
}

// buildCart rebuilds the cart server-side from the submitted lines. Prices
// and tax rates come from the catalog, not the client. A product may appear
// on at most one line; duplicates are rejected rather than merged so the
// register display and the committed order cannot disagree on a quantity.
func (s *CheckoutService) buildCart(ctx context.Context, lines []CheckoutLineInput) (*pos.Cart, map[uuid.UUID]*entity.Product, error) {
	// Batch fetch all products in one query (prevents N+1)
	productIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		productIDs[i] = line.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, nil, err
	}

	productMap := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		productMap[products[i].ID] = &products[i]
	}

	cart := pos.NewCart()
	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		product, exists := productMap[line.ProductID]
		if !exists {
			return nil, nil, apperror.NewNotFoundError(fmt.Sprintf("Product %s", line.ProductID))
		}
		if !product.Active || !product.AvailableInPos {
			return nil, nil, apperror.NewBadRequestError(fmt.Sprintf("Product %s is not sellable", product.Name))
		}
		if seen[product.ID] {
			return nil, nil, apperror.NewBadRequestError(fmt.Sprintf("Product %s appears on more than one line", product.Name))
		}
		seen[product.ID] = true

		cart.AddLine(product.ID, product.ListPrice, product.TaxRatePercent)
		cart.SetQuantity(product.ID, line.Quantity)
		cart.SetDiscount(product.ID, line.DiscountPercent)
	}

	return cart, productMap, nil
}

// GetOrder retrieves an order with its lines and payments
func (s *CheckoutService) GetOrder(ctx context.Context, id uuid.UUID) (*entity.PosOrder, error) {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Order")
	}
	return order, nil
}

// ListOrders lists orders with filtering
func (s *CheckoutService) ListOrders(ctx context.Context, params *repository.OrderFilterParams) (*pagination.PaginatedResult[entity.PosOrder], error) {
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// CancelOrder cancels a committed order and restores its stock. The session
// ledger is not rewound: the cancellation is visible in the order list and
// the drawer count absorbs any refund.
func (s *CheckoutService) CancelOrder(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetWithDetails(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Order")
	}

	if !order.State.Cancellable() {
		return apperror.NewConflictError("Order in state " + order.State.String() + " cannot be cancelled")
	}

	stockIncrements := make(map[uuid.UUID]float64, len(order.Lines))
	for _, line := range order.Lines {
		stockIncrements[line.ProductID] = line.Quantity
	}

	if err := s.productRepo.AtomicIncrementBatch(ctx, stockIncrements); err != nil {
		return err
	}

	now := time.Now()
	moves := make([]entity.StockMove, 0, len(order.Lines))
	for _, line := range order.Lines {
		moves = append(moves, entity.StockMove{
			ProductID: line.ProductID,
			Type:      enum.StockMoveIn,
			Quantity:  line.Quantity,
			Reference: order.Name + " (cancelled)",
			MovedAt:   now,
		})
	}
	if err := s.stockMoveRepo.CreateBatch(ctx, moves); err != nil {
		return err
	}

	return s.orderRepo.UpdateState(ctx, id, enum.OrderStateCancelled)
}
