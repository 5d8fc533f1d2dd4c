package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/pkg/aiclient"
	"github.com/marketpos/marketpos-api/pkg/pagination"
)

// In-memory fakes for the repository interfaces. They implement just enough
// behavior for the service tests; no locking because tests drive them from a
// single goroutine.

type fakeSessionRepo struct {
	sessions  map[uuid.UUID]*entity.Session
	createErr error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *entity.Session) error {
	if r.createErr != nil {
		return r.createErr
	}
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeSessionRepo) GetOpen(_ context.Context) (*entity.Session, error) {
	for _, s := range r.sessions {
		if s.State.IsOpen() {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Update(_ context.Context, s *entity.Session) error {
	cp := *s
	r.sessions[s.ID] = &cp
	return nil
}

func (r *fakeSessionRepo) List(_ context.Context, params *repository.SessionFilterParams) ([]entity.Session, int64, error) {
	var out []entity.Session
	for _, s := range r.sessions {
		if params.State != nil && s.State != *params.State {
			continue
		}
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSessionRepo) CountByPrefix(_ context.Context, prefix string) (int64, error) {
	var count int64
	for _, s := range r.sessions {
		if strings.HasPrefix(s.Name, prefix) {
			count++
		}
	}
	return count, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*entity.Product)}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.Barcode != nil && *p.Barcode == barcode {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	total := int64(len(out))
	params.Pagination.Validate()
	if params.Pagination.Page > 1 {
		return nil, total, nil
	}
	return out, total, nil
}

func (r *fakeProductRepo) GetLowStock(_ context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.IsBelowReorderPoint() {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) AtomicDecrementBatch(_ context.Context, decrements map[uuid.UUID]float64) ([]uuid.UUID, error) {
	var failed []uuid.UUID
	for id, qty := range decrements {
		p, ok := r.products[id]
		if !ok || p.StockQty < qty {
			failed = append(failed, id)
		}
	}
	if len(failed) > 0 {
		return failed, nil
	}
	for id, qty := range decrements {
		r.products[id].StockQty -= qty
	}
	return nil, nil
}

func (r *fakeProductRepo) AtomicIncrementBatch(_ context.Context, increments map[uuid.UUID]float64) error {
	for id, qty := range increments {
		if p, ok := r.products[id]; ok {
			p.StockQty += qty
		}
	}
	return nil
}

type fakeOrderRepo struct {
	orders    map[uuid.UUID]*entity.PosOrder
	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uuid.UUID]*entity.PosOrder)}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.PosOrder) error {
	if r.createErr != nil {
		return r.createErr
	}
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.PosOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetWithDetails(_ context.Context, id uuid.UUID) (*entity.PosOrder, error) {
	return r.GetByID(context.Background(), id)
}

func (r *fakeOrderRepo) Update(_ context.Context, o *entity.PosOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeOrderRepo) UpdateState(_ context.Context, id uuid.UUID, state enum.OrderState) error {
	if o, ok := r.orders[id]; ok {
		o.State = state
	}
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, params *repository.OrderFilterParams) ([]entity.PosOrder, int64, error) {
	var out []entity.PosOrder
	for _, o := range r.orders {
		if params.State != nil && o.State != *params.State {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeOrderRepo) CountByPrefix(_ context.Context, prefix string) (int64, error) {
	var count int64
	for _, o := range r.orders {
		if strings.HasPrefix(o.Name, prefix) {
			count++
		}
	}
	return count, nil
}

type fakeCustomerRepo struct {
	customers map[uuid.UUID]*entity.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uuid.UUID]*entity.Customer)}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCustomerRepo) GetByCode(_ context.Context, code string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Code == code {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.customers[c.ID] = &cp
	return nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Customer, int64, error) {
	var out []entity.Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (r *fakeCustomerRepo) CountActive(_ context.Context) (int64, error) {
	var count int64
	for _, c := range r.customers {
		if c.Active {
			count++
		}
	}
	return count, nil
}

type fakeStockMoveRepo struct {
	moves []entity.StockMove
}

func (r *fakeStockMoveRepo) Create(_ context.Context, m *entity.StockMove) error {
	r.moves = append(r.moves, *m)
	return nil
}

func (r *fakeStockMoveRepo) CreateBatch(_ context.Context, moves []entity.StockMove) error {
	r.moves = append(r.moves, moves...)
	return nil
}

func (r *fakeStockMoveRepo) ListByProduct(_ context.Context, productID uuid.UUID, _ *pagination.PaginationParams) ([]entity.StockMove, int64, error) {
	var out []entity.StockMove
	for _, m := range r.moves {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

type fakeInvoiceRepo struct {
	invoices map[uuid.UUID]*entity.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[uuid.UUID]*entity.Invoice)}
}

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.Invoice) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByOrderID(_ context.Context, orderID uuid.UUID) (*entity.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.OrderID != nil && *inv.OrderID == orderID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) Update(_ context.Context, inv *entity.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enum.InvoiceStatus) error {
	if inv, ok := r.invoices[id]; ok {
		inv.Status = status
	}
	return nil
}

func (r *fakeInvoiceRepo) List(_ context.Context, _ *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var out []entity.Invoice
	for _, inv := range r.invoices {
		out = append(out, *inv)
	}
	return out, int64(len(out)), nil
}

func (r *fakeInvoiceRepo) CountByPrefix(_ context.Context, prefix string) (int64, error) {
	var count int64
	for _, inv := range r.invoices {
		if strings.HasPrefix(inv.InvoiceNo, prefix) {
			count++
		}
	}
	return count, nil
}

type fakeAnalyticsRepo struct {
	summary     repository.SalesSummary
	dailySales  []repository.DailySalesResult
	topProducts []repository.TopProductResult
}

func (r *fakeAnalyticsRepo) GetTopProducts(_ context.Context, _ int) ([]repository.TopProductResult, error) {
	return r.topProducts, nil
}

func (r *fakeAnalyticsRepo) GetDailySales(_ context.Context, _ int) ([]repository.DailySalesResult, error) {
	return r.dailySales, nil
}

func (r *fakeAnalyticsRepo) GetSalesSummary(_ context.Context, _, _ time.Time) (*repository.SalesSummary, error) {
	cp := r.summary
	return &cp, nil
}

type fakeAIClient struct {
	forecast   *aiclient.CashflowForecast
	anomalies  []aiclient.Anomaly
	extraction *aiclient.InvoiceExtraction
	err        error
}

func (c *fakeAIClient) ForecastCashflow(_ context.Context, _ int) (*aiclient.CashflowForecast, error) {
	return c.forecast, c.err
}

func (c *fakeAIClient) DetectAnomalies(_ context.Context, _ time.Time) ([]aiclient.Anomaly, error) {
	return c.anomalies, c.err
}

func (c *fakeAIClient) ExtractInvoice(_ context.Context, _ []byte, _ string) (*aiclient.InvoiceExtraction, error) {
	return c.extraction, c.err
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*entity.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*entity.Category)}
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *entity.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*entity.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *entity.Category) error {
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]entity.Category, error) {
	var out []entity.Category
	for _, c := range r.categories {
		if c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeSalesOrderRepo struct {
	orders map[uuid.UUID]*entity.SalesOrder
	// names of every order ever created, so numbering never reuses a
	// name after a deletion
	names []string
}

func newFakeSalesOrderRepo() *fakeSalesOrderRepo {
	return &fakeSalesOrderRepo{orders: make(map[uuid.UUID]*entity.SalesOrder)}
}

func (r *fakeSalesOrderRepo) Create(_ context.Context, o *entity.SalesOrder) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	for i := range o.Lines {
		if o.Lines[i].ID == uuid.Nil {
			o.Lines[i].ID = uuid.New()
		}
		o.Lines[i].OrderID = o.ID
	}
	cp := *o
	r.orders[o.ID] = &cp
	r.names = append(r.names, o.Name)
	return nil
}

func (r *fakeSalesOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.SalesOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeSalesOrderRepo) Update(_ context.Context, o *entity.SalesOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeSalesOrderRepo) ReplaceLines(_ context.Context, o *entity.SalesOrder, lines []entity.SalesOrderLine) error {
	for i := range lines {
		if lines[i].ID == uuid.Nil {
			lines[i].ID = uuid.New()
		}
		lines[i].OrderID = o.ID
	}
	o.Lines = lines
	o.RecalculateTotals()
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}

func (r *fakeSalesOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeSalesOrderRepo) List(_ context.Context, params *repository.SalesOrderFilterParams) ([]entity.SalesOrder, int64, error) {
	var out []entity.SalesOrder
	for _, o := range r.orders {
		if params.State != nil && o.State != *params.State {
			continue
		}
		if params.CustomerID != nil && o.CustomerID != *params.CustomerID {
			continue
		}
		if params.Search != "" && !strings.Contains(o.Name, params.Search) {
			continue
		}
		out = append(out, *o)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSalesOrderRepo) CountByPrefix(_ context.Context, prefix string) (int64, error) {
	var count int64
	for _, name := range r.names {
		if strings.HasPrefix(name, prefix) {
			count++
		}
	}
	return count, nil
}

func (r *fakeSalesOrderRepo) CountByState(_ context.Context) ([]repository.SalesOrderStateCount, error) {
	byState := make(map[enum.SalesOrderState]*repository.SalesOrderStateCount)
	for _, o := range r.orders {
		row, ok := byState[o.State]
		if !ok {
			row = &repository.SalesOrderStateCount{State: o.State}
			byState[o.State] = row
		}
		row.Count++
		row.AmountTotal += o.AmountTotal
	}
	var out []repository.SalesOrderStateCount
	for _, row := range byState {
		out = append(out, *row)
	}
	return out, nil
}
