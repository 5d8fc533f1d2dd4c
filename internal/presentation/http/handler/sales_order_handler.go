package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketpos/marketpos-api/internal/application/service"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/request"
	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/response"
)

// SalesOrderHandler handles back-office sales order endpoints
type SalesOrderHandler struct {
	salesOrderService *service.SalesOrderService
}

// NewSalesOrderHandler creates a new sales order handler
func NewSalesOrderHandler(salesOrderService *service.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{salesOrderService: salesOrderService}
}

// CreateSalesOrder handles POST /api/v1/sales/orders
func (h *SalesOrderHandler) CreateSalesOrder(c *gin.Context) {
	var req request.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.CreateSalesOrderInput{
		CustomerID:      req.CustomerID,
		DeliveryAddress: req.DeliveryAddress,
		InvoiceAddress:  req.InvoiceAddress,
		DiscountAmount:  req.DiscountAmount,
		Reference:       req.Reference,
		Note:            req.Note,
		InternalNote:    req.InternalNote,
		Lines:           toSalesOrderLines(req.Lines),
	}
	if req.PaymentTerm != nil {
		term := enum.PaymentTerm(*req.PaymentTerm)
		input.PaymentTerm = &term
	}

	var ok bool
	if input.OrderDate, ok = parseDateField(c, "order_date", req.OrderDate); !ok {
		return
	}
	if input.ValidityDate, ok = parseDateField(c, "validity_date", req.ValidityDate); !ok {
		return
	}
	if input.ExpectedDelivery, ok = parseDateField(c, "expected_delivery", req.ExpectedDelivery); !ok {
		return
	}

	order, err := h.salesOrderService.CreateSalesOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sales order created", order)
}

// UpdateSalesOrder handles PUT /api/v1/sales/orders/:id
func (h *SalesOrderHandler) UpdateSalesOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateSalesOrderInput{
		CustomerID:      req.CustomerID,
		DeliveryAddress: req.DeliveryAddress,
		InvoiceAddress:  req.InvoiceAddress,
		DiscountAmount:  req.DiscountAmount,
		Reference:       req.Reference,
		Note:            req.Note,
		InternalNote:    req.InternalNote,
	}
	if req.PaymentTerm != nil {
		term := enum.PaymentTerm(*req.PaymentTerm)
		input.PaymentTerm = &term
	}
	if req.Lines != nil {
		input.Lines = toSalesOrderLines(req.Lines)
	}

	if input.OrderDate, ok = parseDateField(c, "order_date", req.OrderDate); !ok {
		return
	}
	if input.ValidityDate, ok = parseDateField(c, "validity_date", req.ValidityDate); !ok {
		return
	}
	if input.ExpectedDelivery, ok = parseDateField(c, "expected_delivery", req.ExpectedDelivery); !ok {
		return
	}

	order, err := h.salesOrderService.UpdateSalesOrder(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order updated", order)
}

// GetSalesOrder handles GET /api/v1/sales/orders/:id
func (h *SalesOrderHandler) GetSalesOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.salesOrderService.GetSalesOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order retrieved", order)
}

// ListSalesOrders handles GET /api/v1/sales/orders
func (h *SalesOrderHandler) ListSalesOrders(c *gin.Context) {
	params := &repository.SalesOrderFilterParams{
		Pagination: bindPagination(c),
		Search:     c.Query("search"),
	}

	if state := c.Query("state"); state != "" {
		s := enum.SalesOrderState(state)
		if !s.Valid() {
			response.BadRequest(c, "Invalid state parameter")
			return
		}
		params.State = &s
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer_id parameter")
			return
		}
		params.CustomerID = &id
	}
	if start := c.Query("start_date"); start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			response.BadRequest(c, "Invalid start_date parameter, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &t
	}
	if end := c.Query("end_date"); end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			response.BadRequest(c, "Invalid end_date parameter, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &t
	}

	result, err := h.salesOrderService.ListSalesOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Sales orders retrieved", result)
}

// ConfirmSalesOrder handles POST /api/v1/sales/orders/:id/confirm
func (h *SalesOrderHandler) ConfirmSalesOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.salesOrderService.ConfirmSalesOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order confirmed", order)
}

// MarkDelivered handles POST /api/v1/sales/orders/:id/deliver
func (h *SalesOrderHandler) MarkDelivered(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.salesOrderService.MarkDelivered(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order delivered", order)
}

// CancelSalesOrder handles POST /api/v1/sales/orders/:id/cancel
func (h *SalesOrderHandler) CancelSalesOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.salesOrderService.CancelSalesOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order cancelled", order)
}

// DeleteSalesOrder handles DELETE /api/v1/sales/orders/:id
func (h *SalesOrderHandler) DeleteSalesOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.salesOrderService.DeleteSalesOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales order deleted", nil)
}

// GetDashboard handles GET /api/v1/sales/dashboard
func (h *SalesOrderHandler) GetDashboard(c *gin.Context) {
	dashboard, err := h.salesOrderService.GetDashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales dashboard retrieved", dashboard)
}

func toSalesOrderLines(reqs []request.SalesOrderLineRequest) []service.SalesOrderLineInput {
	lines := make([]service.SalesOrderLineInput, 0, len(reqs))
	for _, r := range reqs {
		lines = append(lines, service.SalesOrderLineInput{
			ProductID:       r.ProductID,
			ProductName:     r.ProductName,
			ProductCode:     r.ProductCode,
			Description:     r.Description,
			Quantity:        r.Quantity,
			UnitPrice:       r.UnitPrice,
			DiscountPercent: r.DiscountPercent,
			TaxRatePercent:  r.TaxRatePercent,
		})
	}
	return lines
}

// parseDateField parses an optional YYYY-MM-DD field, writing a 400 response
// on a malformed value.
func parseDateField(c *gin.Context, name string, value *string) (*time.Time, bool) {
	if value == nil || *value == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", *value)
	if err != nil {
		response.BadRequest(c, "Invalid "+name+" field, expected YYYY-MM-DD")
		return nil, false
	}
	return &t, true
}
