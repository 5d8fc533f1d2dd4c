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

// PosHandler handles checkout and order endpoints
type PosHandler struct {
	checkoutService *service.CheckoutService
}

// NewPosHandler creates a new POS handler
func NewPosHandler(checkoutService *service.CheckoutService) *PosHandler {
	return &PosHandler{checkoutService: checkoutService}
}

func toCheckoutLines(lines []request.CheckoutLineRequest) []service.CheckoutLineInput {
	out := make([]service.CheckoutLineInput, 0, len(lines))
	for _, l := range lines {
		out = append(out, service.CheckoutLineInput{
			ProductID:       l.ProductID,
			Quantity:        l.Quantity,
			DiscountPercent: l.DiscountPercent,
		})
	}
	return out
}

// CommitOrder handles POST /api/v1/pos/orders
func (h *PosHandler) CommitOrder(c *gin.Context) {
	var req request.CommitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tenders := make([]service.TenderInput, 0, len(req.Tenders))
	for _, t := range req.Tenders {
		tenders = append(tenders, service.TenderInput{
			Method:    enum.PaymentMethod(t.Method),
			Amount:    t.Amount,
			CardLast4: t.CardLast4,
		})
	}

	order, err := h.checkoutService.CommitOrder(c.Request.Context(), &service.CommitOrderInput{
		CustomerID: req.CustomerID,
		Lines:      toCheckoutLines(req.Lines),
		Tenders:    tenders,
		Note:       req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order committed", order)
}

// QuoteTotals handles POST /api/v1/pos/orders/quote
func (h *PosHandler) QuoteTotals(c *gin.Context) {
	var req request.QuoteTotalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	totals, err := h.checkoutService.QuoteTotals(c.Request.Context(), &service.QuoteTotalsInput{
		Lines: toCheckoutLines(req.Lines),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Totals computed", totals)
}

// GetOrder handles GET /api/v1/pos/orders/:id
func (h *PosHandler) GetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := h.checkoutService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved", order)
}

// ListOrders handles GET /api/v1/pos/orders
func (h *PosHandler) ListOrders(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: bindPagination(c),
		Search:     c.Query("search"),
	}

	if sessionID := c.Query("session_id"); sessionID != "" {
		id, err := uuid.Parse(sessionID)
		if err != nil {
			response.BadRequest(c, "Invalid session_id parameter")
			return
		}
		params.SessionID = &id
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer_id parameter")
			return
		}
		params.CustomerID = &id
	}
	if state := c.Query("state"); state != "" {
		s := enum.OrderState(state)
		params.State = &s
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

	result, err := h.checkoutService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Orders retrieved", result)
}

// CancelOrder handles POST /api/v1/pos/orders/:id/cancel
func (h *PosHandler) CancelOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.checkoutService.CancelOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled", nil)
}
