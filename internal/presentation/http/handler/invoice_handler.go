package handler

import (
	"io"
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

// maxScanSize caps uploaded invoice scans at 10 MB.
const maxScanSize = 10 << 20

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// CreateFromOrder handles POST /api/v1/invoices/from-order
func (h *InvoiceHandler) CreateFromOrder(c *gin.Context) {
	var req request.CreateInvoiceFromOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.CreateFromOrder(c.Request.Context(), req.OrderID, req.CustomerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created", invoice)
}

// DraftFromScan handles POST /api/v1/invoices/scan. The scanned document is
// uploaded as multipart form data under the "document" field.
func (h *InvoiceHandler) DraftFromScan(c *gin.Context) {
	fileHeader, err := c.FormFile("document")
	if err != nil {
		response.BadRequest(c, "A document file is required")
		return
	}
	if fileHeader.Size > maxScanSize {
		response.BadRequest(c, "Document exceeds the 10 MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not read the uploaded document")
		return
	}
	defer file.Close()

	document, err := io.ReadAll(io.LimitReader(file, maxScanSize))
	if err != nil {
		response.BadRequest(c, "Could not read the uploaded document")
		return
	}

	invoice, err := h.invoiceService.DraftFromScan(c.Request.Context(), &service.DraftFromScanInput{
		Document: document,
		Filename: fileHeader.Filename,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice drafted from scan", invoice)
}

// GetInvoice handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved", invoice)
}

// ListInvoices handles GET /api/v1/invoices
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	params := &repository.InvoiceFilterParams{
		Pagination: bindPagination(c),
	}

	if customerID := c.Query("customer_id"); customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			response.BadRequest(c, "Invalid customer_id parameter")
			return
		}
		params.CustomerID = &id
	}
	if status := c.Query("status"); status != "" {
		s := enum.InvoiceStatus(status)
		params.Status = &s
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

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Invoices retrieved", result)
}

// UpdateStatus handles PATCH /api/v1/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), id, enum.InvoiceStatus(req.Status)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice status updated", nil)
}
