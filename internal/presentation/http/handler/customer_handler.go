package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marketpos/marketpos-api/internal/application/service"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/request"
	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer endpoints
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// CreateCustomer handles POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:        req.Name,
		Type:        enum.CustomerType(req.Type),
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		TaxOffice:   req.TaxOffice,
		TaxNumber:   req.TaxNumber,
		CreditLimit: req.CreditLimit,
		Note:        req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created", customer)
}

// UpdateCustomer handles PUT /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	input := &service.UpdateCustomerInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		TaxOffice:   req.TaxOffice,
		TaxNumber:   req.TaxNumber,
		CreditLimit: req.CreditLimit,
		Active:      req.Active,
		Note:        req.Note,
	}
	if req.Type != nil {
		t := enum.CustomerType(*req.Type)
		input.Type = &t
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated", customer)
}

// GetCustomer handles GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved", customer)
}

// DeleteCustomer handles DELETE /api/v1/customers/:id
func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListCustomers handles GET /api/v1/customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	result, err := h.customerService.ListCustomers(c.Request.Context(), bindPagination(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Customers retrieved", result)
}
