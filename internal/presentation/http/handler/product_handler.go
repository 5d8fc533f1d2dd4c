package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marketpos/marketpos-api/internal/application/service"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/request"
	"github.com/marketpos/marketpos-api/internal/presentation/http/dto/response"
)

// ProductHandler handles product and stock endpoints
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// CreateProduct handles POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	availableInPos := true
	if req.AvailableInPos != nil {
		availableInPos = *req.AvailableInPos
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Code:           req.Code,
		Barcode:        req.Barcode,
		ListPrice:      req.ListPrice,
		CostPrice:      req.CostPrice,
		TaxRatePercent: req.TaxRatePercent,
		StockQty:       req.StockQty,
		ReorderPoint:   req.ReorderPoint,
		Unit:           req.Unit,
		ToWeight:       req.ToWeight,
		AvailableInPos: availableInPos,
		Description:    req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created", product)
}

// UpdateProduct handles PUT /api/v1/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Barcode:        req.Barcode,
		ListPrice:      req.ListPrice,
		CostPrice:      req.CostPrice,
		TaxRatePercent: req.TaxRatePercent,
		ReorderPoint:   req.ReorderPoint,
		Unit:           req.Unit,
		ToWeight:       req.ToWeight,
		AvailableInPos: req.AvailableInPos,
		Active:         req.Active,
		Description:    req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated", product)
}

// GetProduct handles GET /api/v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// GetProductByBarcode handles GET /api/v1/products/barcode/:barcode
func (h *ProductHandler) GetProductByBarcode(c *gin.Context) {
	barcode := c.Param("barcode")
	if barcode == "" {
		response.BadRequest(c, "Barcode is required")
		return
	}

	product, err := h.productService.GetProductByBarcode(c.Request.Context(), barcode)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved", product)
}

// DeleteProduct handles DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// ListProducts handles GET /api/v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: bindPagination(c),
		Search:     c.Query("search"),
		LowStock:   c.Query("low_stock") == "true",
	}

	if categoryID := c.Query("category_id"); categoryID != "" {
		id, err := uuid.Parse(categoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category_id parameter")
			return
		}
		params.CategoryID = &id
	}
	if available := c.Query("available_in_pos"); available != "" {
		v := available == "true"
		params.AvailableInPos = &v
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Products retrieved", result)
}

// GetLowStockProducts handles GET /api/v1/products/low-stock
func (h *ProductHandler) GetLowStockProducts(c *gin.Context) {
	products, err := h.productService.GetLowStockProducts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved", products)
}

// AdjustStock handles POST /api/v1/products/:id/adjust-stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req request.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), &service.AdjustStockInput{
		ProductID: id,
		Quantity:  req.Quantity,
		Reason:    req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock adjusted", product)
}

// ListStockMoves handles GET /api/v1/products/:id/stock-moves
func (h *ProductHandler) ListStockMoves(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.productService.ListStockMoves(c.Request.Context(), id, bindPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Stock moves retrieved", result)
}

// ExportProducts handles GET /api/v1/products/export
func (h *ProductHandler) ExportProducts(c *gin.Context) {
	buf, err := h.productService.ExportProductsExcel(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "products-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// CategoryHandler handles category endpoints
type CategoryHandler struct {
	categoryService *service.CategoryService
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategory handles POST /api/v1/categories
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req request.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &service.CreateCategoryInput{
		ParentID: req.ParentID,
		Name:     req.Name,
		Sequence: req.Sequence,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created", category)
}

// ListCategories handles GET /api/v1/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved", categories)
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
