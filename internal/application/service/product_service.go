package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/internal/domain/repository"
	"github.com/marketpos/marketpos-api/pkg/apperror"
	"github.com/marketpos/marketpos-api/pkg/pagination"
	"github.com/marketpos/marketpos-api/pkg/utils"
	"github.com/xuri/excelize/v2"
)

// ProductService handles catalog operations
type ProductService struct {
	productRepo   repository.ProductRepository
	categoryRepo  repository.CategoryRepository
	stockMoveRepo repository.StockMoveRepository
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	stockMoveRepo repository.StockMoveRepository,
) *ProductService {
	return &ProductService{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		stockMoveRepo: stockMoveRepo,
	}
}

// CreateProductInput represents the create product input. Prices are decimal
// amounts.
type CreateProductInput struct {
	CategoryID     *uuid.UUID
	Name           string
	Code           string
	Barcode        *string
	ListPrice      float64
	CostPrice      float64
	TaxRatePercent float64
	StockQty       float64
	ReorderPoint   float64
	Unit           string
	ToWeight       bool
	AvailableInPos bool
	Description    *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
	}

	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	} else {
		existing, err := s.productRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Product code already in use")
		}
	}

	if input.Barcode != nil {
		existing, err := s.productRepo.GetByBarcode(ctx, *input.Barcode)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Barcode already in use")
		}
	}

	unit := input.Unit
	if unit == "" {
		unit = "pcs"
	}

	product := &entity.Product{
		CategoryID:     input.CategoryID,
		Name:           input.Name,
		Code:           code,
		Barcode:        input.Barcode,
		ListPrice:      int64(input.ListPrice * 100),
		CostPrice:      int64(input.CostPrice * 100),
		TaxRatePercent: input.TaxRatePercent,
		StockQty:       input.StockQty,
		ReorderPoint:   input.ReorderPoint,
		Unit:           unit,
		ToWeight:       input.ToWeight,
		AvailableInPos: input.AvailableInPos,
		Active:         true,
		Description:    input.Description,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProductInput represents the update product input. Nil fields are
// left unchanged.
type UpdateProductInput struct {
	CategoryID     *uuid.UUID
	Name           *string
	Barcode        *string
	ListPrice      *float64
	CostPrice      *float64
	TaxRatePercent *float64
	ReorderPoint   *float64
	Unit           *string
	ToWeight       *bool
	AvailableInPos *bool
	Active         *bool
	Description    *string
}

// UpdateProduct updates a product's mutable fields
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, apperror.NewNotFoundError("Category")
		}
		product.CategoryID = input.CategoryID
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Barcode != nil {
		product.Barcode = input.Barcode
	}
	if input.ListPrice != nil {
		product.ListPrice = int64(*input.ListPrice * 100)
	}
	if input.CostPrice != nil {
		product.CostPrice = int64(*input.CostPrice * 100)
	}
	if input.TaxRatePercent != nil {
		product.TaxRatePercent = *input.TaxRatePercent
	}
	if input.ReorderPoint != nil {
		product.ReorderPoint = *input.ReorderPoint
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.ToWeight != nil {
		product.ToWeight = *input.ToWeight
	}
	if input.AvailableInPos != nil {
		product.AvailableInPos = *input.AvailableInPos
	}
	if input.Active != nil {
		product.Active = *input.Active
	}
	if input.Description != nil {
		product.Description = input.Description
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// GetProductByBarcode retrieves a product by barcode, the primary lookup on
// the register
func (s *ProductService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := s.productRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filtering
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStockProducts returns products at or below their reorder point
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// AdjustStockInput represents a manual stock adjustment
type AdjustStockInput struct {
	ProductID uuid.UUID
	Quantity  float64 // signed: positive adds stock, negative removes
	Reason    string
}

// AdjustStock applies a manual stock correction and records the movement
func (s *ProductService) AdjustStock(ctx context.Context, input *AdjustStockInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Quantity == 0 {
		return nil, apperror.NewBadRequestError("Adjustment quantity cannot be zero")
	}

	if input.Quantity > 0 {
		err = s.productRepo.AtomicIncrementBatch(ctx, map[uuid.UUID]float64{product.ID: input.Quantity})
		if err != nil {
			return nil, err
		}
	} else {
		failedIDs, err := s.productRepo.AtomicDecrementBatch(ctx, map[uuid.UUID]float64{product.ID: -input.Quantity})
		if err != nil {
			return nil, err
		}
		if len(failedIDs) > 0 {
			return nil, apperror.NewConflictError("Adjustment would drive stock negative")
		}
	}

	move := &entity.StockMove{
		ProductID: product.ID,
		Type:      enum.StockMoveAdjustment,
		Quantity:  input.Quantity,
		Reference: input.Reason,
		MovedAt:   time.Now(),
	}
	if err := s.stockMoveRepo.Create(ctx, move); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

// ListStockMoves lists the movement history of a product
func (s *ProductService) ListStockMoves(ctx context.Context, productID uuid.UUID, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.StockMove], error) {
	moves, total, err := s.stockMoveRepo.ListByProduct(ctx, productID, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(moves, pag), nil
}

// ExportProductsExcel writes the full catalog to an xlsx workbook
func (s *ProductService) ExportProductsExcel(ctx context.Context) (*bytes.Buffer, error) {
	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 100},
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Products"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Code", "Barcode", "Name", "Category", "List Price", "Cost Price", "Tax %", "Stock", "Reorder Point", "Unit", "Available in POS"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	row := 2
	for {
		products, total, err := s.productRepo.List(ctx, params)
		if err != nil {
			return nil, err
		}

		for _, p := range products {
			barcode := ""
			if p.Barcode != nil {
				barcode = *p.Barcode
			}
			category := ""
			if p.Category != nil {
				category = p.Category.Name
			}

			values := []any{
				p.Code,
				barcode,
				p.Name,
				category,
				float64(p.ListPrice) / 100,
				float64(p.CostPrice) / 100,
				p.TaxRatePercent,
				p.StockQty,
				p.ReorderPoint,
				p.Unit,
				p.AvailableInPos,
			}
			for i, v := range values {
				cell, _ := excelize.CoordinatesToCellName(i+1, row)
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, err
				}
			}
			row++
		}

		if int64(params.Pagination.Page*params.Pagination.PerPage) >= total {
			break
		}
		params.Pagination.Page++
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return &buf, nil
}

// CategoryService handles product category operations
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// CreateCategoryInput represents the create category input
type CreateCategoryInput struct {
	ParentID *uuid.UUID
	Name     string
	Sequence int
}

// CreateCategory creates a new category
func (s *CategoryService) CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error) {
	slug := utils.Slugify(input.Name)

	existing, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Category already exists")
	}

	sequence := input.Sequence
	if sequence == 0 {
		sequence = 10
	}

	category := &entity.Category{
		ParentID: input.ParentID,
		Name:     input.Name,
		Slug:     slug,
		Sequence: sequence,
		Active:   true,
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories lists active categories ordered by sequence
func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return s.categoryRepo.List(ctx)
}

// DeleteCategory soft-deletes a category
func (s *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Category")
	}
	return s.categoryRepo.Delete(ctx, id)
}
