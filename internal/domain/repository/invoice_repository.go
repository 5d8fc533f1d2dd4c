package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/marketpos/marketpos-api/internal/domain/entity"
	"github.com/marketpos/marketpos-api/internal/domain/enum"
	"github.com/marketpos/marketpos-api/pkg/pagination"
)

// InvoiceRepository defines the interface for invoice persistence.
// Create persists the invoice together with its lines.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// CountByPrefix counts invoices whose number starts with the given prefix,
	// used for sequential numbering (INV/2026/08/0001).
	CountByPrefix(ctx context.Context, prefix string) (int64, error)
}

// InvoiceFilterParams contains filtering parameters for invoice queries
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	Status     *enum.InvoiceStatus
	StartDate  *time.Time
	EndDate    *time.Time
}
