package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	// GetByIDForUpdate fetches the sale under a row lock. Must be called
	// inside a transaction; it is the guard that keeps two concurrent
	// payment applications from both observing an incomplete sale.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	GetWithPayments(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	List(ctx context.Context, userID uuid.UUID, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// CountByDay counts sales created on the given day across all customers.
	// Called inside the transaction that creates the numbered sale.
	CountByDay(ctx context.Context, day time.Time) (int64, error)
}

// SaleFilterParams contains filtering parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Completed  *bool
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListBySaleID(ctx context.Context, saleID uuid.UUID) ([]entity.Payment, error)
}

// CommissionRepository defines the interface for commission data operations
type CommissionRepository interface {
	Create(ctx context.Context, record *entity.CommissionRecord) error
	GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.CommissionRecord, error)
	List(ctx context.Context, userID uuid.UUID, params *CommissionFilterParams) ([]entity.CommissionRecord, int64, error)
}

// CommissionFilterParams contains filtering parameters for commission queries
type CommissionFilterParams struct {
	Pagination  *pagination.PaginationParams
	PeriodMonth *int
	PeriodYear  *int
}
