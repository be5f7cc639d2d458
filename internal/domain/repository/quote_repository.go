package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/internal/domain/enum"
	"github.com/kayatek/servis-api/pkg/pagination"
)

// QuoteRepository defines the interface for quote data operations
type QuoteRepository interface {
	Create(ctx context.Context, quote *entity.Quote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	Update(ctx context.Context, quote *entity.Quote) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	// CountByYear counts the quotes created in the given year. Called inside
	// the transaction that creates the numbered quote so the count-then-insert
	// sequence is serialized.
	CountByYear(ctx context.Context, year int) (int64, error)
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	CustomerID *uuid.UUID
}

// QuoteLineRepository defines the interface for quote line data operations
type QuoteLineRepository interface {
	CreateBatch(ctx context.Context, lines []entity.QuoteLine) error
	GetByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteLine, error)
	DeleteByQuoteID(ctx context.Context, quoteID uuid.UUID) error
}
