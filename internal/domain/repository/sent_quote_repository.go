package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/pkg/pagination"
)

// SentQuoteRepository defines the interface for the send-time archive.
// Archive records are append-only; there is no update or delete.
type SentQuoteRepository interface {
	Create(ctx context.Context, record *entity.SentQuote) error
	ListByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.SentQuote, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.SentQuote, int64, error)
}
