package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/internal/domain/enum"
	"github.com/kayatek/servis-api/pkg/pagination"
)

// TicketRepository defines the interface for service ticket data operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.ServiceTicket) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceTicket, error)
	GetWithItems(ctx context.Context, id uuid.UUID) (*entity.ServiceTicket, error)
	Update(ctx context.Context, ticket *entity.ServiceTicket) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID, params *TicketFilterParams) ([]entity.ServiceTicket, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TicketStatus) error
	// ListNumbers returns every existing ticket number, including soft-deleted
	// tickets, so the max-suffix numbering stays gap-tolerant.
	ListNumbers(ctx context.Context) ([]string, error)
}

// TicketFilterParams contains filtering parameters for ticket queries
type TicketFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.TicketStatus
	CustomerID *uuid.UUID
}

// TicketItemRepository defines the interface for ticket item data operations
type TicketItemRepository interface {
	CreateBatch(ctx context.Context, items []entity.TicketItem) error
	GetByTicketID(ctx context.Context, ticketID uuid.UUID) ([]entity.TicketItem, error)
	DeleteByTicketID(ctx context.Context, ticketID uuid.UUID) error
}
