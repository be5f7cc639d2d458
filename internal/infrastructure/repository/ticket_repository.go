package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kayatek/servis-api/internal/domain/entity"
	"github.com/kayatek/servis-api/internal/domain/enum"
	domainRepo "github.com/kayatek/servis-api/internal/domain/repository"
)

type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new service ticket repository
func NewTicketRepository(db *gorm.DB) domainRepo.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.ServiceTicket) error {
	return dbFrom(ctx, r.db).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceTicket, error) {
	var ticket entity.ServiceTicket
	err := dbFrom(ctx, r.db).
		Preload("Customer").
		First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) GetWithItems(ctx context.Context, id uuid.UUID) (*entity.ServiceTicket, error) {
	var ticket entity.ServiceTicket
	err := dbFrom(ctx, r.db).
		Preload("Customer").
		Preload("Items").
		First(&ticket, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ticket, err
}

func (r *ticketRepository) Update(ctx context.Context, ticket *entity.ServiceTicket) error {
	return dbFrom(ctx, r.db).Save(ticket).Error
}

func (r *ticketRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.ServiceTicket{}, "id = ?", id).Error
}

func (r *ticketRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.TicketFilterParams) ([]entity.ServiceTicket, int64, error) {
	var tickets []entity.ServiceTicket
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.ServiceTicket{})

	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("number ILIKE ? OR customer_name ILIKE ? OR product ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Customer").
		Order("created_at DESC").
		Find(&tickets).Error

	return tickets, total, err
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TicketStatus) error {
	return dbFrom(ctx, r.db).Model(&entity.ServiceTicket{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *ticketRepository) ListNumbers(ctx context.Context) ([]string, error) {
	var numbers []string
	err := dbFrom(ctx, r.db).Model(&entity.ServiceTicket{}).Unscoped().
		Pluck("number", &numbers).Error
	return numbers, err
}

type ticketItemRepository struct {
	db *gorm.DB
}

// NewTicketItemRepository creates a new ticket item repository
func NewTicketItemRepository(db *gorm.DB) domainRepo.TicketItemRepository {
	return &ticketItemRepository{db: db}
}

func (r *ticketItemRepository) CreateBatch(ctx context.Context, items []entity.TicketItem) error {
	return dbFrom(ctx, r.db).Create(&items).Error
}

func (r *ticketItemRepository) GetByTicketID(ctx context.Context, ticketID uuid.UUID) ([]entity.TicketItem, error) {
	var items []entity.TicketItem
	err := dbFrom(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&items).Error
	return items, err
}

func (r *ticketItemRepository) DeleteByTicketID(ctx context.Context, ticketID uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.TicketItem{}, "ticket_id = ?", ticketID).Error
}
