package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kayatek/servis-api/internal/domain/entity"
	domainRepo "github.com/kayatek/servis-api/internal/domain/repository"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	return dbFrom(ctx, r.db).Create(quote).Error
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := dbFrom(ctx, r.db).
		Preload("Customer").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := dbFrom(ctx, r.db).
		Preload("Customer").
		Preload("Lines").
		Preload("Sale").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	return dbFrom(ctx, r.db).Save(quote).Error
}

func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.Quote{}, "id = ?", id).Error
}

func (r *quoteRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Quote{})

	// A zero userID means an admin listing across all salespeople
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if params.Search != "" {
		query = query.Where("number ILIKE ? OR customer_name ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
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
		Find(&quotes).Error

	return quotes, total, err
}

func (r *quoteRepository) CountByYear(ctx context.Context, year int) (int64, error) {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	var count int64
	err := dbFrom(ctx, r.db).Model(&entity.Quote{}).Unscoped().
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&count).Error
	return count, err
}

type quoteLineRepository struct {
	db *gorm.DB
}

// NewQuoteLineRepository creates a new quote line repository
func NewQuoteLineRepository(db *gorm.DB) domainRepo.QuoteLineRepository {
	return &quoteLineRepository{db: db}
}

func (r *quoteLineRepository) CreateBatch(ctx context.Context, lines []entity.QuoteLine) error {
	return dbFrom(ctx, r.db).Create(&lines).Error
}

func (r *quoteLineRepository) GetByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.QuoteLine, error) {
	var lines []entity.QuoteLine
	err := dbFrom(ctx, r.db).
		Where("quote_id = ?", quoteID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, err
}

func (r *quoteLineRepository) DeleteByQuoteID(ctx context.Context, quoteID uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.QuoteLine{}, "quote_id = ?", quoteID).Error
}
