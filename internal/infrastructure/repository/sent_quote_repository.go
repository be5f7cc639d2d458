package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kayatek/servis-api/internal/domain/entity"
	domainRepo "github.com/kayatek/servis-api/internal/domain/repository"
	"github.com/kayatek/servis-api/pkg/pagination"
)

type sentQuoteRepository struct {
	db *gorm.DB
}

// NewSentQuoteRepository creates a new sent quote archive repository
func NewSentQuoteRepository(db *gorm.DB) domainRepo.SentQuoteRepository {
	return &sentQuoteRepository{db: db}
}

func (r *sentQuoteRepository) Create(ctx context.Context, record *entity.SentQuote) error {
	return dbFrom(ctx, r.db).Create(record).Error
}

func (r *sentQuoteRepository) ListByQuoteID(ctx context.Context, quoteID uuid.UUID) ([]entity.SentQuote, error) {
	var records []entity.SentQuote
	err := dbFrom(ctx, r.db).
		Where("quote_id = ?", quoteID).
		Order("sent_at DESC").
		Find(&records).Error
	return records, err
}

func (r *sentQuoteRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.SentQuote, int64, error) {
	var records []entity.SentQuote
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.SentQuote{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("sent_at DESC").
		Find(&records).Error

	return records, total, err
}
