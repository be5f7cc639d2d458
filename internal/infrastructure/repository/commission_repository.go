package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kayatek/servis-api/internal/domain/entity"
	domainRepo "github.com/kayatek/servis-api/internal/domain/repository"
)

type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission repository
func NewCommissionRepository(db *gorm.DB) domainRepo.CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(ctx context.Context, record *entity.CommissionRecord) error {
	return dbFrom(ctx, r.db).Create(record).Error
}

func (r *commissionRepository) GetBySaleID(ctx context.Context, saleID uuid.UUID) (*entity.CommissionRecord, error) {
	var record entity.CommissionRecord
	err := dbFrom(ctx, r.db).First(&record, "sale_id = ?", saleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *commissionRepository) List(ctx context.Context, userID uuid.UUID, params *domainRepo.CommissionFilterParams) ([]entity.CommissionRecord, int64, error) {
	var records []entity.CommissionRecord
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.CommissionRecord{})

	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}

	if params.PeriodMonth != nil {
		query = query.Where("period_month = ?", *params.PeriodMonth)
	}

	if params.PeriodYear != nil {
		query = query.Where("period_year = ?", *params.PeriodYear)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("accrued_at DESC").
		Find(&records).Error

	return records, total, err
}
