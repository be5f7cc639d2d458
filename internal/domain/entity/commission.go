package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CommissionRecord is the one-time salesperson commission accrued when a
// sale completes. The unique index on SaleID enforces at most one record
// per sale at the database level; the settlement service guards the
// check-then-act with a row lock on the sale.
type CommissionRecord struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"sale_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	AccruedAt   time.Time       `gorm:"not null" json:"accrued_at"`
	PeriodMonth int             `gorm:"not null;index:idx_commission_period" json:"period_month"`
	PeriodYear  int             `gorm:"not null;index:idx_commission_period" json:"period_year"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"-"`
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new commission record
func (c *CommissionRecord) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CommissionRecord model
func (CommissionRecord) TableName() string {
	return "commission_records"
}
