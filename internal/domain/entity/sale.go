package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sale is the binding, numbered commitment created when a quote is approved.
// Amount is immutable once set; PaidAmount only ever grows; Completed flips
// exactly once, the instant PaidAmount covers Amount.
type Sale struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"` // responsible salesperson
	Number       string          `gorm:"size:50;unique;not null" json:"number"`
	CustomerName string          `gorm:"size:255;not null" json:"customer_name"`
	Currency     string          `gorm:"size:3;not null;default:TRY" json:"currency"`
	Date         time.Time       `gorm:"type:date;not null" json:"date"`
	DueDate      time.Time       `gorm:"type:date;not null" json:"due_date"`
	Amount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaidAmount   decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"paid_amount"`
	Completed    bool            `gorm:"not null;default:false" json:"completed"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID" json:"-"`
	Payments []Payment `gorm:"foreignKey:SaleID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// Payment records a single payment applied to a sale.
type Payment struct {
	ID     uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SaleID uuid.UUID       `gorm:"type:uuid;not null;index" json:"sale_id"`
	Amount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaidAt time.Time       `gorm:"not null" json:"paid_at"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Sale Sale `gorm:"foreignKey:SaleID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
