package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kayatek/servis-api/internal/domain/enum"
)

// Quote represents a priced, not-yet-binding proposal sent to a customer.
// A quote always carries at least one line; its status only moves forward.
type Quote struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID    *uuid.UUID       `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Number        string           `gorm:"size:50;unique;not null" json:"number"`
	CustomerName  string           `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail string           `gorm:"size:255" json:"customer_email"`
	Currency      string           `gorm:"size:3;not null;default:TRY" json:"currency"`
	PaymentTerm   string           `gorm:"size:100" json:"payment_term"` // free text, e.g. "30 gün" or "Peşin"
	Status        enum.QuoteStatus `gorm:"default:0" json:"status"`
	Note          *string          `gorm:"type:text" json:"note,omitempty"`

	// Grand-total-override mode: when set, the pre-agreed total (and optional
	// flat discount) replaces line-by-line computation for the subtotal.
	OverrideTotal       *decimal.Decimal `gorm:"type:decimal(15,2)" json:"override_total,omitempty"`
	OverrideDiscountPct *decimal.Decimal `gorm:"type:decimal(5,2)" json:"override_discount_pct,omitempty"`

	SentAt     *time.Time `json:"sent_at,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	SaleID     *uuid.UUID `gorm:"type:uuid;index" json:"sale_id,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User        `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Sale     *Sale       `gorm:"foreignKey:SaleID" json:"sale,omitempty"`
	Lines    []QuoteLine `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// QuoteLine is a single detailed-mode line on a quote.
type QuoteLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"quote_id"`
	ProductName string          `gorm:"size:255;not null" json:"product_name"` // free-text product reference
	Quantity    int             `gorm:"not null" json:"quantity"`
	ListPrice   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"list_price"`
	DiscountPct decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0" json:"discount_pct"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Quote Quote `gorm:"foreignKey:QuoteID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new quote line
func (l *QuoteLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the QuoteLine model
func (QuoteLine) TableName() string {
	return "quote_lines"
}
