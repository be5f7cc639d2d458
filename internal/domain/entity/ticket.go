package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/kayatek/servis-api/internal/domain/enum"
)

// ServiceTicket is a service-record workflow object, distinct from a quote,
// with its own status vocabulary. Tickets can be bundled into a bulk quote;
// a successful bulk-quote render sweeps the source tickets to
// AWAITING_APPROVAL.
type ServiceTicket struct {
	ID           uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"user_id"`
	CustomerID   *uuid.UUID        `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Number       string            `gorm:"size:50;unique;not null" json:"number"`
	Status       enum.TicketStatus `gorm:"size:30;not null;default:OPENED" json:"status"`
	CustomerName string            `gorm:"size:255" json:"customer_name"`
	Product      string            `gorm:"size:255" json:"product"`
	Notes        string            `gorm:"type:text" json:"notes"`

	// Grand-total-override mode for the whole ticket: a single pre-agreed
	// total (and optional flat discount) instead of per-item pricing.
	AgreedTotal       *decimal.Decimal `gorm:"type:decimal(15,2)" json:"agreed_total,omitempty"`
	AgreedDiscountPct *decimal.Decimal `gorm:"type:decimal(5,2)" json:"agreed_discount_pct,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	User     User         `gorm:"foreignKey:UserID" json:"-"`
	Customer *Customer    `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []TicketItem `gorm:"foreignKey:TicketID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new service ticket
func (t *ServiceTicket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceTicket model
func (ServiceTicket) TableName() string {
	return "service_tickets"
}

// Ticket item kinds
const (
	TicketItemPart    = "part"
	TicketItemService = "service"
)

// TicketItem is a changed part or performed service recorded on a ticket.
// Parts carry a quantity and optionally a list price + discount; services
// are priced flat.
type TicketItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TicketID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"ticket_id"`
	Kind        string           `gorm:"size:10;not null" json:"kind"` // part | service
	Name        string           `gorm:"size:255;not null" json:"name"`
	Quantity    int              `gorm:"not null;default:1" json:"quantity"`
	Price       decimal.Decimal  `gorm:"type:decimal(15,2);not null" json:"price"` // net/agreed unit price
	ListPrice   *decimal.Decimal `gorm:"type:decimal(15,2)" json:"list_price,omitempty"`
	DiscountPct *decimal.Decimal `gorm:"type:decimal(5,2)" json:"discount_pct,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Ticket ServiceTicket `gorm:"foreignKey:TicketID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new ticket item
func (i *TicketItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TicketItem model
func (TicketItem) TableName() string {
	return "ticket_items"
}
