package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SentQuote is the immutable archive snapshot created each time a quote is
// sent: who received which document, when, and from whom. Rows are never
// updated after creation; they exist purely as an audit trail.
type SentQuote struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	QuoteID        uuid.UUID `gorm:"type:uuid;not null;index" json:"quote_id"`
	Recipient      string    `gorm:"size:255;not null" json:"recipient"`
	DocumentNumber string    `gorm:"size:50;not null" json:"document_number"`
	Filename       string    `gorm:"size:255;not null" json:"filename"`
	SentBy         uuid.UUID `gorm:"type:uuid;not null" json:"sent_by"`
	SentAt         time.Time `gorm:"not null" json:"sent_at"`

	CreatedAt time.Time `json:"created_at"`

	// Relationships
	Quote  Quote `gorm:"foreignKey:QuoteID" json:"-"`
	Sender User  `gorm:"foreignKey:SentBy" json:"-"`
}

// BeforeCreate generates a UUID before creating a new archive record
func (s *SentQuote) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SentQuote model
func (SentQuote) TableName() string {
	return "sent_quotes"
}
