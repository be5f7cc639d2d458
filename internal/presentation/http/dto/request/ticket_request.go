package request

// CreateTicketRequest represents the create ticket request body
type CreateTicketRequest struct {
	CustomerID        *string             `json:"customer_id"`
	CustomerName      string              `json:"customer_name" binding:"max=255"`
	Product           string              `json:"product" binding:"max=255"`
	Notes             string              `json:"notes"`
	AgreedTotal       *string             `json:"agreed_total"`
	AgreedDiscountPct *string             `json:"agreed_discount_pct"`
	Items             []TicketItemRequest `json:"items" binding:"omitempty,dive"`
}

// TicketItemRequest represents a part or service recorded on a ticket
type TicketItemRequest struct {
	Kind        string  `json:"kind" binding:"required,oneof=part service"`
	Name        string  `json:"name" binding:"required,max=255"`
	Quantity    int     `json:"quantity" binding:"omitempty,min=1"`
	Price       string  `json:"price" binding:"required"`
	ListPrice   *string `json:"list_price"`
	DiscountPct *string `json:"discount_pct"`
}

// UpdateTicketRequest represents the update ticket request body
type UpdateTicketRequest struct {
	CustomerName      *string             `json:"customer_name" binding:"omitempty,max=255"`
	Product           *string             `json:"product" binding:"omitempty,max=255"`
	Notes             *string             `json:"notes"`
	AgreedTotal       *string             `json:"agreed_total"`
	AgreedDiscountPct *string             `json:"agreed_discount_pct"`
	Items             []TicketItemRequest `json:"items" binding:"omitempty,dive"`
}

// SetTicketStatusRequest represents the status change request body
type SetTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SendBulkQuoteRequest represents the bulk quote request body
type SendBulkQuoteRequest struct {
	TicketIDs    []string `json:"ticket_ids" binding:"required,min=1"`
	Recipient    string   `json:"recipient" binding:"required,email"`
	CC           []string `json:"cc" binding:"omitempty,dive,email"`
	CustomerName string   `json:"customer_name" binding:"max=255"`
	Currency     string   `json:"currency" binding:"omitempty,oneof=TRY USD EUR"`
	PaymentTerm  string   `json:"payment_term" binding:"max=100"`
}
