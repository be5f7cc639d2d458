package request

// CreateQuoteRequest represents the create quote request body
type CreateQuoteRequest struct {
	CustomerID          *string            `json:"customer_id"`
	CustomerName        string             `json:"customer_name" binding:"required,max=255"`
	CustomerEmail       string             `json:"customer_email" binding:"omitempty,email"`
	Currency            string             `json:"currency" binding:"omitempty,oneof=TRY USD EUR"`
	PaymentTerm         string             `json:"payment_term" binding:"max=100"`
	Note                *string            `json:"note"`
	OverrideTotal       *string            `json:"override_total"`
	OverrideDiscountPct *string            `json:"override_discount_pct"`
	Lines               []QuoteLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// QuoteLineRequest represents a line item in the request
type QuoteLineRequest struct {
	ProductName string `json:"product_name" binding:"required,max=255"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
	ListPrice   string `json:"list_price" binding:"required"`
	DiscountPct string `json:"discount_pct"`
}

// UpdateQuoteRequest represents the update quote request body
type UpdateQuoteRequest struct {
	CustomerName        *string            `json:"customer_name" binding:"omitempty,max=255"`
	CustomerEmail       *string            `json:"customer_email" binding:"omitempty,email"`
	Currency            *string            `json:"currency" binding:"omitempty,oneof=TRY USD EUR"`
	PaymentTerm         *string            `json:"payment_term" binding:"omitempty,max=100"`
	Note                *string            `json:"note"`
	OverrideTotal       *string            `json:"override_total"`
	OverrideDiscountPct *string            `json:"override_discount_pct"`
	Lines               []QuoteLineRequest `json:"lines" binding:"omitempty,min=1,dive"`
}

// SendQuoteRequest represents the send quote request body
type SendQuoteRequest struct {
	Recipient string   `json:"recipient" binding:"omitempty,email"`
	CC        []string `json:"cc" binding:"omitempty,dive,email"`
}
