package request

// ApplyPaymentRequest represents the apply payment request body
type ApplyPaymentRequest struct {
	Amount string `json:"amount" binding:"required"`
	PaidAt string `json:"paid_at"` // RFC 3339, defaults to now
}

// CreateCustomerRequest represents the create customer request body
type CreateCustomerRequest struct {
	Name    string  `json:"name" binding:"required,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}

// UpdateCustomerRequest represents the update customer request body
type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=255"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Phone   *string `json:"phone" binding:"omitempty,max=50"`
	Address *string `json:"address"`
}
