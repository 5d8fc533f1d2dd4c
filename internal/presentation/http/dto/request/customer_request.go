package request

// CreateCustomerRequest represents the create customer request payload
type CreateCustomerRequest struct {
	Name        string  `json:"name" binding:"required,min=2,max=200"`
	Type        string  `json:"type" binding:"omitempty,oneof=individual corporate"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone" binding:"omitempty,max=20"`
	Address     *string `json:"address"`
	City        *string `json:"city" binding:"omitempty,max=100"`
	TaxOffice   *string `json:"tax_office" binding:"omitempty,max=100"`
	TaxNumber   *string `json:"tax_number" binding:"omitempty,max=20"`
	CreditLimit float64 `json:"credit_limit" binding:"gte=0"`
	Note        *string `json:"note"`
}

// UpdateCustomerRequest represents the update customer request payload.
// Omitted fields are left unchanged.
type UpdateCustomerRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=200"`
	Type        *string  `json:"type" binding:"omitempty,oneof=individual corporate"`
	Email       *string  `json:"email" binding:"omitempty,email"`
	Phone       *string  `json:"phone" binding:"omitempty,max=20"`
	Address     *string  `json:"address"`
	City        *string  `json:"city" binding:"omitempty,max=100"`
	TaxOffice   *string  `json:"tax_office" binding:"omitempty,max=100"`
	TaxNumber   *string  `json:"tax_number" binding:"omitempty,max=20"`
	CreditLimit *float64 `json:"credit_limit" binding:"omitempty,gte=0"`
	Active      *bool    `json:"active"`
	Note        *string  `json:"note"`
}
