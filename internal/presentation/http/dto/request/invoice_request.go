package request

// UpdateDraftItemRequest represents a typed per-field update for one
// draft row. Only present fields are applied.
type UpdateDraftItemRequest struct {
	MedicineName    *string  `json:"medicine_name" binding:"omitempty,max=255"`
	BatchNumber     *string  `json:"batch_number" binding:"omitempty,max=100"`
	ExpiryDate      *string  `json:"expiry_date" binding:"omitempty,max=50"`
	Quantity        *int     `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice       *float64 `json:"unit_price" binding:"omitempty,min=0"`
	DiscountPercent *float64 `json:"discount_percent" binding:"omitempty,min=0,max=100"`
}

// SetCustomerRequest represents the draft customer update request
type SetCustomerRequest struct {
	CustomerName  string `json:"customer_name" binding:"omitempty,max=255"`
	CustomerPhone string `json:"customer_phone" binding:"omitempty,max=50"`
}

// SetGlobalDiscountRequest represents the draft global discount update request
type SetGlobalDiscountRequest struct {
	GlobalDiscountPercent float64 `json:"global_discount_percent" binding:"min=0,max=100"`
}

// CheckInteractionsRequest represents an explicit interaction check request
type CheckInteractionsRequest struct {
	MedicineNames []string `json:"medicine_names" binding:"required,min=1,dive,required"`
}

// InvoiceFilterRequest represents invoice history filter parameters
type InvoiceFilterRequest struct {
	Search    string `form:"search"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
}
