package entity

// ReceiptHeader holds the store profile printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName  string `json:"store_name"`
	Descriptor string `json:"descriptor,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
	TaxID      string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt. Total is
// recomputed at build time from quantity, unit price and discount.
type ReceiptItem struct {
	Name            string  `json:"name"`
	Quantity        int     `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	DiscountPercent float64 `json:"discount_percent"`
	Total           float64 `json:"total"`
}

// Receipt is a value object representing a printable receipt.
// It is NOT a database entity; it is composed from a finalized
// invoice and the store profile at print time.
type Receipt struct {
	Header                ReceiptHeader `json:"header"`
	InvoiceNo             string        `json:"invoice_no"`
	Date                  string        `json:"date"`
	Customer              string        `json:"customer,omitempty"`
	Items                 []ReceiptItem `json:"items"`
	Subtotal              float64       `json:"subtotal"`
	TaxRate               float64       `json:"tax_rate"`
	TaxAmount             float64       `json:"tax_amount"`
	GlobalDiscountPercent float64       `json:"global_discount_percent"`
	DiscountAmount        float64       `json:"discount_amount"`
	GrandTotal            float64       `json:"grand_total"`
}
