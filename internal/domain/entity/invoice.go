package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice represents a finalized sale. Invoices are append-only
// history: once created they are never updated or deleted.
type Invoice struct {
	ID                    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceNo             string    `gorm:"size:100;unique;not null" json:"invoice_no"`
	InvoiceDate           time.Time `gorm:"not null" json:"invoice_date"`
	CustomerName          string    `gorm:"size:255" json:"customer_name,omitempty"`
	CustomerPhone         string    `gorm:"size:50" json:"customer_phone,omitempty"`
	Subtotal              float64   `gorm:"not null" json:"subtotal"`
	TaxRate               float64   `gorm:"not null" json:"tax_rate"`
	TaxAmount             float64   `gorm:"not null" json:"tax_amount"`
	GlobalDiscountPercent float64   `gorm:"default:0" json:"global_discount_percent"`
	GrandTotal            float64   `gorm:"not null" json:"grand_total"`
	CreatedAt             time.Time `json:"created_at"`

	// Relationships
	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// InvoiceItem represents a line item on an invoice. Only the raw sale
// fields are stored; line totals are recomputed from them wherever they
// are displayed so stored and rendered arithmetic cannot drift apart.
type InvoiceItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID       uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	MedicineName    string    `gorm:"size:255;not null" json:"medicine_name"`
	BatchNumber     string    `gorm:"size:100" json:"batch_number,omitempty"`
	ExpiryDate      string    `gorm:"size:50" json:"expiry_date,omitempty"`
	Quantity        int       `gorm:"not null" json:"quantity"`
	UnitPrice       float64   `gorm:"not null" json:"unit_price"`
	DiscountPercent float64   `gorm:"default:0" json:"discount_percent"`
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}
