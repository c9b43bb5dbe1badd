package service

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/healthplus/medipos-api/internal/domain/entity"
	"github.com/healthplus/medipos-api/internal/domain/pricing"
	"github.com/healthplus/medipos-api/pkg/apperror"
	"github.com/samber/lo"
)

// DraftItem is one editable row on the in-progress invoice.
type DraftItem struct {
	ID              uuid.UUID `json:"id"`
	MedicineName    string    `json:"medicine_name"`
	BatchNumber     string    `json:"batch_number"`
	ExpiryDate      string    `json:"expiry_date"`
	Quantity        int       `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	DiscountPercent float64   `json:"discount_percent"`
}

// ItemPatch is a closed, per-field typed update for a draft item. Only
// non-nil fields are applied, so a patch can change any subset of the
// row without free-form values.
type ItemPatch struct {
	MedicineName    *string  `json:"medicine_name,omitempty"`
	BatchNumber     *string  `json:"batch_number,omitempty"`
	ExpiryDate      *string  `json:"expiry_date,omitempty"`
	Quantity        *int     `json:"quantity,omitempty"`
	UnitPrice       *float64 `json:"unit_price,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
}

// Draft is a snapshot of the in-progress invoice returned to callers.
type Draft struct {
	CustomerName          string         `json:"customer_name"`
	CustomerPhone         string         `json:"customer_phone"`
	Items                 []DraftItem    `json:"items"`
	GlobalDiscountPercent float64        `json:"global_discount_percent"`
	TaxRate               float64        `json:"tax_rate"`
	Totals                pricing.Totals `json:"totals"`
}

// DraftService owns the single in-progress invoice of the register.
// The tool is single-actor by design, but requests arrive over HTTP,
// so every operation is guarded by a mutex.
type DraftService struct {
	mu sync.Mutex

	customerName          string
	customerPhone         string
	items                 []DraftItem
	globalDiscountPercent float64

	invoiceSvc *InvoiceService
	receiptSvc *ReceiptService
}

// NewDraftService creates a draft service with one blank row ready for
// entry, matching how the register starts a new sale.
func NewDraftService(invoiceSvc *InvoiceService, receiptSvc *ReceiptService) *DraftService {
	s := &DraftService{
		invoiceSvc: invoiceSvc,
		receiptSvc: receiptSvc,
	}
	s.items = []DraftItem{blankItem()}
	return s
}

func blankItem() DraftItem {
	return DraftItem{
		ID:       uuid.New(),
		Quantity: 1,
	}
}

// Current returns a snapshot of the draft with live totals.
func (s *DraftService) Current() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// AddItem appends a blank row and returns the updated draft.
func (s *DraftService) AddItem() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, blankItem())
	return s.snapshot()
}

// UpdateItem applies a typed patch to one row.
func (s *DraftService) UpdateItem(id uuid.UUID, patch *ItemPatch) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, found := lo.FindIndexOf(s.items, func(it DraftItem) bool { return it.ID == id })
	if !found {
		return nil, apperror.NewNotFoundError("Draft item")
	}

	item := &s.items[idx]
	if patch.MedicineName != nil {
		item.MedicineName = *patch.MedicineName
	}
	if patch.BatchNumber != nil {
		item.BatchNumber = *patch.BatchNumber
	}
	if patch.ExpiryDate != nil {
		item.ExpiryDate = *patch.ExpiryDate
	}
	if patch.Quantity != nil {
		item.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		item.UnitPrice = *patch.UnitPrice
	}
	if patch.DiscountPercent != nil {
		item.DiscountPercent = *patch.DiscountPercent
	}

	return s.snapshot(), nil
}

// RemoveItem deletes a row. The last remaining row is cleared instead
// of removed, so a draft always has at least one row to type into.
func (s *DraftService) RemoveItem(id uuid.UUID) (*Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, idx, found := lo.FindIndexOf(s.items, func(it DraftItem) bool { return it.ID == id })
	if !found {
		return nil, apperror.NewNotFoundError("Draft item")
	}

	if len(s.items) > 1 {
		s.items = append(s.items[:idx], s.items[idx+1:]...)
	} else {
		cleared := blankItem()
		cleared.ID = s.items[0].ID
		s.items[0] = cleared
	}

	return s.snapshot(), nil
}

// SetCustomer updates the customer name and phone on the draft.
func (s *DraftService) SetCustomer(name, phone string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.customerName = name
	s.customerPhone = phone
	return s.snapshot()
}

// SetGlobalDiscount updates the whole-invoice discount percent.
func (s *DraftService) SetGlobalDiscount(percent float64) (*Draft, error) {
	if percent < 0 || percent > 100 {
		return nil, apperror.NewBadRequestError("Global discount must be between 0 and 100")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.globalDiscountPercent = percent
	return s.snapshot(), nil
}

// Totals computes live totals for the draft.
func (s *DraftService) Totals() pricing.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.computeTotals()
}

// Reset clears the draft back to a single blank row.
func (s *DraftService) Reset() *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reset()
	return s.snapshot()
}

// MedicineNames returns the non-empty medicine names on the draft, for
// the interaction advisory.
func (s *DraftService) MedicineNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := lo.FilterMap(s.items, func(it DraftItem, _ int) (string, bool) {
		return it.MedicineName, it.MedicineName != ""
	})
	return names
}

// Save finalizes the draft: validate, compute totals, persist, then
// reset the register for the next sale. When print is requested the
// receipt is rendered only after the invoice record exists. A PDF
// artifact is exported either way; render failures are logged, never
// unwound, since the invoice is already part of history and can be
// reprinted.
func (s *DraftService) Save(ctx context.Context, print bool) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	input := &CreateInvoiceInput{
		CustomerName:          s.customerName,
		CustomerPhone:         s.customerPhone,
		GlobalDiscountPercent: s.globalDiscountPercent,
		Items: lo.Map(s.items, func(it DraftItem, _ int) InvoiceItemInput {
			return InvoiceItemInput{
				MedicineName:    it.MedicineName,
				BatchNumber:     it.BatchNumber,
				ExpiryDate:      it.ExpiryDate,
				Quantity:        it.Quantity,
				UnitPrice:       it.UnitPrice,
				DiscountPercent: it.DiscountPercent,
			}
		}),
	}

	invoice, err := s.invoiceSvc.Create(ctx, input)
	if err != nil {
		return nil, err
	}

	s.reset()

	if _, _, err := s.receiptSvc.ExportReceiptPDF(invoice); err != nil {
		log.Printf("Receipt export error (invoice %s): %v", invoice.InvoiceNo, err)
	}
	if print {
		if _, err := s.receiptSvc.PrintReceipt(invoice); err != nil {
			log.Printf("Printer error (invoice %s): %v", invoice.InvoiceNo, err)
		}
	}

	return invoice, nil
}

func (s *DraftService) reset() {
	s.customerName = ""
	s.customerPhone = ""
	s.globalDiscountPercent = 0
	s.items = []DraftItem{blankItem()}
}

func (s *DraftService) computeTotals() pricing.Totals {
	items := lo.Map(s.items, func(it DraftItem, _ int) entity.InvoiceItem {
		return entity.InvoiceItem{
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
			DiscountPercent: it.DiscountPercent,
		}
	})
	return pricing.ComputeTotals(items, s.globalDiscountPercent, s.invoiceSvc.taxRate)
}

func (s *DraftService) snapshot() *Draft {
	items := make([]DraftItem, len(s.items))
	copy(items, s.items)

	return &Draft{
		CustomerName:          s.customerName,
		CustomerPhone:         s.customerPhone,
		Items:                 items,
		GlobalDiscountPercent: s.globalDiscountPercent,
		TaxRate:               s.invoiceSvc.taxRate,
		Totals:                s.computeTotals(),
	}
}
