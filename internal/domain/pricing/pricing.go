package pricing

import (
	"github.com/samber/lo"

	"github.com/healthplus/medipos-api/internal/domain/entity"
)

// Totals holds the computed amounts for an invoice.
// All values carry full float64 precision; rounding to two decimals
// happens only when a value is rendered.
type Totals struct {
	Subtotal      float64 `json:"subtotal"`
	TaxableAmount float64 `json:"taxable_amount"`
	TaxAmount     float64 `json:"tax_amount"`
	GrandTotal    float64 `json:"grand_total"`
}

// LineTotal computes the total for a single line item:
// quantity x unit price, reduced by the per-item discount percent.
// A discount of 100 yields exactly 0.
func LineTotal(quantity int, unitPrice, discountPercent float64) float64 {
	return float64(quantity) * unitPrice * (1 - discountPercent/100)
}

// ComputeTotals aggregates line items into invoice totals.
//
// The global discount applies to the subtotal before tax, and tax is
// computed on the discounted (taxable) amount: discount-then-tax,
// never tax-then-discount.
func ComputeTotals(items []entity.InvoiceItem, globalDiscountPercent, taxRate float64) Totals {
	subtotal := lo.SumBy(items, func(item entity.InvoiceItem) float64 {
		return LineTotal(item.Quantity, item.UnitPrice, item.DiscountPercent)
	})

	taxableAmount := subtotal * (1 - globalDiscountPercent/100)
	taxAmount := taxableAmount * taxRate

	return Totals{
		Subtotal:      subtotal,
		TaxableAmount: taxableAmount,
		TaxAmount:     taxAmount,
		GrandTotal:    taxableAmount + taxAmount,
	}
}

// DiscountAmount returns the money value of the global discount, used
// for the discount line on receipts.
func DiscountAmount(subtotal, globalDiscountPercent float64) float64 {
	return subtotal * globalDiscountPercent / 100
}
