package pricing

import (
	"testing"

	"github.com/healthplus/medipos-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name            string
		quantity        int
		unitPrice       float64
		discountPercent float64
		want            float64
	}{
		{
			name:      "no discount",
			quantity:  2,
			unitPrice: 50.00,
			want:      100.00,
		},
		{
			name:            "ten percent discount",
			quantity:        3,
			unitPrice:       20.00,
			discountPercent: 10,
			want:            54.00,
		},
		{
			name:            "full discount contributes exactly zero",
			quantity:        5,
			unitPrice:       12.50,
			discountPercent: 100,
			want:            0,
		},
		{
			name:      "single unit",
			quantity:  1,
			unitPrice: 9.99,
			want:      9.99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LineTotal(tt.quantity, tt.unitPrice, tt.discountPercent)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name           string
		items          []entity.InvoiceItem
		globalDiscount float64
		taxRate        float64
		wantSubtotal   float64
		wantTaxable    float64
		wantTax        float64
		wantGrandTotal float64
	}{
		{
			name: "single item, no discounts, 5% tax",
			items: []entity.InvoiceItem{
				{Quantity: 2, UnitPrice: 50.00},
			},
			taxRate:        0.05,
			wantSubtotal:   100.00,
			wantTaxable:    100.00,
			wantTax:        5.00,
			wantGrandTotal: 105.00,
		},
		{
			name: "item and global discounts stack, discount applied before tax",
			items: []entity.InvoiceItem{
				{Quantity: 3, UnitPrice: 20.00, DiscountPercent: 10},
			},
			globalDiscount: 10,
			taxRate:        0.05,
			wantSubtotal:   54.00,
			wantTaxable:    48.60,
			wantTax:        2.43,
			wantGrandTotal: 51.03,
		},
		{
			name:           "zero items yields all zeros",
			items:          nil,
			globalDiscount: 10,
			taxRate:        0.05,
		},
		{
			name: "100% global discount zeroes the taxable amount",
			items: []entity.InvoiceItem{
				{Quantity: 2, UnitPrice: 75.00},
			},
			globalDiscount: 100,
			taxRate:        0.05,
			wantSubtotal:   150.00,
		},
		{
			name: "multiple items sum into the subtotal",
			items: []entity.InvoiceItem{
				{Quantity: 1, UnitPrice: 10.00},
				{Quantity: 4, UnitPrice: 2.50},
				{Quantity: 2, UnitPrice: 30.00, DiscountPercent: 50},
			},
			taxRate:        0.05,
			wantSubtotal:   50.00,
			wantTaxable:    50.00,
			wantTax:        2.50,
			wantGrandTotal: 52.50,
		},
		{
			name: "zero tax rate",
			items: []entity.InvoiceItem{
				{Quantity: 1, UnitPrice: 40.00},
			},
			globalDiscount: 25,
			wantSubtotal:   40.00,
			wantTaxable:    30.00,
			wantGrandTotal: 30.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, tt.globalDiscount, tt.taxRate)
			assert.InDelta(t, tt.wantSubtotal, got.Subtotal, 1e-9)
			assert.InDelta(t, tt.wantTaxable, got.TaxableAmount, 1e-9)
			assert.InDelta(t, tt.wantTax, got.TaxAmount, 1e-9)
			assert.InDelta(t, tt.wantGrandTotal, got.GrandTotal, 1e-9)
		})
	}
}

func TestComputeTotalsMatchesLineTotals(t *testing.T) {
	items := []entity.InvoiceItem{
		{Quantity: 2, UnitPrice: 19.99, DiscountPercent: 5},
		{Quantity: 7, UnitPrice: 3.15},
		{Quantity: 1, UnitPrice: 120.00, DiscountPercent: 12.5},
	}

	var sum float64
	for _, it := range items {
		sum += LineTotal(it.Quantity, it.UnitPrice, it.DiscountPercent)
	}

	got := ComputeTotals(items, 0, 0.05)
	assert.InDelta(t, sum, got.Subtotal, 1e-9)
	assert.InDelta(t, got.TaxableAmount+got.TaxAmount, got.GrandTotal, 1e-9)
}

func TestComputeTotalsIsPure(t *testing.T) {
	items := []entity.InvoiceItem{
		{Quantity: 3, UnitPrice: 20.00, DiscountPercent: 10},
	}

	first := ComputeTotals(items, 10, 0.05)
	second := ComputeTotals(items, 10, 0.05)
	assert.Equal(t, first, second)
}

func TestDiscountAmount(t *testing.T) {
	assert.InDelta(t, 5.40, DiscountAmount(54.00, 10), 1e-9)
	assert.InDelta(t, 0, DiscountAmount(54.00, 0), 1e-9)
	assert.InDelta(t, 54.00, DiscountAmount(54.00, 100), 1e-9)
}
