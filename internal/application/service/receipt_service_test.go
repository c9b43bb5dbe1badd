package service

import (
	"strings"
	"testing"
	"time"

	"github.com/healthplus/medipos-api/internal/config"
	"github.com/healthplus/medipos-api/internal/domain/entity"
	"github.com/healthplus/medipos-api/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReceiptService(t *testing.T) *ReceiptService {
	t.Helper()
	return NewReceiptService(
		printer.NewNullPrinter(),
		new(mockInvoiceRepository),
		config.StoreProfile{
			Name:       "HEALTH PLUS PHARMACY",
			Descriptor: "Medical Store",
			Address:    "670, East Jatrabari, Dhaka",
			Phone:      "+88-01915824432",
		},
		config.StorageConfig{ReceiptPath: t.TempDir()},
		config.PrinterConfig{Type: "none", Width: 32},
	)
}

func sampleInvoice() *entity.Invoice {
	return &entity.Invoice{
		InvoiceNo:    "INV-20260831143015",
		InvoiceDate:  time.Date(2026, 8, 31, 14, 30, 15, 0, time.UTC),
		CustomerName: "Rahim Uddin",
		Items: []entity.InvoiceItem{
			{MedicineName: "Napa 500mg", Quantity: 3, UnitPrice: 20, DiscountPercent: 10},
			{MedicineName: "Seclo 20mg", Quantity: 2, UnitPrice: 7},
		},
		Subtotal:              68.00,
		TaxRate:               0.05,
		TaxAmount:             3.06,
		GlobalDiscountPercent: 10,
		GrandTotal:            64.26,
	}
}

func TestBuildReceipt(t *testing.T) {
	svc := newTestReceiptService(t)

	r := svc.Build(sampleInvoice())

	assert.Equal(t, "HEALTH PLUS PHARMACY", r.Header.StoreName)
	assert.Equal(t, "INV-20260831143015", r.InvoiceNo)
	assert.Equal(t, "2026-08-31 14:30", r.Date)
	assert.Equal(t, "Rahim Uddin", r.Customer)

	// Line totals are recomputed from the raw sale fields
	require.Len(t, r.Items, 2)
	assert.InDelta(t, 54.00, r.Items[0].Total, 1e-9)
	assert.InDelta(t, 14.00, r.Items[1].Total, 1e-9)

	assert.InDelta(t, 6.80, r.DiscountAmount, 1e-9)
}

func TestFormatReceiptLayout(t *testing.T) {
	svc := newTestReceiptService(t)
	out := string(FormatReceipt(svc.Build(sampleInvoice()), 32))

	assert.Contains(t, out, "HEALTH PLUS PHARMACY")
	assert.Contains(t, out, "Medical Store")
	assert.Contains(t, out, "+88-01915824432")
	assert.Contains(t, out, "Inv:")
	assert.Contains(t, out, "INV-20260831143015")
	assert.Contains(t, out, "Cust:")
	assert.Contains(t, out, "Napa 500mg")
	assert.Contains(t, out, " 3 x 20.00")
	assert.Contains(t, out, "Subtotal:")
	assert.Contains(t, out, "68.00")
	assert.Contains(t, out, "Tax (5%):")
	assert.Contains(t, out, "Disc (10%):")
	assert.Contains(t, out, "-6.80")
	assert.Contains(t, out, "TOTAL:")
	assert.Contains(t, out, "64.26")
	assert.Contains(t, out, "Thank You!")
	assert.Contains(t, out, "Get Well Soon")
}

func TestFormatReceiptOmitsDiscountLineWhenZero(t *testing.T) {
	svc := newTestReceiptService(t)

	invoice := sampleInvoice()
	invoice.GlobalDiscountPercent = 0
	invoice.Subtotal = 68.00
	invoice.TaxAmount = 3.40
	invoice.GrandTotal = 71.40

	out := string(FormatReceipt(svc.Build(invoice), 32))
	assert.NotContains(t, out, "Disc (")
}

func TestFormatReceiptShortensLongNames(t *testing.T) {
	svc := newTestReceiptService(t)

	invoice := sampleInvoice()
	invoice.Items = []entity.InvoiceItem{
		{MedicineName: "Amoxicillin Trihydrate 500mg", Quantity: 1, UnitPrice: 8},
	}

	out := string(FormatReceipt(svc.Build(invoice), 32))
	assert.Contains(t, out, "Amoxicillin Trihy..")

	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(stripControl(line)), 32)
	}
}

// stripControl removes ESC/POS command bytes so line widths can be
// checked against the paper width.
func stripControl(line string) string {
	var b strings.Builder
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case printer.ESC:
			if i+1 < len(line) && line[i+1] == '@' {
				i++ // ESC @ carries no argument byte
			} else {
				i += 2
			}
		case printer.GS:
			i += 2
		default:
			b.WriteByte(line[i])
		}
	}
	return b.String()
}

func TestGetStatus(t *testing.T) {
	svc := newTestReceiptService(t)

	status := svc.GetStatus()
	assert.False(t, status.Configured)
	assert.Equal(t, "none", status.Type)
}

func TestPrintReceiptWithNullPrinter(t *testing.T) {
	svc := newTestReceiptService(t)

	r, err := svc.PrintReceipt(sampleInvoice())
	assert.NoError(t, err)
	assert.Equal(t, "INV-20260831143015", r.InvoiceNo)
}
