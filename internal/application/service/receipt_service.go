package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/healthplus/medipos-api/internal/config"
	"github.com/healthplus/medipos-api/internal/domain/entity"
	"github.com/healthplus/medipos-api/internal/domain/pricing"
	"github.com/healthplus/medipos-api/internal/domain/repository"
	"github.com/healthplus/medipos-api/pkg/apperror"
	"github.com/healthplus/medipos-api/pkg/printer"
	"github.com/healthplus/medipos-api/pkg/receipt"
)

// ReceiptService turns finalized invoices into printable receipts:
// an ESC/POS job for the thermal printer and a PDF artifact named
// after the invoice number. Rendering is stateless; re-printing an
// invoice produces an equivalent document each time.
type ReceiptService struct {
	printer     printer.Printer
	invoiceRepo repository.InvoiceRepository
	store       config.StoreProfile
	receiptPath string
	printerType string
	width       int
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	p printer.Printer,
	invoiceRepo repository.InvoiceRepository,
	store config.StoreProfile,
	storageCfg config.StorageConfig,
	printerCfg config.PrinterConfig,
) *ReceiptService {
	return &ReceiptService{
		printer:     p,
		invoiceRepo: invoiceRepo,
		store:       store,
		receiptPath: storageCfg.ReceiptPath,
		printerType: printerCfg.Type,
		width:       printerCfg.Width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *ReceiptService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// Build composes a receipt value from a finalized invoice and the
// store profile. Line totals and the discount amount are recomputed
// from raw fields rather than read back from stored totals.
func (s *ReceiptService) Build(invoice *entity.Invoice) *entity.Receipt {
	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName:  s.store.Name,
			Descriptor: s.store.Descriptor,
			Address:    s.store.Address,
			Phone:      s.store.Phone,
			TaxID:      s.store.TaxID,
		},
		InvoiceNo:             invoice.InvoiceNo,
		Date:                  invoice.InvoiceDate.Format("2006-01-02 15:04"),
		Customer:              invoice.CustomerName,
		Subtotal:              invoice.Subtotal,
		TaxRate:               invoice.TaxRate,
		TaxAmount:             invoice.TaxAmount,
		GlobalDiscountPercent: invoice.GlobalDiscountPercent,
		DiscountAmount:        pricing.DiscountAmount(invoice.Subtotal, invoice.GlobalDiscountPercent),
		GrandTotal:            invoice.GrandTotal,
	}

	for _, item := range invoice.Items {
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:            item.MedicineName,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			Total:           pricing.LineTotal(item.Quantity, item.UnitPrice, item.DiscountPercent),
		})
	}

	return r
}

// PrintInvoice fetches an invoice and sends its receipt to the
// thermal printer.
func (s *ReceiptService) PrintInvoice(ctx context.Context, invoiceID uuid.UUID) (*entity.Receipt, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	return s.PrintReceipt(invoice)
}

// PrintReceipt renders an already-loaded invoice to the thermal printer.
func (s *ReceiptService) PrintReceipt(invoice *entity.Invoice) (*entity.Receipt, error) {
	r := s.Build(invoice)
	data := FormatReceipt(r, s.width)
	if err := s.printer.Print(data); err != nil {
		return r, fmt.Errorf("failed to print receipt %s: %w", invoice.InvoiceNo, err)
	}
	return r, nil
}

// ExportPDF fetches an invoice, renders its receipt as a 58mm PDF and
// writes it to the receipt directory as <invoiceNo>.pdf. It returns
// the written path and the PDF bytes.
func (s *ReceiptService) ExportPDF(ctx context.Context, invoiceID uuid.UUID) (string, []byte, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return "", nil, err
	}
	if invoice == nil {
		return "", nil, apperror.NewNotFoundError("Invoice")
	}

	return s.ExportReceiptPDF(invoice)
}

// ExportReceiptPDF renders an already-loaded invoice to a PDF artifact.
func (s *ReceiptService) ExportReceiptPDF(invoice *entity.Invoice) (string, []byte, error) {
	data, err := receipt.RenderPDF(s.Build(invoice))
	if err != nil {
		return "", nil, err
	}

	if err := os.MkdirAll(s.receiptPath, 0o755); err != nil {
		return "", nil, fmt.Errorf("failed to create receipt directory: %w", err)
	}

	path := filepath.Join(s.receiptPath, invoice.InvoiceNo+".pdf")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", nil, fmt.Errorf("failed to write receipt %s: %w", path, err)
	}

	return path, data, nil
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printing is disabled.
func (s *ReceiptService) TestPrint() (*entity.Receipt, error) {
	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName:  "PRINTER TEST",
			Descriptor: "Test Page",
			Phone:      "+88-00000000000",
		},
		InvoiceNo: "TEST-001",
		Date:      "Test Date",
		Items: []entity.ReceiptItem{
			{Name: "Test Item 1", Quantity: 1, UnitPrice: 10.00, Total: 10.00},
			{Name: "Test Item 2", Quantity: 2, UnitPrice: 5.00, Total: 10.00},
		},
		Subtotal:   20.00,
		TaxRate:    0.05,
		TaxAmount:  1.00,
		GrandTotal: 21.00,
	}

	data := FormatReceipt(r, s.width)
	if err := s.printer.Print(data); err != nil {
		return r, fmt.Errorf("test print failed: %w", err)
	}

	return r, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes for a thermal
// printer with the given character width (32 for 58mm paper).
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Descriptor != "" {
		doc.Text(r.Header.Descriptor)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft)

	// Invoice meta
	doc.KeyValue("Date:", r.Date).
		KeyValue("Inv:", r.InvoiceNo)

	if r.Customer != "" {
		doc.KeyValue("Cust:", r.Customer)
	}

	doc.Rule()

	// Column headers
	doc.SetBold(true).
		KeyValue("Item", "Total").
		SetBold(false)

	// Items: totals recomputed from the raw sale fields
	for _, item := range r.Items {
		total := pricing.LineTotal(item.Quantity, item.UnitPrice, item.DiscountPercent)
		doc.ItemLines(item.Name, item.Quantity, item.UnitPrice, total)
	}

	doc.Rule()

	// Totals
	doc.KeyValue("Subtotal:", fmt.Sprintf("%.2f", r.Subtotal))
	doc.KeyValue(fmt.Sprintf("Tax (%.0f%%):", r.TaxRate*100), fmt.Sprintf("%.2f", r.TaxAmount))
	if r.GlobalDiscountPercent > 0 {
		doc.KeyValue(fmt.Sprintf("Disc (%.0f%%):", r.GlobalDiscountPercent),
			fmt.Sprintf("-%.2f", r.DiscountAmount))
	}

	doc.SetBold(true).
		SetFontSize(printer.FontTall).
		KeyValue("TOTAL:", fmt.Sprintf("%.2f", r.GrandTotal)).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	doc.Rule()

	// Footer
	doc.SetAlign(printer.AlignCenter).
		Text("Thank You!").
		Text("Get Well Soon").
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
