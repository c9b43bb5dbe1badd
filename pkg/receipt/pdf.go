package receipt

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/healthplus/medipos-api/internal/domain/entity"
	"github.com/healthplus/medipos-api/pkg/printer"
)

// 58mm thermal paper geometry, in millimetres.
const (
	pageWidth    = 58.0
	margin       = 2.0
	bottomMargin = 5.0
)

// maxSizingRetries bounds the regrow loop when the height estimate is
// exceeded by content.
const maxSizingRetries = 3

// SizingError is returned when content still overflows the page after
// the height estimate has been regrown.
type SizingError struct {
	Estimated float64
	Used      float64
}

func (e *SizingError) Error() string {
	return fmt.Sprintf("receipt: content height %.1fmm exceeds page height %.1fmm", e.Used, e.Estimated)
}

// EstimateHeight returns the page height in mm for a receipt with the
// given item count. Monotonically increasing in the item count with
// fixed room for header, totals and footer.
func EstimateHeight(itemCount int) float64 {
	return 80 + float64(itemCount)*15
}

// RenderPDF renders a receipt into a 58mm-wide PDF document and
// returns the raw PDF bytes. Rendering the same receipt twice produces
// an equivalent document.
//
// Line totals are recomputed from each item's quantity, unit price and
// discount so the printed arithmetic cannot drift from the stored
// invoice fields.
func RenderPDF(r *entity.Receipt) ([]byte, error) {
	height := EstimateHeight(len(r.Items))

	var used float64
	for attempt := 0; attempt < maxSizingRetries; attempt++ {
		data, u, err := renderPage(r, height)
		if err != nil {
			return nil, err
		}
		used = u
		if used <= height-bottomMargin {
			return data, nil
		}
		// Content overflowed the estimate: regrow and re-render
		// rather than fail, this is a layout detail.
		height = used + 20
	}

	return nil, &SizingError{Estimated: height, Used: used}
}

// renderPage renders one fixed-width page of the given height and
// reports the final cursor position so the caller can detect overflow.
func renderPage(r *entity.Receipt, height float64) ([]byte, float64, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: height},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := 5.0

	centerText := func(text string, size float64, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Courier", style, size)
		x := (pageWidth - pdf.GetStringWidth(text)) / 2
		pdf.Text(x, y, text)
	}

	lineText := func(left, right string, size float64) {
		pdf.SetFont("Courier", "", size)
		pdf.Text(margin, y, left)
		pdf.Text(pageWidth-margin-pdf.GetStringWidth(right), y, right)
	}

	dashedRule := func() {
		pdf.SetDashPattern([]float64{1, 1}, 0)
		pdf.Line(margin, y, pageWidth-margin, y)
		pdf.SetDashPattern([]float64{}, 0)
	}

	// Header
	centerText(r.Header.StoreName, 10, true)
	y += 4
	centerText(r.Header.Descriptor, 7, false)
	y += 4
	centerText(r.Header.Phone, 7, false)
	y += 6

	// Meta
	pdf.SetFont("Courier", "", 7)
	pdf.Text(margin, y, fmt.Sprintf("Date: %s", r.Date))
	y += 3
	pdf.Text(margin, y, fmt.Sprintf("Inv: %s", r.InvoiceNo))
	y += 4
	if r.Customer != "" {
		pdf.Text(margin, y, fmt.Sprintf("Cust: %s", r.Customer))
		y += 4
	}

	dashedRule()
	y += 3

	// Column headers
	pdf.SetFont("Courier", "B", 8)
	pdf.Text(margin, y, "Item")
	pdf.Text(pageWidth-margin-pdf.GetStringWidth("Ttl"), y, "Ttl")
	y += 3

	// Items
	for _, item := range r.Items {
		pdf.SetFont("Courier", "", 8)
		pdf.Text(margin, y, printer.TruncateName(item.Name, printer.NameBudget))
		y += 3

		details := fmt.Sprintf(" %d x %.2f", item.Quantity, item.UnitPrice)
		lineText(details, fmt.Sprintf("%.2f", item.Total), 8)
		y += 4
	}

	y += 1
	dashedRule()
	y += 4

	// Totals
	lineText("Subtotal:", fmt.Sprintf("%.2f", r.Subtotal), 8)
	y += 4
	lineText(fmt.Sprintf("Tax (%.0f%%):", r.TaxRate*100), fmt.Sprintf("%.2f", r.TaxAmount), 8)
	y += 4
	if r.GlobalDiscountPercent > 0 {
		lineText(fmt.Sprintf("Disc (%.0f%%):", r.GlobalDiscountPercent),
			fmt.Sprintf("-%.2f", r.DiscountAmount), 8)
		y += 4
	}

	// Grand total
	pdf.SetFont("Courier", "B", 10)
	pdf.Text(margin, y, "TOTAL:")
	total := fmt.Sprintf("%.2f", r.GrandTotal)
	pdf.Text(pageWidth-margin-pdf.GetStringWidth(total), y, total)
	y += 6

	// Footer
	centerText("Thank You!", 9, false)
	y += 4
	centerText("Get Well Soon", 8, false)

	if pdf.Err() {
		return nil, y, fmt.Errorf("receipt: pdf rendering failed: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, y, fmt.Errorf("receipt: pdf output failed: %w", err)
	}
	return buf.Bytes(), y, nil
}
