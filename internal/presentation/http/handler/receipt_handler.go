package handler

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/healthplus/medipos-api/internal/application/service"
	"github.com/healthplus/medipos-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt printing and export HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// Print sends an invoice's receipt to the thermal printer
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	receipt, err := h.receiptService.PrintInvoice(c.Request.Context(), id)
	if err != nil {
		// The composed receipt is returned even on printer failure so
		// the client can fall back to on-screen display.
		if receipt != nil {
			response.Success(c, 200, "Printer unavailable, receipt returned for display", receipt)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", receipt)
}

// ExportPDF renders an invoice's receipt as a 58mm PDF and returns it
// as a download. The artifact is also written to the receipt directory.
func (h *ReceiptHandler) ExportPDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	path, data, err := h.receiptService.ExportPDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(path))
	c.Data(200, "application/pdf", data)
}

// Status returns printer connection status
func (h *ReceiptHandler) Status(c *gin.Context) {
	response.OK(c, "Printer status", h.receiptService.GetStatus())
}

// TestPrint sends a test page to the printer
func (h *ReceiptHandler) TestPrint(c *gin.Context) {
	receipt, err := h.receiptService.TestPrint()
	if err != nil {
		if receipt != nil {
			response.Success(c, 200, "Printer unavailable, test receipt returned for display", receipt)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Test page printed", receipt)
}
