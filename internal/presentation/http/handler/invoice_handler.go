package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/healthplus/medipos-api/internal/application/service"
	"github.com/healthplus/medipos-api/internal/domain/entity"
	"github.com/healthplus/medipos-api/internal/domain/repository"
	"github.com/healthplus/medipos-api/internal/presentation/http/dto/request"
	"github.com/healthplus/medipos-api/internal/presentation/http/dto/response"
	"github.com/healthplus/medipos-api/pkg/pagination"
)

// InvoiceHandler handles invoice history HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoice history with search and date filters
func (h *InvoiceHandler) List(c *gin.Context) {
	var req request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
		Search: req.Search,
	}

	if req.StartDate != "" {
		if startDate, err := time.Parse("2006-01-02", req.StartDate); err == nil {
			params.StartDate = &startDate
		}
	}

	if req.EndDate != "" {
		if endDate, err := time.Parse("2006-01-02", req.EndDate); err == nil {
			params.EndDate = &endDate
		}
	}

	result, err := h.invoiceService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles fetching a single invoice. The path parameter is either
// the record UUID or the human-facing invoice number (INV-...), so
// receipts can be looked up from either identifier.
func (h *InvoiceHandler) Get(c *gin.Context) {
	ref := c.Param("id")

	var invoice *entity.Invoice
	var err error
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		invoice, err = h.invoiceService.GetByID(c.Request.Context(), id)
	} else {
		invoice, err = h.invoiceService.GetByInvoiceNo(c.Request.Context(), ref)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}
