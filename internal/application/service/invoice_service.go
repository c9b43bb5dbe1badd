package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/healthplus/medipos-api/internal/domain/entity"
	"github.com/healthplus/medipos-api/internal/domain/pricing"
	"github.com/healthplus/medipos-api/internal/domain/repository"
	"github.com/healthplus/medipos-api/pkg/apperror"
	"github.com/healthplus/medipos-api/pkg/pagination"
)

// InvoiceService handles invoice finalization and history lookups.
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	taxRate     float64
	now         func() time.Time
}

// NewInvoiceService creates a new invoice service. taxRate is the flat
// rate applied to every invoice, e.g. 0.05.
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, taxRate float64) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		taxRate:     taxRate,
		now:         time.Now,
	}
}

// InvoiceItemInput represents a line item on an invoice to be created
type InvoiceItemInput struct {
	MedicineName    string
	BatchNumber     string
	ExpiryDate      string
	Quantity        int
	UnitPrice       float64
	DiscountPercent float64
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	CustomerName          string
	CustomerPhone         string
	GlobalDiscountPercent float64
	Items                 []InvoiceItemInput
}

// Create validates the input, computes totals, and appends a new
// invoice to history. Nothing is persisted when validation fails.
func (s *InvoiceService) Create(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if err := validateInvoiceInput(input); err != nil {
		return nil, err
	}

	savedAt := s.now()

	items := make([]entity.InvoiceItem, 0, len(input.Items))
	for _, in := range input.Items {
		items = append(items, entity.InvoiceItem{
			MedicineName:    in.MedicineName,
			BatchNumber:     in.BatchNumber,
			ExpiryDate:      in.ExpiryDate,
			Quantity:        in.Quantity,
			UnitPrice:       in.UnitPrice,
			DiscountPercent: in.DiscountPercent,
		})
	}

	totals := pricing.ComputeTotals(items, input.GlobalDiscountPercent, s.taxRate)

	invoice := &entity.Invoice{
		InvoiceNo:             GenerateInvoiceNo(savedAt),
		InvoiceDate:           savedAt,
		CustomerName:          input.CustomerName,
		CustomerPhone:         input.CustomerPhone,
		Items:                 items,
		Subtotal:              totals.Subtotal,
		TaxRate:               s.taxRate,
		TaxAmount:             totals.TaxAmount,
		GlobalDiscountPercent: input.GlobalDiscountPercent,
		GrandTotal:            totals.GrandTotal,
	}

	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	return invoice, nil
}

// List returns invoice history, newest first, with optional search and
// date range filters.
func (s *InvoiceService) List(ctx context.Context, params *repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	return pagination.NewPaginatedResult(
		invoices,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total),
	), nil
}

// GetByID fetches one invoice with its items.
func (s *InvoiceService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GetByInvoiceNo fetches one invoice by its invoice number.
func (s *InvoiceService) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByInvoiceNo(ctx, invoiceNo)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// GenerateInvoiceNo derives the invoice number from the save
// timestamp, e.g. INV-20260831143015.
func GenerateInvoiceNo(t time.Time) string {
	return "INV-" + t.Format("20060102150405")
}

// validateInvoiceInput enforces the finalization rules: at least one
// item, every item named and priced above zero, quantities of one or
// more, and discounts within 0-100.
func validateInvoiceInput(input *CreateInvoiceInput) error {
	var fieldErrors []apperror.FieldError

	if len(input.Items) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "items",
			Message: "Invoice must contain at least one item",
		})
	}

	if input.GlobalDiscountPercent < 0 || input.GlobalDiscountPercent > 100 {
		fieldErrors = append(fieldErrors, apperror.FieldError{
			Field:   "global_discount_percent",
			Message: "Global discount must be between 0 and 100",
		})
	}

	for i, item := range input.Items {
		if item.MedicineName == "" {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].medicine_name", i),
				Message: "Medicine name is required",
			})
		}
		if item.UnitPrice <= 0 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].unit_price", i),
				Message: "Unit price must be greater than zero",
			})
		}
		if item.Quantity < 1 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "Quantity must be at least 1",
			})
		}
		if item.DiscountPercent < 0 || item.DiscountPercent > 100 {
			fieldErrors = append(fieldErrors, apperror.FieldError{
				Field:   fmt.Sprintf("items[%d].discount_percent", i),
				Message: "Discount must be between 0 and 100",
			})
		}
	}

	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}
