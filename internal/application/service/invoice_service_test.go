package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/healthplus/medipos-api/internal/domain/entity"
	"github.com/healthplus/medipos-api/internal/domain/repository"
	"github.com/healthplus/medipos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockInvoiceRepository struct {
	mock.Mock
}

func (m *mockInvoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *mockInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) GetByInvoiceNo(ctx context.Context, invoiceNo string) (*entity.Invoice, error) {
	args := m.Called(ctx, invoiceNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Invoice), args.Error(1)
}

func (m *mockInvoiceRepository) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Invoice), args.Get(1).(int64), args.Error(2)
}

func newTestInvoiceService(repo repository.InvoiceRepository, at time.Time) *InvoiceService {
	svc := NewInvoiceService(repo, 0.05)
	svc.now = func() time.Time { return at }
	return svc
}

func TestCreateInvoice(t *testing.T) {
	savedAt := time.Date(2026, 8, 31, 14, 30, 15, 0, time.UTC)

	repo := new(mockInvoiceRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := newTestInvoiceService(repo, savedAt)

	invoice, err := svc.Create(context.Background(), &CreateInvoiceInput{
		CustomerName:          "Walk-in",
		GlobalDiscountPercent: 10,
		Items: []InvoiceItemInput{
			{MedicineName: "Napa 500mg", Quantity: 3, UnitPrice: 20, DiscountPercent: 10},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "INV-20260831143015", invoice.InvoiceNo)
	assert.Equal(t, savedAt, invoice.InvoiceDate)
	assert.InDelta(t, 54.00, invoice.Subtotal, 1e-9)
	assert.InDelta(t, 2.43, invoice.TaxAmount, 1e-9)
	assert.InDelta(t, 51.03, invoice.GrandTotal, 1e-9)
	assert.Equal(t, 0.05, invoice.TaxRate)
	repo.AssertExpectations(t)
}

func TestCreateInvoiceValidation(t *testing.T) {
	tests := []struct {
		name      string
		input     *CreateInvoiceInput
		wantField string
	}{
		{
			name:      "no items",
			input:     &CreateInvoiceInput{},
			wantField: "items",
		},
		{
			name: "missing medicine name",
			input: &CreateInvoiceInput{
				Items: []InvoiceItemInput{
					{MedicineName: "", Quantity: 1, UnitPrice: 10},
				},
			},
			wantField: "items[0].medicine_name",
		},
		{
			name: "zero unit price",
			input: &CreateInvoiceInput{
				Items: []InvoiceItemInput{
					{MedicineName: "Napa 500mg", Quantity: 1, UnitPrice: 10},
					{MedicineName: "Seclo 20mg", Quantity: 1, UnitPrice: 0},
				},
			},
			wantField: "items[1].unit_price",
		},
		{
			name: "zero quantity",
			input: &CreateInvoiceInput{
				Items: []InvoiceItemInput{
					{MedicineName: "Napa 500mg", Quantity: 0, UnitPrice: 10},
				},
			},
			wantField: "items[0].quantity",
		},
		{
			name: "item discount out of range",
			input: &CreateInvoiceInput{
				Items: []InvoiceItemInput{
					{MedicineName: "Napa 500mg", Quantity: 1, UnitPrice: 10, DiscountPercent: 101},
				},
			},
			wantField: "items[0].discount_percent",
		},
		{
			name: "global discount out of range",
			input: &CreateInvoiceInput{
				GlobalDiscountPercent: -1,
				Items: []InvoiceItemInput{
					{MedicineName: "Napa 500mg", Quantity: 1, UnitPrice: 10},
				},
			},
			wantField: "global_discount_percent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mockInvoiceRepository)
			svc := newTestInvoiceService(repo, time.Now())

			invoice, err := svc.Create(context.Background(), tt.input)

			assert.Nil(t, invoice)
			assert.True(t, apperror.IsValidationError(err))

			appErr := apperror.GetAppError(err)
			fields := make([]string, 0, len(appErr.Errors))
			for _, fe := range appErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)

			repo.AssertNotCalled(t, "Create")
		})
	}
}

func TestGetByIDNotFound(t *testing.T) {
	id := uuid.New()

	repo := new(mockInvoiceRepository)
	repo.On("GetByID", mock.Anything, id).Return(nil, nil)

	svc := newTestInvoiceService(repo, time.Now())

	invoice, err := svc.GetByID(context.Background(), id)
	assert.Nil(t, invoice)

	appErr := apperror.GetAppError(err)
	assert.NotNil(t, appErr)
	assert.Equal(t, http.StatusNotFound, appErr.Code)
}

func TestGetByInvoiceNo(t *testing.T) {
	repo := new(mockInvoiceRepository)
	repo.On("GetByInvoiceNo", mock.Anything, "INV-20260831143015").
		Return(&entity.Invoice{InvoiceNo: "INV-20260831143015"}, nil)

	svc := newTestInvoiceService(repo, time.Now())

	invoice, err := svc.GetByInvoiceNo(context.Background(), "INV-20260831143015")
	assert.NoError(t, err)
	assert.Equal(t, "INV-20260831143015", invoice.InvoiceNo)
}

func TestListDefaultsPagination(t *testing.T) {
	repo := new(mockInvoiceRepository)
	repo.On("List", mock.Anything, mock.MatchedBy(func(params *repository.InvoiceFilterParams) bool {
		return params.Pagination != nil && params.Pagination.Page == 1 && params.Pagination.PerPage == 15
	})).Return([]entity.Invoice{{InvoiceNo: "INV-20260831143015"}}, int64(1), nil)

	svc := newTestInvoiceService(repo, time.Now())

	result, err := svc.List(context.Background(), &repository.InvoiceFilterParams{})
	assert.NoError(t, err)
	assert.Len(t, result.Items, 1)
	assert.Equal(t, int64(1), result.Pagination.Total)
	repo.AssertExpectations(t)
}

func TestGenerateInvoiceNo(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "INV-20260102030405", GenerateInvoiceNo(at))
}
