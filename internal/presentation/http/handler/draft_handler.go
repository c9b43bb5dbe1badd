package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/healthplus/medipos-api/internal/application/service"
	"github.com/healthplus/medipos-api/internal/presentation/http/dto/request"
	"github.com/healthplus/medipos-api/internal/presentation/http/dto/response"
)

// DraftHandler handles the in-progress invoice draft HTTP requests
type DraftHandler struct {
	draftService *service.DraftService
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService *service.DraftService) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// Get returns the current draft with live totals
func (h *DraftHandler) Get(c *gin.Context) {
	response.OK(c, "Draft retrieved successfully", h.draftService.Current())
}

// AddItem appends a blank row to the draft
func (h *DraftHandler) AddItem(c *gin.Context) {
	response.Created(c, "Item added", h.draftService.AddItem())
}

// UpdateItem applies a typed per-field patch to one draft row
func (h *DraftHandler) UpdateItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	var req request.UpdateDraftItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.draftService.UpdateItem(id, &service.ItemPatch{
		MedicineName:    req.MedicineName,
		BatchNumber:     req.BatchNumber,
		ExpiryDate:      req.ExpiryDate,
		Quantity:        req.Quantity,
		UnitPrice:       req.UnitPrice,
		DiscountPercent: req.DiscountPercent,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item updated", draft)
}

// RemoveItem deletes a draft row (the last row is cleared, not removed)
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid item ID")
		return
	}

	draft, err := h.draftService.RemoveItem(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item removed", draft)
}

// SetCustomer updates the draft customer name and phone
func (h *DraftHandler) SetCustomer(c *gin.Context) {
	var req request.SetCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	response.OK(c, "Customer updated", h.draftService.SetCustomer(req.CustomerName, req.CustomerPhone))
}

// SetGlobalDiscount updates the whole-invoice discount percent
func (h *DraftHandler) SetGlobalDiscount(c *gin.Context) {
	var req request.SetGlobalDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	draft, err := h.draftService.SetGlobalDiscount(req.GlobalDiscountPercent)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Global discount updated", draft)
}

// Totals returns live totals for the draft
func (h *DraftHandler) Totals(c *gin.Context) {
	response.OK(c, "Totals computed", h.draftService.Totals())
}

// Reset clears the draft back to a single blank row
func (h *DraftHandler) Reset(c *gin.Context) {
	response.OK(c, "Draft reset", h.draftService.Reset())
}

// Save finalizes the draft into an invoice. Pass ?print=true to also
// send the receipt to the thermal printer.
func (h *DraftHandler) Save(c *gin.Context) {
	print := c.Query("print") == "true"

	invoice, err := h.draftService.Save(c.Request.Context(), print)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice saved successfully", invoice)
}
