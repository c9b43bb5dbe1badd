package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/healthplus/medipos-api/internal/application/service"
	"github.com/healthplus/medipos-api/internal/presentation/http/dto/request"
	"github.com/healthplus/medipos-api/internal/presentation/http/dto/response"
)

// AdvisoryHandler handles drug interaction advisory HTTP requests
type AdvisoryHandler struct {
	advisoryService *service.AdvisoryService
}

// NewAdvisoryHandler creates a new advisory handler
func NewAdvisoryHandler(advisoryService *service.AdvisoryService) *AdvisoryHandler {
	return &AdvisoryHandler{advisoryService: advisoryService}
}

// CheckDraft screens the medicines on the current draft. An
// unreachable advisory service is a degraded answer, not an error.
func (h *AdvisoryHandler) CheckDraft(c *gin.Context) {
	result := h.advisoryService.CheckDraft(c.Request.Context())
	response.OK(c, "Interaction check completed", result)
}

// Check screens an explicit list of medicine names
func (h *AdvisoryHandler) Check(c *gin.Context) {
	var req request.CheckInteractionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result := h.advisoryService.CheckNames(c.Request.Context(), req.MedicineNames)
	response.OK(c, "Interaction check completed", result)
}
