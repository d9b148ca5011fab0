package progression

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/apperror"
	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ProcessSingle(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	actorID := c.GetString("employee_id")
	id := c.Param("id")

	var req ProcessSingleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ProcessSingle(c.Request.Context(), tenantID, actorID, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ProcessBatch(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	actorID := c.GetString("employee_id")

	var req ProcessBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	summary, err := h.service.ProcessBatch(c.Request.Context(), tenantID, actorID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	// Partial failure is a success-shaped result; per-id outcomes live in
	// the summary.
	response.Success(c, http.StatusOK, summary, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	actorID := c.GetString("employee_id")
	id := c.Param("id")

	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	if err := h.service.Reject(c.Request.Context(), tenantID, actorID, id, req); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "rejected"}, nil)
}

func (h *Handler) ManualJump(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	actorID := c.GetString("employee_id")

	var req ManualJumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ManualJump(c.Request.Context(), tenantID, actorID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
