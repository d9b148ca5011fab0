package eligibility

import (
	"net/http"
	"time"

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

// Evaluate triggers an on-demand evaluation pass for the tenant. The same
// code path runs on the worker's schedule.
func (h *Handler) Evaluate(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	summary, err := h.service.EvaluateTenant(c.Request.Context(), tenantID, time.Now().UTC())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, summary, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	status := c.Query("status")

	resp, err := h.service.GetAll(c.Request.Context(), tenantID, status)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	id := c.Param("id")

	resp, err := h.service.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	actorID := c.GetString("employee_id")
	id := c.Param("id")

	if actorID == "" {
		response.FromError(c, apperror.ErrUnauthorized)
		return
	}

	resp, err := h.service.Approve(c.Request.Context(), tenantID, actorID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
