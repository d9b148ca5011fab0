package history

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	historyerrors "github.com/kaleab-kali/FPPMS-sub005/internal/history/errors"
	"github.com/kaleab-kali/FPPMS-sub005/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Timeline(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	employeeID := c.Param("employeeId")

	resp, err := h.service.Timeline(c.Request.Context(), tenantID, employeeID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// EventsInRange answers ?from=&to= queries, defaulting to the last year.
func (h *Handler) EventsInRange(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	to := time.Now().UTC()
	from := to.AddDate(-1, 0, 0)

	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.FromError(c, historyerrors.ErrInvalidDateFormat)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.FromError(c, historyerrors.ErrInvalidDateFormat)
			return
		}
		to = parsed
	}

	resp, err := h.service.EventsInRange(c.Request.Context(), tenantID, from, to)
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
