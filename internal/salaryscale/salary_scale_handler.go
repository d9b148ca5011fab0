package salaryscale

import (
	"net/http"
	"strconv"
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

func (h *Handler) Create(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	actorID := c.GetString("employee_id")

	var req CreateScaleVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), tenantID, actorID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	resp, err := h.service.GetAll(c.Request.Context(), tenantID)
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

func (h *Handler) Update(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	id := c.Param("id")

	var req UpdateScaleVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Activate(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	id := c.Param("id")

	resp, err := h.service.Activate(c.Request.Context(), tenantID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Archive(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	id := c.Param("id")

	resp, err := h.service.Archive(c.Request.Context(), tenantID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Duplicate(c *gin.Context) {
	tenantID := c.GetString("tenant_id")
	actorID := c.GetString("employee_id")
	id := c.Param("id")

	var req DuplicateScaleVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Duplicate(c.Request.Context(), tenantID, actorID, id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

// ResolveSalary answers ?rank_code=&step=&as_of= lookups, defaulting as_of
// to today.
func (h *Handler) ResolveSalary(c *gin.Context) {
	tenantID := c.GetString("tenant_id")

	rankCode := c.Query("rank_code")
	if rankCode == "" {
		response.FromError(c, apperror.RequiredField("Rank Code"))
		return
	}

	step, err := strconv.Atoi(c.Query("step"))
	if err != nil || step < 0 {
		response.FromError(c, apperror.InvalidField("Step"))
		return
	}

	asOf := time.Now().UTC()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.FromError(c, apperror.InvalidField("As Of"))
			return
		}
		asOf = parsed
	}

	resolved, err := h.service.ResolveSalary(c.Request.Context(), tenantID, rankCode, step, asOf)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ResolveSalaryResponse{
		RankCode:       rankCode,
		Step:           step,
		AsOf:           asOf.Format("2006-01-02"),
		Amount:         resolved.Amount,
		ScaleVersionID: resolved.ScaleVersionID.String(),
		ScaleCode:      resolved.ScaleCode,
	}, nil)
}
