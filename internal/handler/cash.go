package handler

import (
	"net/http"
	"strconv"

	"saborpos/internal/apierror"
	"saborpos/internal/dto"
	"saborpos/internal/middleware"
	"saborpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CashHandler struct{ svc service.CashService }

func NewCashHandler(svc service.CashService) *CashHandler { return &CashHandler{svc: svc} }

// Open godoc
// @Summary Open a new cash session
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.OpenSessionRequest true "Opening data"
// @Success 201 {object} dto.SessionReportResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cash/open [post]
func (h *CashHandler) Open(c *gin.Context) {
	var req dto.OpenSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	operatorID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.Open(c.Request.Context(), operatorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RecordEntry godoc
// @Summary Record a manual income or expense entry
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CashEntryRequest true "Manual entry"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/cash/entries [post]
func (h *CashHandler) RecordEntry(c *gin.Context) {
	var req dto.CashEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.RecordEntry(c.Request.Context(), req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Report godoc
// @Summary Session report with recomputed totals
// @Tags cash
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session UUID"
// @Success 200 {object} dto.SessionReportResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/cash/{id}/report [get]
func (h *CashHandler) Report(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid ID"))
		return
	}
	resp, err := h.svc.Report(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClosePreview godoc
// @Summary Preview the closing variance without closing
// @Description Compares the counted amount against the expected drawer balance. Read-only.
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ClosePreviewRequest true "Counted amount"
// @Success 200 {object} dto.VarianceResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cash/close-preview [post]
func (h *CashHandler) ClosePreview(c *gin.Context) {
	var req dto.ClosePreviewRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.PreviewClose(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Close godoc
// @Summary Close the session and reconcile the drawer
// @Description Variance beyond the tolerance requires a justification.
// @Tags cash
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CloseSessionRequest true "Counted amount and optional justification"
// @Success 200 {object} dto.SessionReportResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cash/close [post]
func (h *CashHandler) Close(c *gin.Context) {
	var req dto.CloseSessionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Close(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Active returns the currently open cash session for the authenticated operator.
func (h *CashHandler) Active(c *gin.Context) {
	claims := middleware.GetClaims(c)
	operatorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid user ID"))
		return
	}
	resp, err := h.svc.Active(c.Request.Context(), operatorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("No active session"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// History returns a paginated list of closed cash sessions.
func (h *CashHandler) History(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	reports, total, err := h.svc.History(c.Request.Context(), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reports, "total": total, "page": page, "limit": limit})
}
