package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lumenportal/internal/errors"
	"lumenportal/internal/guard"
	"lumenportal/internal/service"
)

// AuditHandler exposes the audit viewer endpoints.
type AuditHandler struct {
	svc service.AuditService
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(svc service.AuditService) *AuditHandler {
	return &AuditHandler{svc: svc}
}

// ListRequest bounds the page size of the audit listings.
type ListRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=500"`
}

// ListEvents godoc
// @Summary List user-lifecycle audit events (ADMIN, COMPLIANCE)
// @Tags audit
// @Produce json
// @Param limit query int false "Max entries (default 100)"
// @Success 200 {object} service.AuditListResult
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /audit/events [get]
func (h *AuditHandler) ListEvents(c echo.Context) error {
	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.svc.ListEvents(c.Request().Context(), guard.TokenFromRequest(c), req.Limit)
	if !res.OK {
		return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res.Result))
	}
	return c.JSON(http.StatusOK, res)
}

// ListLogs godoc
// @Summary List generic error log entries (ADMIN)
// @Tags audit
// @Produce json
// @Param limit query int false "Max entries (default 100)"
// @Success 200 {object} service.LogListResult
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /audit/logs [get]
func (h *AuditHandler) ListLogs(c echo.Context) error {
	var req ListRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.svc.ListLogs(c.Request().Context(), guard.TokenFromRequest(c), req.Limit)
	if !res.OK {
		return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res.Result))
	}
	return c.JSON(http.StatusOK, res)
}
