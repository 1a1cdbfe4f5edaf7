package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lumenportal/internal/guard"
)

// PageHandler serves the guarded portal pages. The page bodies themselves are
// rendered by the frontend; the backend only confirms access and hands over
// the session identity.
type PageHandler struct{}

// NewPageHandler creates a new page handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Show returns the handler for a named route.
func (h *PageHandler) Show(page string, route guard.Route) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"page":  page,
			"title": route.Title,
			"user":  guard.Session(c),
		})
	}
}

// Login serves the public login entry point. The "next" query parameter set
// by the guard is echoed back so the frontend can forward after login.
func (h *PageHandler) Login(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"page":  guard.LoginRoute,
		"title": guard.Routes[guard.LoginRoute].Title,
		"next":  c.QueryParam("next"),
	})
}
