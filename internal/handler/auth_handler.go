package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"lumenportal/internal/errors"
	"lumenportal/internal/guard"
	"lumenportal/internal/service"
)

// AuthHandler handles the public authentication endpoints.
type AuthHandler struct {
	svc      service.AuthService
	tokenTTL time.Duration
}

// NewAuthHandler creates a new auth handler. tokenTTL bounds the session
// cookie lifetime to the token lifetime.
func NewAuthHandler(svc service.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{svc: svc, tokenTTL: tokenTTL}
}

// LoginRequest represents a login attempt.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents a public self-registration.
type RegisterRequest struct {
	Name     string `json:"usuario"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Sector   string `json:"setor"`
}

// Login godoc
// @Summary Authenticate and receive a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} service.LoginResult
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res := h.svc.Login(c.Request().Context(), req.Email, req.Password)
	if !res.OK {
		return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res.Result))
	}

	c.SetCookie(&http.Cookie{
		Name:     guard.TokenCookie,
		Value:    res.Token,
		Path:     "/",
		MaxAge:   int(h.tokenTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, res)
}

// Register godoc
// @Summary Self-register a new account (always NORMAL access)
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} service.Result
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res := h.svc.SelfRegister(c.Request().Context(), req.Name, req.Email, req.Password, req.Sector)
	if !res.OK {
		return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res))
	}
	return c.JSON(http.StatusCreated, res)
}

// Logout godoc
// @Summary Discard the session cookie
// @Description Tokens are stateless and stay valid until expiry; logout only
// @Description clears the browser cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     guard.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.JSON(http.StatusOK, map[string]string{"message": "sessao encerrada"})
}

// Me godoc
// @Summary Return the verified claims of the current session
// @Tags auth
// @Produce json
// @Success 200 {object} service.AuthResult
// @Failure 401 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	res := h.svc.RequireAuth(guard.TokenFromRequest(c))
	if !res.OK {
		return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res.Result))
	}
	return c.JSON(http.StatusOK, res)
}
