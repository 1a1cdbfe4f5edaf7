package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"lumenportal/internal/errors"
	"lumenportal/internal/guard"
	"lumenportal/internal/model"
	"lumenportal/internal/service"
)

// UserHandler exposes the admin user-management endpoints. Role enforcement
// lives in the service; the handler only shapes requests and responses.
type UserHandler struct {
	svc service.AuthService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.AuthService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUserRequest represents an admin-invoked account creation.
type CreateUserRequest struct {
	Name     string `json:"usuario"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Level    int    `json:"nivel"`
	Sector   string `json:"setor"`
}

// UpdateUserRequest represents a partial user update. Absent or blank fields
// are left unchanged; nivel must be present explicitly to change the level.
type UpdateUserRequest struct {
	Name     string `json:"usuario"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Level    *int   `json:"nivel"`
	Sector   string `json:"setor"`
}

// ChangeLevelRequest carries the target access level.
type ChangeLevelRequest struct {
	Level *int `json:"nivel" validate:"required"`
}

// ListUsers godoc
// @Summary List all users (ADMIN)
// @Tags users
// @Produce json
// @Success 200 {object} service.ListUsersResult
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	res := h.svc.ListUsers(c.Request().Context(), guard.TokenFromRequest(c))
	if !res.OK {
		return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res.Result))
	}
	return c.JSON(http.StatusOK, res)
}

// CreateUser godoc
// @Summary Create a user (ADMIN, NORMAL level only)
// @Tags users
// @Accept json
// @Produce json
// @Param request body CreateUserRequest true "User payload"
// @Success 201 {object} service.Result
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res := h.svc.CreateUser(c.Request().Context(), guard.TokenFromRequest(c),
		req.Name, req.Email, req.Password, req.Level, req.Sector)
	if !res.OK {
		return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res))
	}
	return c.JSON(http.StatusCreated, res)
}

// UpdateUser godoc
// @Summary Partially update a user (ADMIN)
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateUserRequest true "Fields to change"
// @Success 200 {object} service.Result
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	input := service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Sector:   req.Sector,
	}
	if req.Level != nil {
		level := model.AccessLevel(*req.Level)
		input.Level = &level
	}

	res := h.svc.UpdateUser(c.Request().Context(), guard.TokenFromRequest(c), id, input)
	if !res.OK {
		return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res))
	}
	return c.JSON(http.StatusOK, res)
}

// ChangeLevel godoc
// @Summary Change a user's access level (ADMIN)
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body ChangeLevelRequest true "New level"
// @Success 200 {object} service.Result
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id}/level [patch]
func (h *UserHandler) ChangeLevel(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req ChangeLevelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := h.svc.ChangeAccessLevel(c.Request().Context(), guard.TokenFromRequest(c), id, *req.Level)
	if !res.OK {
		return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res))
	}
	return c.JSON(http.StatusOK, res)
}

// DeleteUser godoc
// @Summary Delete a user (ADMIN)
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} service.Result
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	res := h.svc.DeleteUser(c.Request().Context(), guard.TokenFromRequest(c), id)
	if !res.OK {
		return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res))
	}
	return c.JSON(http.StatusOK, res)
}
