package handler

import (
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"lumenportal/internal/model"
	"lumenportal/internal/service"
)

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func newUserHandlerServer(svc service.AuthService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}
	h := NewUserHandler(svc)
	e.GET("/api/users", h.ListUsers)
	e.POST("/api/users", h.CreateUser)
	e.PUT("/api/users/:id", h.UpdateUser)
	e.PATCH("/api/users/:id/level", h.ChangeLevel)
	e.DELETE("/api/users/:id", h.DeleteUser)
	return e
}

func TestUserHandler_ListUsers(t *testing.T) {
	t.Run("forbidden for non-admins", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ListUsers", mock.Anything, "normal-token").Return(service.ListUsersResult{
			Result: failResult(service.KindForbidden, "Acesso negado: requer ADMIN"),
		})

		rec := doJSON(newUserHandlerServer(mockSvc), http.MethodGet, "/api/users", "", "normal-token")

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), `"code":"FORBIDDEN"`)
	})

	t.Run("returns rows for admins", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ListUsers", mock.Anything, "admin-token").Return(service.ListUsersResult{
			Result: okResult(""),
			Data: []service.UserView{
				{ID: 1, Name: "Admin", Email: "admin@local", Level: model.LevelAdmin, Role: model.RoleAdmin},
			},
		})

		rec := doJSON(newUserHandlerServer(mockSvc), http.MethodGet, "/api/users", "", "admin-token")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"role":"ADMIN"`)
	})
}

func TestUserHandler_CreateUser(t *testing.T) {
	mockSvc := new(MockAuthService)
	mockSvc.On("CreateUser", mock.Anything, "admin-token", "Novo", "novo@empresa.com", "senhasecreta1", 1, "TI").
		Return(okResult(service.MsgUserCreated))

	body := `{"usuario":"Novo","email":"novo@empresa.com","password":"senhasecreta1","nivel":1,"setor":"TI"}`
	rec := doJSON(newUserHandlerServer(mockSvc), http.MethodPost, "/api/users", body, "admin-token")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), service.MsgUserCreated)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_ChangeLevel(t *testing.T) {
	t.Run("level change", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ChangeAccessLevel", mock.Anything, "admin-token", 2, 2).
			Return(okResult(service.MsgLevelUpdated))

		rec := doJSON(newUserHandlerServer(mockSvc), http.MethodPatch, "/api/users/2/level", `{"nivel":2}`, "admin-token")

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("nivel zero is a valid level, not an absent field", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("ChangeAccessLevel", mock.Anything, "admin-token", 2, 0).
			Return(okResult(service.MsgLevelUpdated))

		rec := doJSON(newUserHandlerServer(mockSvc), http.MethodPatch, "/api/users/2/level", `{"nivel":0}`, "admin-token")

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing nivel is rejected before the service runs", func(t *testing.T) {
		mockSvc := new(MockAuthService)

		rec := doJSON(newUserHandlerServer(mockSvc), http.MethodPatch, "/api/users/2/level", `{}`, "admin-token")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		mockSvc.AssertNotCalled(t, "ChangeAccessLevel")
	})

	t.Run("non-numeric id", func(t *testing.T) {
		rec := doJSON(newUserHandlerServer(new(MockAuthService)), http.MethodPatch, "/api/users/abc/level", `{"nivel":1}`, "admin-token")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserHandler_UpdateUser(t *testing.T) {
	mockSvc := new(MockAuthService)
	level := model.LevelCompliance
	mockSvc.On("UpdateUser", mock.Anything, "admin-token", 3, service.UpdateUserInput{
		Sector: "Compras",
		Level:  &level,
	}).Return(okResult(service.MsgUserUpdated))

	rec := doJSON(newUserHandlerServer(mockSvc), http.MethodPut, "/api/users/3", `{"setor":"Compras","nivel":2}`, "admin-token")

	assert.Equal(t, http.StatusOK, rec.Code)
	mockSvc.AssertExpectations(t)
}

func TestUserHandler_DeleteUser(t *testing.T) {
	t.Run("refusal maps to conflict", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("DeleteUser", mock.Anything, "admin-token", 1).
			Return(failResult(service.KindConflict, service.MsgLastAdmin))

		rec := doJSON(newUserHandlerServer(mockSvc), http.MethodDelete, "/api/users/1", "", "admin-token")

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), service.MsgLastAdmin)
	})

	t.Run("success", func(t *testing.T) {
		mockSvc := new(MockAuthService)
		mockSvc.On("DeleteUser", mock.Anything, "admin-token", 2).
			Return(okResult(service.MsgUserDeleted))

		rec := doJSON(newUserHandlerServer(mockSvc), http.MethodDelete, "/api/users/2", "", "admin-token")

		assert.Equal(t, http.StatusOK, rec.Code)
		mockSvc.AssertExpectations(t)
	})
}
