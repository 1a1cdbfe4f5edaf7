package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"lumenportal/internal/auth"
	"lumenportal/internal/config"
	"lumenportal/internal/guard"
	"lumenportal/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	jwtService *auth.JWTService,
	g *guard.Guard,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	auditHandler *handler.AuditHandler,
	pageHandler *handler.PageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Guarded portal pages. The login page stays public; everything else
	// goes through the guard with the role set declared in the route table.
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/"+guard.DefaultRoute)
	})
	e.GET("/"+guard.LoginRoute, pageHandler.Login)
	for name, route := range guard.Routes {
		if name == guard.LoginRoute {
			continue
		}
		e.GET("/"+name, pageHandler.Show(name, route), g.EnsureAuthenticated(name))
	}

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes. The middleware rejects unverifiable tokens early with
	// 401; the service re-verifies and enforces roles per operation.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:Authorization:Bearer ,cookie:" + guard.TokenCookie,
		ParseTokenFunc: func(c echo.Context, raw string) (interface{}, error) {
			return jwtService.Decode(raw)
		},
	}))

	secured.GET("/me", authHandler.Me)

	secured.GET("/users", userHandler.ListUsers)
	secured.POST("/users", userHandler.CreateUser)
	secured.PUT("/users/:id", userHandler.UpdateUser)
	secured.PATCH("/users/:id/level", userHandler.ChangeLevel)
	secured.DELETE("/users/:id", userHandler.DeleteUser)

	secured.GET("/audit/events", auditHandler.ListEvents)
	secured.GET("/audit/logs", auditHandler.ListLogs)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator.
func (v *CustomValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}
