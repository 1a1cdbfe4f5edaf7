package guard

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"lumenportal/internal/auth"
	"lumenportal/internal/errors"
	"lumenportal/internal/service"
)

const (
	// TokenCookie is the cookie browsers carry the session token in. API
	// clients use the Authorization header instead.
	TokenCookie = "token"

	sessionContextKey = "session"
)

// Guard gates pages on authentication and on the route table's role set.
// The verified claims travel in the request context; there is no ambient
// session state.
type Guard struct {
	svc service.AuthService
}

// New creates a guard backed by the auth service.
func New(svc service.AuthService) *Guard {
	return &Guard{svc: svc}
}

// TokenFromRequest extracts the raw session token from the Authorization
// header (Bearer scheme) or the session cookie, in that order.
func TokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Session returns the claims stored by EnsureAuthenticated, or nil when the
// request did not pass through the guard.
func Session(c echo.Context) *auth.Claims {
	claims, _ := c.Get(sessionContextKey).(*auth.Claims)
	return claims
}

// EnsureAuthenticated gates the named page. Unauthenticated browser requests
// are redirected to the login page with the requested page remembered in the
// "next" parameter; requests without access to the page land on the default
// route instead. Non-browser clients get the equivalent JSON statuses.
func (g *Guard) EnsureAuthenticated(page string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFromRequest(c)
			res := g.svc.RequireAuth(token)
			if !res.OK {
				clearAuthCookie(c)
				if wantsHTML(c) {
					target := "/" + LoginRoute + "?next=" + url.QueryEscape(page)
					return c.Redirect(http.StatusFound, target)
				}
				return c.JSON(errors.StatusForKind(res.Kind), errors.FromResult(res.Result))
			}

			if route, known := Routes[page]; known && len(route.Roles) > 0 && !route.allows(res.User.Role) {
				if wantsHTML(c) {
					return c.Redirect(http.StatusFound, "/"+DefaultRoute)
				}
				denied := g.svc.RequireAuth(token, route.Roles...)
				return c.JSON(errors.StatusForKind(denied.Kind), errors.FromResult(denied.Result))
			}

			c.Set(sessionContextKey, res.User)
			return next(c)
		}
	}
}

func wantsHTML(c echo.Context) bool {
	return strings.Contains(c.Request().Header.Get("Accept"), "text/html")
}

func clearAuthCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
