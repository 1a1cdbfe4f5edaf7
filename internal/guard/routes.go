package guard

import "lumenportal/internal/model"

// Route declares a portal page and the roles allowed to open it. An empty
// role list means the page is public.
type Route struct {
	Title string
	Roles []model.Role
}

// DefaultRoute is where authenticated users land when they have no access to
// the page they asked for.
const DefaultRoute = "index"

// LoginRoute is the entry point unauthenticated users are sent to.
const LoginRoute = "login"

// Routes is the static routing table consumed by the guard.
var Routes = map[string]Route{
	"index": {
		Title: "App",
		Roles: []model.Role{model.RoleAdmin, model.RoleNormal, model.RoleCompliance},
	},
	"login": {
		Title: "Login",
	},
	"users": {
		Title: "Usuarios",
		Roles: []model.Role{model.RoleAdmin},
	},
	"audit": {
		Title: "Auditoria",
		Roles: []model.Role{model.RoleAdmin, model.RoleCompliance},
	},
	"admin": {
		Title: "SQL Admin",
		Roles: []model.Role{model.RoleAdmin},
	},
}

// allows reports whether the route admits the given role.
func (r Route) allows(role model.Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}
