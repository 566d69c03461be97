package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/model"
)

// RequireRole returns middleware that rejects the request with 403 unless
// the authenticated user's role is in the allowed set. It must run after
// Authenticate, which places the live user in the context.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u := CurrentUser(c)
			if u == nil || !allowed[u.Role] {
				return c.JSON(http.StatusForbidden, map[string]any{"success": false, "message": "forbidden"})
			}
			return next(c)
		}
	}
}

// RequireAdmin admits ADMIN and SUPER_ADMIN.
func RequireAdmin() echo.MiddlewareFunc {
	return RequireRole(model.RoleAdmin, model.RoleSuperAdmin)
}

// RequireSuperAdmin admits only SUPER_ADMIN.
func RequireSuperAdmin() echo.MiddlewareFunc {
	return RequireRole(model.RoleSuperAdmin)
}
