package router // package router wires HTTP routes to handlers and middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/handler"
	"github.com/iliyamo/user-auth-service/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication. Currently
// only the health check used by load balancers and monitoring.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the unauthenticated credential endpoints under
// /v1/auth. The rate limiter (when configured) applies to this whole group
// so password guessing is throttled per source on top of the account-scoped
// lockout.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, limiter echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	if limiter != nil {
		g.Use(limiter)
	}
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)
}

// RegisterUsers registers the authenticated self-service endpoints. Every
// route runs the gate first: bearer token verified, user re-fetched live,
// ACTIVE status required.
func RegisterUsers(e *echo.Echo, u *handler.UserHandler, authn echo.MiddlewareFunc) {
	g := e.Group("/v1/users/me")
	g.Use(authn)
	g.GET("", u.Me)
	g.PUT("", u.UpdateMe)
	g.PUT("/password", u.ChangePassword)
	g.GET("/sessions", u.Sessions)
	g.DELETE("/sessions", u.RevokeSessions)
}

// RegisterAdmin registers the administrative endpoints. Listing and
// role/status changes accept ADMIN and SUPER_ADMIN; deletion is
// SUPER_ADMIN only.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, authn echo.MiddlewareFunc) {
	g := e.Group("/v1/users")
	g.Use(authn)
	g.Use(middleware.RequireAdmin())
	g.GET("", h.ListUsers)
	g.PUT("/:id/role", h.ChangeRole)
	g.PUT("/:id/status", h.ChangeStatus)
	g.DELETE("/:id", h.DeleteUser, middleware.RequireSuperAdmin())
}
