package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/middleware"
	"github.com/iliyamo/user-auth-service/internal/service/auth"
)

// UserHandler serves the authenticated user's own account endpoints.
type UserHandler struct {
	Svc *auth.Service
}

func NewUserHandler(svc *auth.Service) *UserHandler { return &UserHandler{Svc: svc} }

type updateProfileReq struct {
	FullName string `json:"full_name"`
}
type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Me returns the live user record placed in context by the gate.
func (h *UserHandler) Me(c echo.Context) error {
	u := middleware.CurrentUser(c)
	return respond(c, http.StatusOK, viewUser(*u))
}

// UpdateMe updates the caller's profile fields.
func (h *UserHandler) UpdateMe(c echo.Context) error {
	u := middleware.CurrentUser(c)
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Svc.UpdateProfile(ctx, u.ID, req.FullName, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return failFrom(c, err)
	}
	return respond(c, http.StatusOK, viewUser(updated))
}

// ChangePassword swaps the caller's password and revokes every session they
// hold, including the one behind this request's refresh token.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	u := middleware.CurrentUser(c)
	var req changePasswordReq
	if err := c.Bind(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		return fail(c, http.StatusBadRequest, "current_password and new_password are required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.ChangePassword(ctx, u.ID, req.CurrentPassword, req.NewPassword, c.RealIP(), c.Request().UserAgent()); err != nil {
		return failFrom(c, err)
	}
	return respondMsg(c, http.StatusOK, "password changed, all sessions revoked")
}

// Sessions lists the caller's live sessions with client metadata.
func (h *UserHandler) Sessions(c echo.Context) error {
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Svc.Sessions(ctx, u.ID)
	if err != nil {
		return failFrom(c, err)
	}
	return respond(c, http.StatusOK, viewSessions(list))
}

// RevokeSessions logs the caller out everywhere.
func (h *UserHandler) RevokeSessions(c echo.Context) error {
	u := middleware.CurrentUser(c)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.LogoutAll(ctx, u.ID, c.RealIP(), c.Request().UserAgent()); err != nil {
		return failFrom(c, err)
	}
	return respondMsg(c, http.StatusOK, "all sessions revoked")
}
