package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/middleware"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/service/auth"
)

// AdminHandler serves the administrative user-management endpoints. Role
// checks happen in the middleware chain; the self-protection rules (no
// self-role-change, no self-delete, admins untouchable by non-super-admins)
// are enforced in the service.
type AdminHandler struct {
	Svc *auth.Service
}

func NewAdminHandler(svc *auth.Service) *AdminHandler { return &AdminHandler{Svc: svc} }

type changeRoleReq struct {
	Role string `json:"role"`
}
type changeStatusReq struct {
	Status string `json:"status"`
}

// ListUsers returns a page of users (?limit=&offset=).
func (h *AdminHandler) ListUsers(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Svc.ListUsers(ctx, limit, offset)
	if err != nil {
		return failFrom(c, err)
	}
	out := make([]userView, 0, len(users))
	for _, u := range users {
		out = append(out, viewUser(u))
	}
	return respond(c, http.StatusOK, out)
}

// ChangeRole sets a user's role.
func (h *AdminHandler) ChangeRole(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || targetID == 0 {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	var req changeRoleReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	role := model.Role(req.Role)
	if !role.Valid() {
		return fail(c, http.StatusBadRequest, "unknown role")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Svc.ChangeRole(ctx, *actor, targetID, role, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return failFrom(c, err)
	}
	return respond(c, http.StatusOK, viewUser(updated))
}

// ChangeStatus sets a user's account status.
func (h *AdminHandler) ChangeStatus(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || targetID == 0 {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}
	var req changeStatusReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}
	status := model.Status(req.Status)
	if !status.Valid() {
		return fail(c, http.StatusBadRequest, "unknown status")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	updated, err := h.Svc.ChangeStatus(ctx, *actor, targetID, status, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return failFrom(c, err)
	}
	return respond(c, http.StatusOK, viewUser(updated))
}

// DeleteUser removes a user account, its sessions and audit rows.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	actor := middleware.CurrentUser(c)
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || targetID == 0 {
		return fail(c, http.StatusBadRequest, "invalid user id")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Svc.DeleteUser(ctx, *actor, targetID, c.RealIP(), c.Request().UserAgent()); err != nil {
		return failFrom(c, err)
	}
	return respondMsg(c, http.StatusOK, "user deleted")
}
