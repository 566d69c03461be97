package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/service/auth"
)

// envelope is the uniform response shape for every endpoint.
type envelope struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Data    any      `json:"data,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, envelope{Success: true, Data: data})
}

func respondMsg(c echo.Context, code int, message string) error {
	return c.JSON(code, envelope{Success: true, Message: message})
}

func fail(c echo.Context, code int, message string, errs ...string) error {
	return c.JSON(code, envelope{Success: false, Message: message, Errors: errs})
}

// failFrom maps service errors onto the HTTP taxonomy. Unrecognized errors
// become a generic 500 so internal detail never leaks to the client.
func failFrom(c echo.Context, err error) error {
	var policy *auth.PasswordPolicyError
	switch {
	case errors.As(err, &policy):
		return fail(c, http.StatusBadRequest, "password does not meet policy", policy.Violations...)
	case errors.Is(err, auth.ErrEmailExists):
		return fail(c, http.StatusConflict, "email already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, auth.ErrAccountLocked):
		return fail(c, http.StatusLocked, "account temporarily locked")
	case errors.Is(err, auth.ErrAccountNotActive):
		return fail(c, http.StatusUnauthorized, "account not active")
	case errors.Is(err, auth.ErrSessionNotFound):
		return fail(c, http.StatusUnauthorized, "invalid refresh token")
	case errors.Is(err, auth.ErrForbidden):
		return fail(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, auth.ErrNotFound):
		return fail(c, http.StatusNotFound, "user not found")
	default:
		c.Logger().Errorf("internal error: %v", err)
		return fail(c, http.StatusInternalServerError, "internal error")
	}
}

// userView is the client-facing projection of a user. The password hash is
// never part of any response.
type userView struct {
	ID          uint64     `json:"id"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name,omitempty"`
	Role        string     `json:"role"`
	Status      string     `json:"status"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func viewUser(u model.User) userView {
	return userView{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        string(u.Role),
		Status:      string(u.Status),
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authView struct {
	User    userView  `json:"user"`
	Access  tokenPart `json:"access"`
	Refresh tokenPart `json:"refresh"`
}

func viewAuth(r *auth.Result) authView {
	return authView{
		User:    viewUser(r.User),
		Access:  tokenPart{Token: r.Access.Token, Expires: r.Access.Exp},
		Refresh: tokenPart{Token: r.Refresh.Raw, Expires: r.Refresh.Exp},
	}
}

type sessionView struct {
	ID        uint64    `json:"id"`
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func viewSessions(list []model.Session) []sessionView {
	out := make([]sessionView, 0, len(list))
	for _, s := range list {
		out = append(out, sessionView{
			ID:        s.ID,
			IP:        s.IP,
			UserAgent: s.UserAgent,
			CreatedAt: s.CreatedAt,
			ExpiresAt: s.ExpiresAt,
		})
	}
	return out
}
