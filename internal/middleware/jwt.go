package middleware // reusable HTTP middleware shared by all route groups

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// UserSource is the slice of the credential store the gate needs: a live
// lookup by id. *repository.UserRepo satisfies it.
type UserSource interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// userKey is the context key the authenticated *model.User is stored under.
const userKey = "user"

// CurrentUser returns the authenticated user placed in the context by
// Authenticate, or nil when the request is unauthenticated.
func CurrentUser(c echo.Context) *model.User {
	u, _ := c.Get(userKey).(*model.User)
	return u
}

// Authenticate returns middleware that resolves a bearer token to a live,
// active user. The token's embedded role/status are only a mint-time
// snapshot; the user is re-fetched from the store on every request so a
// suspension or role change takes effect before the token expires.
func Authenticate(secret, issuer string, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			u, errMsg := resolveBearer(c, secret, issuer, users)
			if u == nil {
				return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": errMsg})
			}
			c.Set(userKey, u)
			return next(c)
		}
	}
}

// OptionalAuthenticate is like Authenticate but never fails: a missing or
// invalid token simply leaves the request unauthenticated. Used for
// endpoints with mixed public/private behavior.
func OptionalAuthenticate(secret, issuer string, users UserSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if u, _ := resolveBearer(c, secret, issuer, users); u != nil {
				c.Set(userKey, u)
			}
			return next(c)
		}
	}
}

// resolveBearer extracts and verifies the bearer token, then re-fetches the
// owning user and checks that the account is still ACTIVE. It returns the
// user or a client-safe failure message.
func resolveBearer(c echo.Context, secret, issuer string, users UserSource) (*model.User, string) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return nil, "missing bearer token"
	}
	raw := strings.TrimPrefix(auth, "Bearer ")

	claims, err := utils.VerifyAccessToken(secret, issuer, raw)
	if err != nil {
		if err == utils.ErrTokenExpired {
			return nil, "token expired"
		}
		return nil, "invalid token"
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, "invalid token"
	}
	if u.Status != model.StatusActive {
		return nil, "account not active"
	}
	return &u, ""
}
