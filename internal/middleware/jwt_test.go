package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "user-auth-service"
)

type fakeUserSource struct {
	byID map[uint64]model.User
}

func (f *fakeUserSource) GetByID(_ context.Context, id uint64) (model.User, error) {
	if u, ok := f.byID[id]; ok {
		return u, nil
	}
	return model.User{}, sql.ErrNoRows
}

func activeUser(id uint64, role model.Role) model.User {
	return model.User{ID: id, Email: "a@x.com", Role: role, Status: model.StatusActive}
}

func doRequest(t *testing.T, mw echo.MiddlewareFunc, token string) (*httptest.ResponseRecorder, *model.User) {
	t.Helper()
	e := echo.New()
	var seen *model.User
	h := mw(func(c echo.Context) error {
		seen = CurrentUser(c)
		return c.NoContent(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec, seen
}

func mint(t *testing.T, u model.User) string {
	t.Helper()
	tok, err := utils.NewAccessToken(testSecret, testIssuer, &u, time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	return tok.Token
}

func TestAuthenticateResolvesLiveUser(t *testing.T) {
	u := activeUser(1, model.RoleCustomer)
	src := &fakeUserSource{byID: map[uint64]model.User{1: u}}
	mw := Authenticate(testSecret, testIssuer, src)

	rec, seen := doRequest(t, mw, mint(t, u))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if seen == nil || seen.ID != 1 {
		t.Fatalf("expected user 1 in context, got %v", seen)
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	mw := Authenticate(testSecret, testIssuer, &fakeUserSource{byID: map[uint64]model.User{}})
	rec, _ := doRequest(t, mw, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	u := activeUser(1, model.RoleCustomer)
	src := &fakeUserSource{byID: map[uint64]model.User{1: u}}
	tok, err := utils.NewAccessToken(testSecret, testIssuer, &u, -time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	rec, _ := doRequest(t, Authenticate(testSecret, testIssuer, src), tok.Token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticateRejectsStaleToken(t *testing.T) {
	// The token was minted while the account was active; the live re-fetch
	// sees the suspension and rejects before the token expires.
	u := activeUser(1, model.RoleCustomer)
	token := mint(t, u)
	u.Status = model.StatusSuspended
	src := &fakeUserSource{byID: map[uint64]model.User{1: u}}

	rec, _ := doRequest(t, Authenticate(testSecret, testIssuer, src), token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for suspended account, got %d", rec.Code)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	u := activeUser(7, model.RoleCustomer)
	token := mint(t, u)
	src := &fakeUserSource{byID: map[uint64]model.User{}} // user is gone

	rec, _ := doRequest(t, Authenticate(testSecret, testIssuer, src), token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %d", rec.Code)
	}
}

func TestOptionalAuthenticateNeverFails(t *testing.T) {
	src := &fakeUserSource{byID: map[uint64]model.User{}}
	mw := OptionalAuthenticate(testSecret, testIssuer, src)

	rec, seen := doRequest(t, mw, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without token, got %d", rec.Code)
	}
	if seen != nil {
		t.Fatal("expected unauthenticated context")
	}

	rec, seen = doRequest(t, mw, "garbage-token")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with bad token, got %d", rec.Code)
	}
	if seen != nil {
		t.Fatal("expected unauthenticated context with bad token")
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	run := func(u *model.User, mw echo.MiddlewareFunc) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if u != nil {
			c.Set("user", u)
		}
		if err := mw(next)(c); err != nil {
			t.Fatalf("handler: %v", err)
		}
		return rec.Code
	}

	customer := activeUser(1, model.RoleCustomer)
	admin := activeUser(2, model.RoleAdmin)
	super := activeUser(3, model.RoleSuperAdmin)

	if code := run(&customer, RequireAdmin()); code != http.StatusForbidden {
		t.Fatalf("customer on admin route: expected 403, got %d", code)
	}
	if code := run(&admin, RequireAdmin()); code != http.StatusOK {
		t.Fatalf("admin on admin route: expected 200, got %d", code)
	}
	if code := run(&super, RequireAdmin()); code != http.StatusOK {
		t.Fatalf("super admin on admin route: expected 200, got %d", code)
	}
	if code := run(&admin, RequireSuperAdmin()); code != http.StatusForbidden {
		t.Fatalf("admin on super-admin route: expected 403, got %d", code)
	}
	if code := run(nil, RequireAdmin()); code != http.StatusForbidden {
		t.Fatalf("anonymous on admin route: expected 403, got %d", code)
	}
}
