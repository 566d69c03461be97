package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/user-auth-service/internal/service/auth"
)

func TestFailFromMapsServiceErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{auth.ErrEmailExists, http.StatusConflict},
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrAccountLocked, http.StatusLocked},
		{auth.ErrAccountNotActive, http.StatusUnauthorized},
		{auth.ErrSessionNotFound, http.StatusUnauthorized},
		{auth.ErrForbidden, http.StatusForbidden},
		{auth.ErrNotFound, http.StatusNotFound},
		{&auth.PasswordPolicyError{Violations: []string{"too short"}}, http.StatusBadRequest},
		{errors.New("the database exploded"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := failFrom(c, tc.err); err != nil {
			t.Fatalf("failFrom(%v): %v", tc.err, err)
		}
		if rec.Code != tc.code {
			t.Fatalf("failFrom(%v): expected %d, got %d", tc.err, tc.code, rec.Code)
		}
		var env envelope
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v", err)
		}
		if env.Success {
			t.Fatalf("failFrom(%v): envelope must report success=false", tc.err)
		}
	}
}

func TestInternalErrorsNeverLeakDetail(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := failFrom(c, errors.New("dsn user:secret@tcp(db:3306)")); err != nil {
		t.Fatalf("failFrom: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Message != "internal error" {
		t.Fatalf("expected the generic message, got %q", env.Message)
	}
}

func TestPasswordPolicyErrorsListAllViolations(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	perr := &auth.PasswordPolicyError{Violations: []string{
		"password must be at least 8 characters",
		"password must contain a digit",
	}}
	if err := failFrom(c, perr); err != nil {
		t.Fatalf("failFrom: %v", err)
	}
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if len(env.Errors) != 2 {
		t.Fatalf("expected both violations in the envelope, got %v", env.Errors)
	}
}
