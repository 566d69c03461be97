package utils

import (
	"testing"
	"time"

	"github.com/iliyamo/user-auth-service/internal/model"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "user-auth-service"
)

func testUser() *model.User {
	return &model.User{
		ID:     42,
		Email:  "a@x.com",
		Role:   model.RoleCustomer,
		Status: model.StatusActive,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, testIssuer, testUser(), time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	claims, err := VerifyAccessToken(testSecret, testIssuer, tok.Token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("expected user id 42, got %d", claims.UserID)
	}
	if claims.Email != "a@x.com" {
		t.Fatalf("expected email a@x.com, got %q", claims.Email)
	}
	if claims.Role != model.RoleCustomer || claims.Status != model.StatusActive {
		t.Fatalf("unexpected role/status snapshot: %v/%v", claims.Role, claims.Status)
	}
}

func TestAccessTokenExpired(t *testing.T) {
	tok, err := NewAccessToken(testSecret, testIssuer, testUser(), -time.Minute)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := VerifyAccessToken(testSecret, testIssuer, tok.Token); err != ErrTokenExpired {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, testIssuer, testUser(), time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := VerifyAccessToken("another-secret-another-secret-xx", testIssuer, tok.Token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAccessTokenWrongAudience(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "some-other-service", testUser(), time.Hour)
	if err != nil {
		t.Fatalf("mint: %v", err)
	}
	if _, err := VerifyAccessToken(testSecret, testIssuer, tok.Token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerifyGarbageToken(t *testing.T) {
	if _, err := VerifyAccessToken(testSecret, testIssuer, "not.a.jwt"); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestRefreshTokenHashStability(t *testing.T) {
	rt, err := NewRefreshToken(time.Hour)
	if err != nil {
		t.Fatalf("new refresh token: %v", err)
	}
	if len(rt.Raw) != 96 {
		t.Fatalf("expected 96 hex chars, got %d", len(rt.Raw))
	}
	if HashRefreshRaw(rt.Raw) != HashRefreshRaw(rt.Raw) {
		t.Fatal("hash must be deterministic")
	}
	other, err := NewRefreshToken(time.Hour)
	if err != nil {
		t.Fatalf("new refresh token: %v", err)
	}
	if rt.Raw == other.Raw {
		t.Fatal("two refresh tokens must not collide")
	}
}
