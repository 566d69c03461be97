// Package auth implements the credential and session lifecycle: registration,
// login with account lockout, access/refresh token issuance, refresh,
// revocation and password changes. Handlers stay thin; every rule about who
// may obtain or keep a token lives here.
package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iliyamo/user-auth-service/internal/config"
	"github.com/iliyamo/user-auth-service/internal/model"
	"github.com/iliyamo/user-auth-service/internal/repository"
	"github.com/iliyamo/user-auth-service/internal/utils"
)

// Service is the main authentication service. All store access goes through
// the narrow UserStore/SessionStore interfaces; mutual exclusion is
// delegated to the underlying store.
type Service struct {
	users    UserStore
	sessions SessionStore
	audit    Recorder
	cfg      config.Config
	now      func() time.Time
}

// NewService wires the service. rec may be nil, in which case no audit
// events are emitted (used by some tests).
func NewService(users UserStore, sessions SessionStore, rec Recorder, cfg config.Config) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		audit:    rec,
		cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) record(ctx context.Context, userID *uint64, action, resource string, details map[string]any, ip, ua string) {
	if s.audit != nil {
		s.audit.Record(ctx, userID, action, resource, details, ip, ua)
	}
}

// Register creates a user with the default role and immediately issues a
// token pair, so registration doubles as the first login.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Result, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if v := utils.CheckStrength(in.Password); len(v) > 0 {
		return nil, &PasswordPolicyError{Violations: v}
	}
	hash, err := utils.HashPassword(in.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	uid, err := s.users.Create(ctx, email, hash, strings.TrimSpace(in.FullName), model.RoleCustomer, model.StatusActive)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	now := s.now()
	u := model.User{
		ID:        uid,
		Email:     email,
		FullName:  strings.TrimSpace(in.FullName),
		Role:      model.RoleCustomer,
		Status:    model.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := s.issueTokens(ctx, u, in.IP, in.UserAgent)
	if err != nil {
		return nil, err
	}
	s.record(ctx, &uid, model.AuditActionRegister, model.AuditResourceUser, nil, in.IP, in.UserAgent)
	return res, nil
}

// Login authenticates a user. The lockout guard runs first: a locked
// account is rejected without touching the password hash or the counter.
// On a wrong password the counter is incremented atomically at the store;
// reaching the configured maximum sets the lock deadline in the same
// statement, so concurrent attempts cannot race past it.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Result, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same answer as a wrong password: no enumeration.
			s.record(ctx, nil, model.AuditActionLoginFailed, model.AuditResourceUser,
				map[string]any{"email": email, "reason": "unknown_email"}, in.IP, in.UserAgent)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if u.Locked(s.now()) {
		s.record(ctx, &u.ID, model.AuditActionLoginLocked, model.AuditResourceUser,
			map[string]any{"locked_until": u.LockedUntil.Format(time.RFC3339)}, in.IP, in.UserAgent)
		return nil, ErrAccountLocked
	}

	if !utils.VerifyPassword(u.PasswordHash, in.Password) {
		attempts, lockedUntil, ferr := s.users.RecordFailedLogin(ctx, u.ID, s.cfg.MaxFailedLogins, s.cfg.LockDuration)
		if ferr != nil {
			return nil, fmt.Errorf("record failed login: %w", ferr)
		}
		details := map[string]any{"reason": "wrong_password", "failed_attempts": attempts}
		if lockedUntil != nil {
			details["locked_until"] = lockedUntil.Format(time.RFC3339)
		}
		s.record(ctx, &u.ID, model.AuditActionLoginFailed, model.AuditResourceUser, details, in.IP, in.UserAgent)
		return nil, ErrInvalidCredentials
	}

	if u.Status != model.StatusActive {
		s.record(ctx, &u.ID, model.AuditActionLoginFailed, model.AuditResourceUser,
			map[string]any{"reason": "not_active", "status": string(u.Status)}, in.IP, in.UserAgent)
		return nil, ErrAccountNotActive
	}

	if err := s.users.ResetLoginState(ctx, u.ID); err != nil {
		return nil, fmt.Errorf("reset login state: %w", err)
	}
	res, err := s.issueTokens(ctx, u, in.IP, in.UserAgent)
	if err != nil {
		return nil, err
	}
	s.record(ctx, &u.ID, model.AuditActionLogin, model.AuditResourceUser, nil, in.IP, in.UserAgent)
	return res, nil
}

// Refresh exchanges a live refresh token for a new access token. The owning
// user's status is re-checked on every call, never cached, so a suspension
// takes effect before the access token would naturally expire. By default
// the same refresh token stays valid for its full TTL; with rotation
// enabled the presented token is revoked and a new one issued in its place.
func (s *Service) Refresh(ctx context.Context, rawToken, ip, userAgent string) (*Result, error) {
	hash := utils.HashRefreshRaw(strings.TrimSpace(rawToken))
	sess, err := s.sessions.FindActive(ctx, hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u.Status != model.StatusActive {
		return nil, ErrAccountNotActive
	}

	access, err := utils.NewAccessToken(s.cfg.JWTSecret, s.cfg.Issuer, &u, s.cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	refresh := utils.RefreshToken{Raw: strings.TrimSpace(rawToken), Exp: sess.ExpiresAt}
	if s.cfg.RefreshRotation {
		refresh, err = utils.NewRefreshToken(s.cfg.RefreshTTL)
		if err != nil {
			return nil, fmt.Errorf("issue refresh token: %w", err)
		}
		if err := s.sessions.RevokeByHash(ctx, hash); err != nil {
			return nil, fmt.Errorf("revoke old session: %w", err)
		}
		if err := s.sessions.Store(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), ip, userAgent, refresh.Exp); err != nil {
			return nil, fmt.Errorf("store session: %w", err)
		}
	} else {
		// Opportunistic: the refresh still succeeds if this update fails.
		_ = s.sessions.Touch(ctx, sess.ID, ip, userAgent)
	}

	s.record(ctx, &u.ID, model.AuditActionTokenRefresh, model.AuditResourceToken,
		map[string]any{"rotated": s.cfg.RefreshRotation}, ip, userAgent)
	return &Result{User: u, Access: access, Refresh: refresh}, nil
}

// Logout revokes the session behind a refresh token. Idempotent: revoking
// an unknown or already-revoked token is a no-op.
func (s *Service) Logout(ctx context.Context, rawToken, ip, userAgent string) error {
	hash := utils.HashRefreshRaw(strings.TrimSpace(rawToken))
	var owner *uint64
	if sess, err := s.sessions.FindActive(ctx, hash); err == nil {
		owner = &sess.UserID
	}
	if err := s.sessions.RevokeByHash(ctx, hash); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	s.record(ctx, owner, model.AuditActionLogout, model.AuditResourceSession, nil, ip, userAgent)
	return nil
}

// LogoutAll revokes every session of the user ("log out everywhere").
func (s *Service) LogoutAll(ctx context.Context, userID uint64, ip, userAgent string) error {
	if err := s.sessions.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	s.record(ctx, &userID, model.AuditActionLogoutAll, model.AuditResourceSession, nil, ip, userAgent)
	return nil
}

// Sessions lists the user's live sessions.
func (s *Service) Sessions(ctx context.Context, userID uint64) ([]model.Session, error) {
	return s.sessions.ListActiveForUser(ctx, userID)
}

// ChangePassword verifies the current password, enforces the strength
// policy on the new one and revokes every existing session of the user, so
// a stolen refresh token dies the moment the password changes.
func (s *Service) ChangePassword(ctx context.Context, userID uint64, current, next, ip, userAgent string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}
	if !utils.VerifyPassword(u.PasswordHash, current) {
		return ErrInvalidCredentials
	}
	if v := utils.CheckStrength(next); len(v) > 0 {
		return &PasswordPolicyError{Violations: v}
	}
	hash, err := utils.HashPassword(next, s.cfg.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if err := s.sessions.RevokeAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	s.record(ctx, &userID, model.AuditActionPasswordChange, model.AuditResourceUser, nil, ip, userAgent)
	return nil
}

// UpdateProfile updates the caller's own mutable profile fields and returns
// the fresh record.
func (s *Service) UpdateProfile(ctx context.Context, userID uint64, fullName, ip, userAgent string) (model.User, error) {
	if err := s.users.UpdateProfile(ctx, userID, strings.TrimSpace(fullName)); err != nil {
		return model.User{}, fmt.Errorf("update profile: %w", err)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return model.User{}, fmt.Errorf("load user: %w", err)
	}
	s.record(ctx, &userID, model.AuditActionProfileUpdate, model.AuditResourceUser, nil, ip, userAgent)
	return u, nil
}

func (s *Service) issueTokens(ctx context.Context, u model.User, ip, userAgent string) (*Result, error) {
	access, err := utils.NewAccessToken(s.cfg.JWTSecret, s.cfg.Issuer, &u, s.cfg.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := utils.NewRefreshToken(s.cfg.RefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	if err := s.sessions.Store(ctx, u.ID, utils.HashRefreshRaw(refresh.Raw), ip, userAgent, refresh.Exp); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return &Result{User: u, Access: access, Refresh: refresh}, nil
}
