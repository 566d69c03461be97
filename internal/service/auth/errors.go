package auth

import (
	"errors"
	"strings"
)

// Sentinel errors returned by the service. Handlers translate these into
// the HTTP error taxonomy; anything else surfaces as a generic 500.
var (
	// ErrInvalidCredentials covers both "unknown email" and "wrong
	// password" so the API surface cannot be used for account enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked is returned while locked_until is in the future.
	ErrAccountLocked = errors.New("account locked")
	// ErrAccountNotActive is returned when the account exists and the
	// credentials or session are good but the status is not ACTIVE.
	ErrAccountNotActive = errors.New("account not active")
	// ErrSessionNotFound covers unknown, revoked and expired refresh tokens.
	ErrSessionNotFound = errors.New("session not found")
	// ErrEmailExists is returned when registering an already-taken email.
	ErrEmailExists = errors.New("email already exists")
	// ErrForbidden is returned for insufficient role or blocked self-actions.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the target user does not exist.
	ErrNotFound = errors.New("user not found")
)

// PasswordPolicyError carries every strength violation at once so callers
// can render the complete list.
type PasswordPolicyError struct {
	Violations []string
}

func (e *PasswordPolicyError) Error() string {
	return "password policy: " + strings.Join(e.Violations, "; ")
}
