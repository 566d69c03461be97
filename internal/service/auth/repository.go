package auth

import (
	"context"
	"time"

	"github.com/iliyamo/user-auth-service/internal/model"
)

// UserStore is the narrow credential-store interface the service depends
// on. *repository.UserRepo satisfies it; tests substitute an in-memory fake.
// Lookups report sql.ErrNoRows when no row matches. Read-then-write account
// mutations (the lockout counter) are expressed as single atomic statements
// at the store, never as separate read+write calls here.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, fullName string, role model.Role, status model.Status) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	List(ctx context.Context, limit, offset int) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uint64, fullName string) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	UpdateRole(ctx context.Context, id uint64, role model.Role) error
	UpdateStatus(ctx context.Context, id uint64, status model.Status) error
	Delete(ctx context.Context, id uint64) error
	RecordFailedLogin(ctx context.Context, id uint64, maxAttempts int, lockFor time.Duration) (int, *time.Time, error)
	ResetLoginState(ctx context.Context, id uint64) error
}

// SessionStore is the narrow session-store interface backing refresh
// tokens. *repository.SessionRepo satisfies it.
type SessionStore interface {
	Store(ctx context.Context, userID uint64, tokenHash, ip, userAgent string, exp time.Time) error
	FindActive(ctx context.Context, tokenHash string) (model.Session, error)
	Touch(ctx context.Context, id uint64, ip, userAgent string) error
	RevokeByHash(ctx context.Context, tokenHash string) error
	RevokeAllForUser(ctx context.Context, userID uint64) error
	ListActiveForUser(ctx context.Context, userID uint64) ([]model.Session, error)
}

// Recorder receives security events. Implementations must be best-effort
// and must never fail the calling operation. *audit.Recorder satisfies it.
type Recorder interface {
	Record(ctx context.Context, userID *uint64, action, resource string, details map[string]any, ip, userAgent string)
}
