package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/user-auth-service/internal/model"
)

// SessionRepo persists the sessions backing refresh tokens. Rows are keyed
// by the SHA-256 hash of the token value; the raw token never touches the
// database.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Store inserts a session row for a freshly issued refresh token.
func (r *SessionRepo) Store(ctx context.Context, userID uint64, tokenHash, ip, userAgent string, exp time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO sessions (user_id, token_hash, ip, user_agent, expires_at) VALUES (?,?,?,?,?)",
		userID, tokenHash, ip, userAgent, exp)
	return err
}

// FindActive returns the session for a token hash if it is neither revoked
// nor expired. Revoked and expired rows report sql.ErrNoRows so callers
// cannot distinguish the two, matching the single SESSION_NOT_FOUND surface.
func (r *SessionRepo) FindActive(ctx context.Context, tokenHash string) (model.Session, error) {
	var (
		s         model.Session
		revokedAt sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token_hash, ip, user_agent, expires_at, revoked_at, created_at FROM sessions WHERE token_hash=? LIMIT 1",
		tokenHash).Scan(&s.ID, &s.UserID, &s.TokenHash, &s.IP, &s.UserAgent, &s.ExpiresAt, &revokedAt, &s.CreatedAt)
	if err != nil {
		return model.Session{}, err
	}
	if revokedAt.Valid {
		return model.Session{}, sql.ErrNoRows
	}
	if time.Now().UTC().After(s.ExpiresAt) {
		return model.Session{}, sql.ErrNoRows
	}
	return s, nil
}

// Touch opportunistically updates the client metadata stored on a session.
// Refresh calls use it so the row reflects the device last seen.
func (r *SessionRepo) Touch(ctx context.Context, id uint64, ip, userAgent string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET ip=?, user_agent=? WHERE id=?", ip, userAgent, id)
	return err
}

// RevokeByHash marks a session as revoked. No-op when the hash is unknown
// or already revoked, so logout stays idempotent.
func (r *SessionRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET revoked_at=NOW() WHERE token_hash=? AND revoked_at IS NULL",
		tokenHash)
	return err
}

// RevokeAllForUser revokes every active session of a user. Used on password
// change, "log out everywhere" and account deletion.
func (r *SessionRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE sessions SET revoked_at=NOW() WHERE user_id=? AND revoked_at IS NULL",
		userID)
	return err
}

// ListActiveForUser returns the user's live sessions, newest first.
func (r *SessionRepo) ListActiveForUser(ctx context.Context, userID uint64) ([]model.Session, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, user_id, token_hash, ip, user_agent, expires_at, revoked_at, created_at FROM sessions WHERE user_id=? AND revoked_at IS NULL AND expires_at > UTC_TIMESTAMP() ORDER BY created_at DESC",
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Session
	for rows.Next() {
		var (
			s         model.Session
			revokedAt sql.NullTime
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.TokenHash, &s.IP, &s.UserAgent, &s.ExpiresAt, &revokedAt, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteExpired removes rows whose tokens can never be used again. Called
// opportunistically; correctness never depends on it.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at < UTC_TIMESTAMP() OR revoked_at IS NOT NULL")
	return err
}
