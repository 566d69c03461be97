package model

import "time"

// Session models an entry in the `sessions` table. One row backs each
// outstanding refresh token. The plain token is never stored; only its
// SHA-256 hash, so a leaked table cannot be replayed against the service.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the session.
//  TokenHash – SHA-256 hex digest of the refresh token value.
//  IP        – client address captured at issue time, updated on refresh.
//  UserAgent – client user agent, updated on refresh.
//  ExpiresAt – expiration timestamp of the refresh token.
//  RevokedAt – when the session was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type Session struct {
	ID        uint64     // sessions.id
	UserID    uint64     // sessions.user_id
	TokenHash string     // sessions.token_hash
	IP        string     // sessions.ip
	UserAgent string     // sessions.user_agent
	ExpiresAt time.Time  // sessions.expires_at
	RevokedAt *time.Time // sessions.revoked_at (nullable)
	CreatedAt time.Time  // sessions.created_at
}

// Active reports whether the session backs a usable refresh token at the
// given instant.
func (s *Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}
