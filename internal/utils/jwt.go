package utils // helpers for token creation, verification and hashing

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/iliyamo/user-auth-service/internal/model"
)

// Verification failures are collapsed into two kinds: an expired token is
// reported separately so clients know to refresh, everything else (bad
// signature, wrong issuer or audience, malformed claims) is invalid.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are short-lived, stateless and carried in the Authorization
// header when calling protected endpoints.
type AccessToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// RefreshToken represents a long-lived opaque token used to obtain new
// access tokens. The Raw field is returned to the client; only a SHA-256
// hash of it is persisted in the sessions table.
type RefreshToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// AccessClaims is the decoded payload of a verified access token. Role and
// Status are a point-in-time snapshot taken at mint time; middleware always
// re-fetches the live user before trusting either.
type AccessClaims struct {
	UserID uint64
	Email  string
	Role   model.Role
	Status model.Status
}

// NewAccessToken builds and signs an HS256 JWT for a user. The token embeds
// the user id (sub), email, role and status, plus issuer, audience, expiry,
// issued-at and a uuid jti.
func NewAccessToken(secret, issuer string, u *model.User, ttl time.Duration) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub":    strconv.FormatUint(u.ID, 10),
		"email":  u.Email,
		"role":   string(u.Role),
		"status": string(u.Status),
		"iss":    issuer,
		"aud":    issuer,
		"exp":    exp.Unix(),
		"iat":    now.Unix(),
		"jti":    uuid.NewString(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// VerifyAccessToken parses and validates a signed access token. It enforces
// the HS256 signing method, the signature, the issuer/audience pair and the
// expiry, and returns the embedded claims on success.
func VerifyAccessToken(secret, issuer, raw string) (AccessClaims, error) {
	tok, err := jwt.Parse(raw,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenInvalid
			}
			return []byte(secret), nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithAudience(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return AccessClaims{}, ErrTokenExpired
		}
		return AccessClaims{}, ErrTokenInvalid
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return AccessClaims{}, ErrTokenInvalid
	}
	sub, _ := claims["sub"].(string)
	uid, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || uid == 0 {
		return AccessClaims{}, ErrTokenInvalid
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	status, _ := claims["status"].(string)
	out := AccessClaims{
		UserID: uid,
		Email:  email,
		Role:   model.Role(role),
		Status: model.Status(status),
	}
	if !out.Role.Valid() || !out.Status.Valid() {
		return AccessClaims{}, ErrTokenInvalid
	}
	return out, nil
}

// NewRefreshToken returns a cryptographically secure random token (raw) and
// its expiration time. Refresh tokens live longer than access tokens and
// are exchanged for new access tokens via the sessions table.
func NewRefreshToken(ttl time.Duration) (RefreshToken, error) {
	raw, err := randomHex(48) // 48 bytes -> 96 hex chars
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(ttl),
	}, nil
}

// HashRefreshRaw returns the SHA-256 hash of the raw refresh token as a hex
// string. Storing only the hash prevents attackers from using stolen
// database entries to refresh sessions.
func HashRefreshRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
