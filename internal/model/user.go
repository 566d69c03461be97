package model

import "time"

// Role is the closed set of account roles. Comparisons should always go
// through these constants, never raw string literals.
type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdmin reports whether the role grants administrative access.
func (r Role) IsAdmin() bool { return r == RoleAdmin || r == RoleSuperAdmin }

// Status is the closed set of account statuses. Only ACTIVE accounts may
// log in, refresh tokens or call protected endpoints.
type Status string

const (
	StatusActive              Status = "ACTIVE"
	StatusSuspended           Status = "SUSPENDED"
	StatusPendingVerification Status = "PENDING_VERIFICATION"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusPendingVerification:
		return true
	}
	return false
}

// User represents an application user record as stored in the `users`
// table. The password hash never leaves the repository/service layers;
// handlers expose separate response types with JSON tags.
//
// Fields:
//  ID             – primary key identifier of the user.
//  Email          – unique, lowercase-normalized email address.
//  PasswordHash   – bcrypt hashed password.
//  FullName       – optional display name.
//  Role           – account role (CUSTOMER, ADMIN, SUPER_ADMIN).
//  Status         – account status (ACTIVE, SUSPENDED, PENDING_VERIFICATION).
//  FailedAttempts – consecutive failed login counter, reset on success.
//  LockedUntil    – while set and in the future, logins are rejected.
//  LastLoginAt    – timestamp of the last successful login (nullable).
//  CreatedAt      – timestamp of creation.
//  UpdatedAt      – timestamp of last update.
type User struct {
	ID             uint64     // users.id
	Email          string     // users.email
	PasswordHash   string     // users.password_hash
	FullName       string     // users.full_name
	Role           Role       // users.role
	Status         Status     // users.status
	FailedAttempts int        // users.failed_attempts
	LockedUntil    *time.Time // users.locked_until (nullable)
	LastLoginAt    *time.Time // users.last_login_at (nullable)
	CreatedAt      time.Time  // users.created_at
	UpdatedAt      time.Time  // users.updated_at
}

// Locked reports whether the account is locked out at the given instant.
func (u *User) Locked(now time.Time) bool {
	return u.LockedUntil != nil && now.Before(*u.LockedUntil)
}
