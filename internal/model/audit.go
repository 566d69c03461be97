package model

import "time"

// AuditLog is an append-only record of a security-relevant event. UserID is
// nil for anonymous events such as a failed login with an unknown email.
type AuditLog struct {
	ID        string         // audit_logs.id (uuid)
	UserID    *uint64        // audit_logs.user_id (nullable)
	Action    string         // audit_logs.action
	Resource  string         // audit_logs.resource
	Details   map[string]any // audit_logs.details (stored as JSON)
	IP        string         // audit_logs.ip
	UserAgent string         // audit_logs.user_agent
	CreatedAt time.Time      // audit_logs.created_at
}

// Audit action tags.
const (
	AuditActionRegister       = "user.register"
	AuditActionLogin          = "user.login"
	AuditActionLoginFailed    = "user.login_failed"
	AuditActionLoginLocked    = "user.login_locked"
	AuditActionLogout         = "user.logout"
	AuditActionLogoutAll      = "user.logout_all"
	AuditActionTokenRefresh   = "token.refresh"
	AuditActionPasswordChange = "user.password_change"
	AuditActionProfileUpdate  = "user.profile_update"
	AuditActionRoleChange     = "user.role_change"
	AuditActionStatusChange   = "user.status_change"
	AuditActionUserDelete     = "user.delete"
)

// Audit resource tags.
const (
	AuditResourceUser    = "user"
	AuditResourceSession = "session"
	AuditResourceToken   = "token"
)
