// Package queue defines message payloads exchanged over the message broker.
package queue

// SecurityEvent is published whenever a security-relevant action is audited.
// It mirrors the audit row so downstream consumers (SIEM forwarders, alerting)
// can react without querying the primary database.
type SecurityEvent struct {
	AuditID   string         `json:"audit_id"`
	UserID    *uint64        `json:"user_id,omitempty"`
	Action    string         `json:"action"`
	Resource  string         `json:"resource"`
	Details   map[string]any `json:"details,omitempty"`
	IP        string         `json:"ip,omitempty"`
	UserAgent string         `json:"user_agent,omitempty"`
	CreatedAt string         `json:"created_at"`
}
