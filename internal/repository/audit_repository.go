package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/iliyamo/user-auth-service/internal/model"
)

// AuditRepo appends rows to the 'audit_logs' table. The table is
// append-only; there are no update or delete paths.
type AuditRepo struct{ DB *sql.DB }

func NewAuditRepo(db *sql.DB) *AuditRepo { return &AuditRepo{DB: db} }

// Insert appends one audit row. Details are stored as a JSON column.
func (r *AuditRepo) Insert(ctx context.Context, entry model.AuditLog) error {
	var details []byte
	if entry.Details != nil {
		b, err := json.Marshal(entry.Details)
		if err != nil {
			return err
		}
		details = b
	}
	var userID any
	if entry.UserID != nil {
		userID = *entry.UserID
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO audit_logs (id, user_id, action, resource, details, ip, user_agent) VALUES (?,?,?,?,?,?,?)",
		entry.ID, userID, entry.Action, entry.Resource, details, entry.IP, entry.UserAgent)
	return err
}
