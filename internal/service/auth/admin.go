package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iliyamo/user-auth-service/internal/model"
)

// Administrative operations. The role middleware has already established
// that the actor is an admin; the invariants enforced here are the ones the
// gate cannot see: nobody changes their own role, nobody deactivates or
// deletes themself, and only a SUPER_ADMIN may touch another admin account.

// ListUsers returns a page of users for the admin listing.
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]model.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// GetUser fetches a single user by id.
func (s *Service) GetUser(ctx context.Context, id uint64) (model.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("load user: %w", err)
	}
	return u, nil
}

// ChangeRole sets the target's role. The actor can never change their own
// role, and promoting/demoting another admin requires SUPER_ADMIN.
func (s *Service) ChangeRole(ctx context.Context, actor model.User, targetID uint64, role model.Role, ip, userAgent string) (model.User, error) {
	if !role.Valid() {
		return model.User{}, ErrForbidden
	}
	if actor.ID == targetID {
		return model.User{}, ErrForbidden
	}
	target, err := s.GetUser(ctx, targetID)
	if err != nil {
		return model.User{}, err
	}
	if target.Role.IsAdmin() && actor.Role != model.RoleSuperAdmin {
		return model.User{}, ErrForbidden
	}
	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("update role: %w", err)
	}
	s.record(ctx, &actor.ID, model.AuditActionRoleChange, model.AuditResourceUser,
		map[string]any{"target_id": targetID, "from": string(target.Role), "to": string(role)}, ip, userAgent)
	target.Role = role
	return target, nil
}

// ChangeStatus sets the target's status. Self-deactivation is blocked, and
// a non-SUPER_ADMIN cannot suspend an admin account.
func (s *Service) ChangeStatus(ctx context.Context, actor model.User, targetID uint64, status model.Status, ip, userAgent string) (model.User, error) {
	if !status.Valid() {
		return model.User{}, ErrForbidden
	}
	if actor.ID == targetID {
		return model.User{}, ErrForbidden
	}
	target, err := s.GetUser(ctx, targetID)
	if err != nil {
		return model.User{}, err
	}
	if target.Role.IsAdmin() && actor.Role != model.RoleSuperAdmin {
		return model.User{}, ErrForbidden
	}
	if err := s.users.UpdateStatus(ctx, targetID, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, fmt.Errorf("update status: %w", err)
	}
	s.record(ctx, &actor.ID, model.AuditActionStatusChange, model.AuditResourceUser,
		map[string]any{"target_id": targetID, "from": string(target.Status), "to": string(status)}, ip, userAgent)
	target.Status = status
	return target, nil
}

// DeleteUser removes the target account and revokes its sessions first so
// no refresh token survives the delete. Self-deletion is blocked.
func (s *Service) DeleteUser(ctx context.Context, actor model.User, targetID uint64, ip, userAgent string) error {
	if actor.ID == targetID {
		return ErrForbidden
	}
	target, err := s.GetUser(ctx, targetID)
	if err != nil {
		return err
	}
	if target.Role.IsAdmin() && actor.Role != model.RoleSuperAdmin {
		return ErrForbidden
	}
	if err := s.sessions.RevokeAllForUser(ctx, targetID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	if err := s.users.Delete(ctx, targetID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.record(ctx, &actor.ID, model.AuditActionUserDelete, model.AuditResourceUser,
		map[string]any{"target_id": targetID, "email": target.Email}, ip, userAgent)
	return nil
}
