package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/iliyamo/user-auth-service/internal/model"
)

// ErrEmailExists is returned by Create when the normalized email is already
// taken. Handlers translate it into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// UserRepo owns all access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,full_name,role,status,failed_attempts,locked_until,last_login_at,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u           model.User
		lockedUntil sql.NullTime
		lastLogin   sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.Status,
		&u.FailedAttempts, &lockedUntil, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return model.User{}, err
	}
	if lockedUntil.Valid {
		t := lockedUntil.Time
		u.LockedUntil = &t
	}
	if lastLogin.Valid {
		t := lastLogin.Time
		u.LastLoginAt = &t
	}
	return u, nil
}

// Create inserts a user with an already-hashed password and returns its ID.
// The email is lowercase-normalized before insertion; uniqueness is enforced
// by the unique index on users.email.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash, fullName string, role model.Role, status model.Status) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, full_name, role, status) VALUES (?,?,?,?,?)",
		email, passwordHash, fullName, role, status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

// List returns users ordered by id with simple limit/offset paging.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var (
			u           model.User
			lockedUntil sql.NullTime
			lastLogin   sql.NullTime
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.Status,
			&u.FailedAttempts, &lockedUntil, &lastLogin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if lockedUntil.Valid {
			t := lockedUntil.Time
			u.LockedUntil = &t
		}
		if lastLogin.Valid {
			t := lastLogin.Time
			u.LastLoginAt = &t
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateProfile updates mutable profile fields.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, fullName string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET full_name=?, updated_at=NOW() WHERE id=?", fullName, id)
	return err
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, updated_at=NOW() WHERE id=?", passwordHash, id)
	return err
}

// UpdateRole changes the account role. Only administrative flows call this.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role model.Role) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET role=?, updated_at=NOW() WHERE id=?", role, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// UpdateStatus changes the account status. Only administrative flows call this.
func (r *UserRepo) UpdateStatus(ctx context.Context, id uint64, status model.Status) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET status=?, updated_at=NOW() WHERE id=?", status, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// Delete removes the user row. Sessions and audit rows are removed by the
// ON DELETE CASCADE foreign keys on their tables.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// RecordFailedLogin atomically increments the failed-attempt counter and,
// when the counter reaches maxAttempts, sets locked_until in the same
// statement. Doing both in one UPDATE keeps the counter correct under
// concurrent login attempts from multiple connections. It returns the new
// counter value and the lock deadline, if any.
func (r *UserRepo) RecordFailedLogin(ctx context.Context, id uint64, maxAttempts int, lockFor time.Duration) (int, *time.Time, error) {
	// locked_until is assigned before failed_attempts; MySQL evaluates SET
	// clauses left to right, so the IF sees the pre-increment counter.
	_, err := r.DB.ExecContext(ctx,
		`UPDATE users SET
			locked_until = IF(failed_attempts + 1 >= ?, DATE_ADD(UTC_TIMESTAMP(), INTERVAL ? SECOND), locked_until),
			failed_attempts = failed_attempts + 1,
			updated_at = NOW()
		WHERE id=?`,
		maxAttempts, int(lockFor.Seconds()), id)
	if err != nil {
		return 0, nil, err
	}
	var (
		attempts    int
		lockedUntil sql.NullTime
	)
	err = r.DB.QueryRowContext(ctx,
		"SELECT failed_attempts, locked_until FROM users WHERE id=? LIMIT 1", id).
		Scan(&attempts, &lockedUntil)
	if err != nil {
		return 0, nil, err
	}
	if lockedUntil.Valid {
		t := lockedUntil.Time
		return attempts, &t, nil
	}
	return attempts, nil, nil
}

// ResetLoginState clears the failure counter and lock after a successful
// login and stamps last_login_at.
func (r *UserRepo) ResetLoginState(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET failed_attempts=0, locked_until=NULL, last_login_at=UTC_TIMESTAMP(), updated_at=NOW() WHERE id=?",
		id)
	return err
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
