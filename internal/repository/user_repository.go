package repository

import (
	"context"
	"database/sql"
	"strings"

	"photobooking/internal/model"
)

// UserRepo is the identity store: the source of truth for who a user is
// and which role they hold.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user and returns its ID.  The role column is always
// written empty here; roles are assigned only through UpdateRole.  A
// duplicate email maps to ErrUserExists and leaves the store unchanged.
func (r *UserRepo) Create(ctx context.Context, email, name, photoURL string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, name, photo_url, role) VALUES (?,?,?,'')",
		email, name, photoURL)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrUserExists
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
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,email,name,photo_url,role,created_at,updated_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// RoleByEmail returns the current role stored for the email.  Protected
// requests call this on every check so that role changes take effect
// immediately, regardless of what any outstanding token was issued with.
func (r *UserRepo) RoleByEmail(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var role string
	err := r.DB.QueryRowContext(ctx,
		"SELECT role FROM users WHERE email=? LIMIT 1", email).Scan(&role)
	if err == sql.ErrNoRows {
		return "", ErrUserNotFound
	}
	return role, err
}

// ListAll returns every user, newest first.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,email,name,photo_url,role,created_at,updated_at FROM users ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.PhotoURL, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateRole sets the role for a user by id.  The value is validated
// against the role enum before touching the database; unknown values map
// to ErrInvalidRole and a missing user to ErrUserNotFound.
func (r *UserRepo) UpdateRole(ctx context.Context, id uint64, role string) (int64, error) {
	if !model.ValidRole(role) {
		return 0, ErrInvalidRole
	}
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET role=? WHERE id=?", role, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if n == 0 {
		// MySQL reports zero affected rows both for a missing user and for a
		// role that already holds the requested value; only the former is an
		// error.
		var exists int
		if err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&exists); err != nil {
			if err == sql.ErrNoRows {
				return 0, ErrUserNotFound
			}
			return 0, err
		}
	}
	return n, nil
}
