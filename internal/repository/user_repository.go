package repository

import (
	"context"
	"database/sql"

	"roompla/internal/model"
)

// UserRepo reads account records for the login flow. The HTTP service never
// writes to the users table; provisioning happens through the useradd
// command.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a new UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// FindByID returns the user with the given identifier or ErrUserNotFound.
// A user with a NULL password hash is a valid directory-backed account.
func (r *UserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `SELECT id, display_name, contact_info, password_hash FROM users WHERE id = ?`
	var u model.User
	var hash sql.NullString
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.DisplayName, &u.ContactInfo, &hash)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if hash.Valid {
		h := hash.String
		u.PasswordHash = &h
	}
	return &u, nil
}

// Upsert creates or replaces an account. A nil PasswordHash stores NULL,
// which marks the account as directory-backed.
func (r *UserRepo) Upsert(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (id, display_name, contact_info, password_hash)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE display_name = VALUES(display_name),
			contact_info = VALUES(contact_info), password_hash = VALUES(password_hash)`
	var hash sql.NullString
	if u.PasswordHash != nil {
		hash = sql.NullString{String: *u.PasswordHash, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, q, u.ID, u.DisplayName, u.ContactInfo, hash)
	return err
}
