package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/pizza-order-service/internal/utils"
)

// SessionRepo persists the active-sessions table (`auth`). A session
// row is keyed by the signature segment of the issued token; a token
// authenticates only while its row exists, so deleting the row is the
// revocation mechanism. Multiple rows per user are allowed, one per
// concurrent login.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Login records a freshly issued token as an active session.
func (r *SessionRepo) Login(ctx context.Context, userID uint64, token string) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO auth (token, userId) VALUES (?, ?)`,
		utils.TokenSignature(token), userID)
	return err
}

// IsLoggedIn reports whether the token's session record still exists.
// It never errors: malformed tokens and store failures both read as a
// dead session.
func (r *SessionRepo) IsLoggedIn(ctx context.Context, token string) bool {
	var userID uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT userId FROM auth WHERE token=? LIMIT 1`,
		utils.TokenSignature(token)).Scan(&userID)
	return err == nil
}

// Logout deletes the session record. Deleting an absent record is a
// no-op, which makes logout idempotent.
func (r *SessionRepo) Logout(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM auth WHERE token=?`, utils.TokenSignature(token))
	return err
}
