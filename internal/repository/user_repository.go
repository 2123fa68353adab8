package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iliyamo/pizza-order-service/internal/model"
	"github.com/iliyamo/pizza-order-service/internal/utils"
)

// UserRepo owns the `user` and `userRole` tables.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Register hashes the password and inserts the user together with all
// of its role bindings in a single transaction. Franchisee bindings
// name a franchise; the name is resolved to an id inside the same
// transaction and the whole operation fails with ErrNotFound when the
// franchise does not exist. The returned user carries its generated id
// and an empty password.
func (r *UserRepo) Register(ctx context.Context, u *model.User, cost int) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	hash, err := utils.HashPassword(u.Password, cost)
	if err != nil {
		return nil, err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO user (name, email, password) VALUES (?, ?, ?)`,
		u.Name, email, hash)
	if err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("email already registered: %w", ErrConflict)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	roles := make([]model.RoleBinding, len(u.Roles))
	for i, rb := range u.Roles {
		var objectID uint64
		if rb.Role == model.RoleFranchisee {
			objectID, err = franchiseIDByName(ctx, tx, rb.Object)
			if err != nil {
				return nil, err
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO userRole (userId, role, objectId) VALUES (?, ?, ?)`,
			id, rb.Role, objectID); err != nil {
			return nil, err
		}
		roles[i] = model.RoleBinding{Role: rb.Role, Object: rb.Object, ObjectID: objectID}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.User{ID: uint64(id), Name: u.Name, Email: email, Roles: roles}, nil
}

// Authenticate fetches a user by email and verifies the supplied
// password against the stored hash. Any mismatch, including an unknown
// email, fails uniformly with ErrUnauthorized.
func (r *UserRepo) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var (
		u    model.User
		hash string
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, email, password FROM user WHERE email=? LIMIT 1`,
		email).Scan(&u.ID, &u.Name, &u.Email, &hash)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("unknown user: %w", ErrUnauthorized)
	}
	if err != nil {
		return nil, err
	}
	if !utils.VerifyPassword(hash, password) {
		return nil, fmt.Errorf("unknown user: %w", ErrUnauthorized)
	}
	if u.Roles, err = r.rolesFor(ctx, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user with its role bindings, password cleared.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, email FROM user WHERE id=? LIMIT 1`,
		id).Scan(&u.ID, &u.Name, &u.Email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no such user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if u.Roles, err = r.rolesFor(ctx, u.ID); err != nil {
		return nil, err
	}
	return &u, nil
}

// Update changes only the supplied fields of a user. Empty email or
// password leave the stored value untouched; a new password is
// re-hashed. The updated user is read back with its roles. Existing
// session tokens remain valid.
func (r *UserRepo) Update(ctx context.Context, id uint64, email, password string, cost int) (*model.User, error) {
	sets := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if email != "" {
		sets = append(sets, "email=?")
		args = append(args, strings.ToLower(strings.TrimSpace(email)))
	}
	if password != "" {
		hash, err := utils.HashPassword(password, cost)
		if err != nil {
			return nil, err
		}
		sets = append(sets, "password=?")
		args = append(args, hash)
	}
	if len(sets) > 0 {
		args = append(args, id)
		_, err := r.DB.ExecContext(ctx,
			`UPDATE user SET `+strings.Join(sets, ", ")+` WHERE id=?`, args...)
		if err != nil {
			if isDuplicate(err) {
				return nil, fmt.Errorf("email already registered: %w", ErrConflict)
			}
			return nil, err
		}
	}
	return r.GetByID(ctx, id)
}

// rolesFor loads the user's role bindings in insertion order.
func (r *UserRepo) rolesFor(ctx context.Context, userID uint64) ([]model.RoleBinding, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT role, objectId FROM userRole WHERE userId=?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	roles := []model.RoleBinding{}
	for rows.Next() {
		var rb model.RoleBinding
		if err := rows.Scan(&rb.Role, &rb.ObjectID); err != nil {
			return nil, err
		}
		roles = append(roles, rb)
	}
	return roles, rows.Err()
}
