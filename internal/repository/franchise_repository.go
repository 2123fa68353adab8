package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/pizza-order-service/internal/model"
)

// FranchiseRepo owns the `franchise` and `store` tables plus the
// franchisee role bindings that tie users to franchises.
type FranchiseRepo struct{ DB *sql.DB }

func NewFranchiseRepo(db *sql.DB) *FranchiseRepo { return &FranchiseRepo{DB: db} }

// Create resolves every admin email to a registered user, inserts the
// franchise row and one franchisee binding per admin, all in one
// transaction. An unregistered admin email fails the whole operation
// with ErrNotFound; a duplicate franchise name with ErrConflict.
func (r *FranchiseRepo) Create(ctx context.Context, f *model.Franchise) (*model.Franchise, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	admins := make([]model.User, len(f.Admins))
	for i, a := range f.Admins {
		id, name, err := userIDByEmail(ctx, tx, a.Email)
		if err != nil {
			return nil, err
		}
		admins[i] = model.User{ID: id, Name: name, Email: a.Email}
	}

	res, err := tx.ExecContext(ctx, `INSERT INTO franchise (name) VALUES (?)`, f.Name)
	if err != nil {
		if isDuplicate(err) {
			return nil, fmt.Errorf("franchise name already taken: %w", ErrConflict)
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	for _, a := range admins {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO userRole (userId, role, objectId) VALUES (?, ?, ?)`,
			a.ID, model.RoleFranchisee, id); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &model.Franchise{ID: uint64(id), Name: f.Name, Admins: admins, Stores: []model.Store{}}, nil
}

// Delete removes the franchisee role bindings, the stores and finally
// the franchise row in one transaction; any failure rolls the whole
// deletion back. Orders placed against the deleted stores are
// historical records and are left untouched.
func (r *FranchiseRepo) Delete(ctx context.Context, franchiseID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM userRole WHERE role=? AND objectId=?`,
		model.RoleFranchisee, franchiseID); err != nil {
		return fmt.Errorf("unable to delete franchise role bindings: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM store WHERE franchiseId=?`, franchiseID); err != nil {
		return fmt.Errorf("unable to delete franchise stores: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM franchise WHERE id=?`, franchiseID); err != nil {
		return fmt.Errorf("unable to delete franchise: %w", err)
	}
	return tx.Commit()
}

// List returns all franchises with their stores. A system admin caller
// additionally sees each franchise's admins and per-store revenue;
// everyone else gets names only. authUser may be nil (anonymous).
func (r *FranchiseRepo) List(ctx context.Context, authUser *model.User) ([]model.Franchise, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT id, name FROM franchise ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	franchises := []model.Franchise{}
	for rows.Next() {
		var f model.Franchise
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, err
		}
		franchises = append(franchises, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	enrich := authUser != nil && authUser.IsRole(model.RoleAdmin)
	for i := range franchises {
		if enrich {
			if err := r.hydrate(ctx, &franchises[i]); err != nil {
				return nil, err
			}
		} else if err := r.storesLite(ctx, &franchises[i]); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

// ListForUser returns the franchises where the user holds a franchisee
// binding, fully hydrated with admins and store revenue.
func (r *FranchiseRepo) ListForUser(ctx context.Context, userID uint64) ([]model.Franchise, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT f.id, f.name FROM franchise f
		 JOIN userRole ur ON ur.objectId = f.id
		 WHERE ur.role=? AND ur.userId=?
		 ORDER BY f.id`,
		model.RoleFranchisee, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	franchises := []model.Franchise{}
	for rows.Next() {
		var f model.Franchise
		if err := rows.Scan(&f.ID, &f.Name); err != nil {
			return nil, err
		}
		franchises = append(franchises, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range franchises {
		if err := r.hydrate(ctx, &franchises[i]); err != nil {
			return nil, err
		}
	}
	return franchises, nil
}

// CreateStore inserts a store under an existing franchise. A missing
// franchise surfaces as ErrNotFound rather than a dangling row.
func (r *FranchiseRepo) CreateStore(ctx context.Context, franchiseID uint64, s *model.Store) (*model.Store, error) {
	var exists uint64
	err := r.DB.QueryRowContext(ctx,
		`SELECT id FROM franchise WHERE id=? LIMIT 1`, franchiseID).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no such franchise: %w", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO store (franchiseId, name) VALUES (?, ?)`, franchiseID, s.Name)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.Store{ID: uint64(id), FranchiseID: franchiseID, Name: s.Name}, nil
}

// DeleteStore removes a store. The store's orders are kept; they are
// historical records. Deleting an absent store is a no-op.
func (r *FranchiseRepo) DeleteStore(ctx context.Context, franchiseID, storeID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`DELETE FROM store WHERE franchiseId=? AND id=?`, franchiseID, storeID)
	if err != nil {
		return fmt.Errorf("unable to delete store: %w", err)
	}
	return nil
}

// hydrate attaches the franchise's admins and its stores with computed
// revenue. Revenue is summed in SQL over the DECIMAL price column.
func (r *FranchiseRepo) hydrate(ctx context.Context, f *model.Franchise) error {
	aRows, err := r.DB.QueryContext(ctx,
		`SELECT u.id, u.name, u.email FROM userRole ur
		 JOIN user u ON u.id = ur.userId
		 WHERE ur.role=? AND ur.objectId=?
		 ORDER BY u.id`,
		model.RoleFranchisee, f.ID)
	if err != nil {
		return err
	}
	defer aRows.Close()

	f.Admins = []model.User{}
	for aRows.Next() {
		var u model.User
		if err := aRows.Scan(&u.ID, &u.Name, &u.Email); err != nil {
			return err
		}
		f.Admins = append(f.Admins, u)
	}
	if err := aRows.Err(); err != nil {
		return err
	}

	sRows, err := r.DB.QueryContext(ctx,
		`SELECT s.id, s.name, COALESCE(SUM(oi.price), 0)
		 FROM store s
		 LEFT JOIN dinerOrder o ON o.storeId = s.id AND o.franchiseId = s.franchiseId
		 LEFT JOIN orderItem oi ON oi.orderId = o.id
		 WHERE s.franchiseId=?
		 GROUP BY s.id, s.name
		 ORDER BY s.id`, f.ID)
	if err != nil {
		return err
	}
	defer sRows.Close()

	f.Stores = []model.Store{}
	for sRows.Next() {
		var s model.Store
		if err := sRows.Scan(&s.ID, &s.Name, &s.TotalRevenue); err != nil {
			return err
		}
		f.Stores = append(f.Stores, s)
	}
	return sRows.Err()
}

// storesLite attaches store ids and names only, the shape shown to
// non-admin callers.
func (r *FranchiseRepo) storesLite(ctx context.Context, f *model.Franchise) error {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name FROM store WHERE franchiseId=? ORDER BY id`, f.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	f.Stores = []model.Store{}
	for rows.Next() {
		var s model.Store
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return err
		}
		f.Stores = append(f.Stores, s)
	}
	return rows.Err()
}
