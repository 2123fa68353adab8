package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// querier is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Repository helpers take it so resolvers can run either standalone or
// inside the caller's transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062), used to surface uniqueness conflicts as ErrConflict.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// franchiseIDByName resolves a franchise name to its id within the
// caller's transaction. Zero rows surface as ErrNotFound carrying the
// unresolved name.
func franchiseIDByName(ctx context.Context, q querier, name string) (uint64, error) {
	var id uint64
	err := q.QueryRowContext(ctx, `SELECT id FROM franchise WHERE name=? LIMIT 1`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("no such franchise %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// userIDByEmail resolves a registered user's email to its id and name
// within the caller's transaction. Zero rows surface as ErrNotFound.
func userIDByEmail(ctx context.Context, q querier, email string) (uint64, string, error) {
	var (
		id   uint64
		name string
	)
	err := q.QueryRowContext(ctx, `SELECT id, name FROM user WHERE email=? LIMIT 1`, email).Scan(&id, &name)
	if err == sql.ErrNoRows {
		return 0, "", fmt.Errorf("unknown user for franchise admin %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return 0, "", err
	}
	return id, name, nil
}

// offset converts a 1-based page into a 0-based row offset. Pages below
// 1 behave as page 1.
func offset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
