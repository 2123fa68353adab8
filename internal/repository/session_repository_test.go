package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "aGVhZGVy.cGF5bG9hZA.c2lnbmF0dXJl"

func TestSessionLoginStoresSignature(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO auth (token, userId) VALUES (?, ?)`)).
		WithArgs("c2lnbmF0dXJl", 42).
		WillReturnResult(sqlmock.NewResult(1, 1))

	repo := NewSessionRepo(db)
	require.NoError(t, repo.Login(context.Background(), 42, testToken))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsLoggedIn(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT userId FROM auth WHERE token=?`)).
		WithArgs("c2lnbmF0dXJl").
		WillReturnRows(sqlmock.NewRows([]string{"userId"}).AddRow(42))

	repo := NewSessionRepo(db)
	assert.True(t, repo.IsLoggedIn(context.Background(), testToken))
}

func TestIsLoggedInFalseWhenRevoked(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT userId FROM auth WHERE token=?`)).
		WillReturnRows(sqlmock.NewRows([]string{"userId"}))

	repo := NewSessionRepo(db)
	assert.False(t, repo.IsLoggedIn(context.Background(), testToken))
}

func TestIsLoggedInFalseOnStoreFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT userId FROM auth WHERE token=?`)).
		WillReturnError(errors.New("connection refused"))

	repo := NewSessionRepo(db)
	assert.False(t, repo.IsLoggedIn(context.Background(), testToken))
}

func TestLogoutIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// First logout deletes the row, second finds nothing; both succeed.
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM auth WHERE token=?`)).
		WithArgs("c2lnbmF0dXJl").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM auth WHERE token=?`)).
		WithArgs("c2lnbmF0dXJl").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewSessionRepo(db)
	assert.NoError(t, repo.Logout(context.Background(), testToken))
	assert.NoError(t, repo.Logout(context.Background(), testToken))
	assert.NoError(t, mock.ExpectationsWereMet())
}
