package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/pizza-order-service/internal/model"
	"github.com/iliyamo/pizza-order-service/internal/repository"
)

func newFranchiseHandler(t *testing.T) (*FranchiseHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewFranchiseHandler(repository.NewFranchiseRepo(db)), mock
}

func adminUser() *model.User {
	return &model.User{ID: 1, Roles: []model.RoleBinding{{Role: model.RoleAdmin}}}
}

func TestCreateFranchiseDeniedForDiner(t *testing.T) {
	h, _ := newFranchiseHandler(t)

	c, rec := newJSONContext(t, http.MethodPost, "/api/franchise", `{"name":"PizzaCorp"}`)
	c.Set("authUser", dinerUser())

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "unable to create a franchise")
}

func TestCreateFranchiseAsAdmin(t *testing.T) {
	h, mock := newFranchiseHandler(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, name FROM user WHERE email=?`)).
		WithArgs("f@test.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(9, "franchise admin"))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO franchise (name) VALUES (?)`)).
		WithArgs("PizzaCorp").
		WillReturnResult(sqlmock.NewResult(77, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO userRole`)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	c, rec := newJSONContext(t, http.MethodPost, "/api/franchise",
		`{"name":"PizzaCorp","admins":[{"email":"f@test.com"}]}`)
	c.Set("authUser", adminUser())

	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var created model.Franchise
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, uint64(77), created.ID)
	require.Len(t, created.Admins, 1)
	assert.Equal(t, uint64(9), created.Admins[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForUserHidesOthersFranchises(t *testing.T) {
	h, _ := newFranchiseHandler(t)

	// A diner asking about someone else gets an empty list, not an error.
	c, rec := newJSONContext(t, http.MethodGet, "/api/franchise/9", "")
	c.SetParamNames("userId")
	c.SetParamValues("9")
	c.Set("authUser", dinerUser())

	require.NoError(t, h.ListForUser(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestDeleteFranchiseDeniedForFranchisee(t *testing.T) {
	h, _ := newFranchiseHandler(t)

	c, rec := newJSONContext(t, http.MethodDelete, "/api/franchise/77", "")
	c.SetParamNames("franchiseId")
	c.SetParamValues("77")
	c.Set("authUser", &model.User{ID: 9,
		Roles: []model.RoleBinding{{Role: model.RoleFranchisee, ObjectID: 77}}})

	require.NoError(t, h.Delete(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "unable to delete a franchise")
}

func TestCreateStoreAsFranchisee(t *testing.T) {
	h, mock := newFranchiseHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM franchise WHERE id=?`)).
		WithArgs(77).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(77))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO store (franchiseId, name) VALUES (?, ?)`)).
		WithArgs(77, "SLC").
		WillReturnResult(sqlmock.NewResult(4, 1))

	c, rec := newJSONContext(t, http.MethodPost, "/api/franchise/77/store", `{"name":"SLC"}`)
	c.SetParamNames("franchiseId")
	c.SetParamValues("77")
	c.Set("authUser", &model.User{ID: 9,
		Roles: []model.RoleBinding{{Role: model.RoleFranchisee, ObjectID: 77}}})

	require.NoError(t, h.CreateStore(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var store model.Store
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &store))
	assert.Equal(t, uint64(4), store.ID)
	assert.Equal(t, "SLC", store.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteStoreDeniedForUnrelatedFranchisee(t *testing.T) {
	h, _ := newFranchiseHandler(t)

	c, rec := newJSONContext(t, http.MethodDelete, "/api/franchise/77/store/4", "")
	c.SetParamNames("franchiseId", "storeId")
	c.SetParamValues("77", "4")
	c.Set("authUser", &model.User{ID: 9,
		Roles: []model.RoleBinding{{Role: model.RoleFranchisee, ObjectID: 88}}})

	require.NoError(t, h.DeleteStore(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "unable to delete a store")
}

func TestDeleteStoreAsAdmin(t *testing.T) {
	h, mock := newFranchiseHandler(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM store WHERE franchiseId=? AND id=?`)).
		WithArgs(77, 4).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, rec := newJSONContext(t, http.MethodDelete, "/api/franchise/77/store/4", "")
	c.SetParamNames("franchiseId", "storeId")
	c.SetParamValues("77", "4")
	c.Set("authUser", adminUser())

	require.NoError(t, h.DeleteStore(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "store deleted")
	assert.NoError(t, mock.ExpectationsWereMet())
}
