package middleware

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/pizza-order-service/internal/model"
	"github.com/iliyamo/pizza-order-service/internal/repository"
	"github.com/iliyamo/pizza-order-service/internal/utils"
)

const testSecret = "testsecret"

func newContext(t *testing.T, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/order", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sessionRepo(t *testing.T) (*repository.SessionRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return repository.NewSessionRepo(db), mock
}

func liveToken(t *testing.T) string {
	t.Helper()
	token, err := utils.NewAuthToken(testSecret, &model.User{
		ID: 7, Name: "pizza diner", Email: "d@test.com",
		Roles: []model.RoleBinding{{Role: model.RoleDiner}},
	}, 60)
	require.NoError(t, err)
	return token
}

func TestJWTAuthInjectsUser(t *testing.T) {
	sessions, mock := sessionRepo(t)
	token := liveToken(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT userId FROM auth WHERE token=?`)).
		WithArgs(utils.TokenSignature(token)).
		WillReturnRows(sqlmock.NewRows([]string{"userId"}).AddRow(7))

	c, rec := newContext(t, token)
	var seen *model.User
	handler := JWTAuth(testSecret, sessions)(func(c echo.Context) error {
		seen = AuthUser(c)
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, uint64(7), seen.ID)
	assert.True(t, seen.IsRole(model.RoleDiner))
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	sessions, _ := sessionRepo(t)
	c, rec := newContext(t, "")
	handler := JWTAuth(testSecret, sessions)(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsLoggedOutToken(t *testing.T) {
	sessions, mock := sessionRepo(t)
	token := liveToken(t)
	// Session record is gone: the token is cryptographically valid but dead.
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT userId FROM auth WHERE token=?`)).
		WillReturnRows(sqlmock.NewRows([]string{"userId"}))

	c, rec := newContext(t, token)
	handler := JWTAuth(testSecret, sessions)(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsForgedToken(t *testing.T) {
	sessions, _ := sessionRepo(t)
	forged, err := utils.NewAuthToken("other-secret", &model.User{ID: 7}, 60)
	require.NoError(t, err)

	c, rec := newContext(t, forged)
	handler := JWTAuth(testSecret, sessions)(func(c echo.Context) error {
		t.Fatal("handler must not run")
		return nil
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalJWTAuthFallsThroughAnonymously(t *testing.T) {
	sessions, _ := sessionRepo(t)
	c, rec := newContext(t, "")
	handler := OptionalJWTAuth(testSecret, sessions)(func(c echo.Context) error {
		assert.Nil(t, AuthUser(c))
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOptionalJWTAuthSetsIdentityWhenLive(t *testing.T) {
	sessions, mock := sessionRepo(t)
	token := liveToken(t)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT userId FROM auth WHERE token=?`)).
		WillReturnRows(sqlmock.NewRows([]string{"userId"}).AddRow(7))

	c, _ := newContext(t, token)
	handler := OptionalJWTAuth(testSecret, sessions)(func(c echo.Context) error {
		user := AuthUser(c)
		require.NotNil(t, user)
		assert.Equal(t, uint64(7), user.ID)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))
}
