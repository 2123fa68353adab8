package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pizza-order-service/internal/model"
	"github.com/iliyamo/pizza-order-service/internal/repository"
	"github.com/iliyamo/pizza-order-service/internal/utils"
)

// authUserKey is the context key under which the authenticated user is
// stored for handlers.
const authUserKey = "authUser"

// JWTAuth returns an Echo middleware that validates a Bearer session
// token and injects the identity it carries into the request context.
// A token authenticates only while (a) its signature verifies and it is
// unexpired and (b) its session record still exists; logging out kills
// the session record and therefore the token, regardless of its
// remaining cryptographic validity.
func JWTAuth(secret string, sessions *repository.SessionRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			user, err := utils.ParseAuthToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			if !sessions.IsLoggedIn(c.Request().Context(), raw) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"message": "unauthorized"})
			}
			c.Set(authUserKey, user)
			return next(c)
		}
	}
}

// OptionalJWTAuth is JWTAuth for routes that serve both anonymous and
// authenticated callers: a valid, live token sets the identity, and
// anything else falls through to the handler with no identity at all.
func OptionalJWTAuth(secret string, sessions *repository.SessionRepo) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if raw, ok := bearerToken(c); ok {
				if user, err := utils.ParseAuthToken(secret, raw); err == nil &&
					sessions.IsLoggedIn(c.Request().Context(), raw) {
					c.Set(authUserKey, user)
				}
			}
			return next(c)
		}
	}
}

// AuthUser returns the authenticated user injected by JWTAuth, or nil
// when the request is anonymous.
func AuthUser(c echo.Context) *model.User {
	if u, ok := c.Get(authUserKey).(*model.User); ok {
		return u
	}
	return nil
}

// BearerToken exposes the raw token of the current request so handlers
// like logout can act on the exact credential presented.
func BearerToken(c echo.Context) string {
	raw, _ := bearerToken(c)
	return raw
}

func bearerToken(c echo.Context) (string, bool) {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(auth, "Bearer "), true
}
