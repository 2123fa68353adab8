package utils // package utils provides helper functions for token creation and hashing

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/iliyamo/pizza-order-service/internal/model"
)

// ErrInvalidToken is returned when a token fails parsing, signature
// verification or expiry checks. Callers treat it as unauthorized.
var ErrInvalidToken = errors.New("invalid token")

// UserClaims is the payload carried by every session token: the user's
// identity plus all role bindings, so the authorization policy can run
// without a user lookup. Registered claims hold sub, iat and exp.
type UserClaims struct {
	Name  string              `json:"name"`
	Email string              `json:"email"`
	Roles []model.RoleBinding `json:"roles"`
	jwt.RegisteredClaims
}

// NewAuthToken builds and signs an HS256 JWT for a user. The subject is
// the user id, roles are embedded as-is (franchisee bindings already
// resolved to ids) and the expiry is now+ttlMin minutes.
func NewAuthToken(secret string, u *model.User, ttlMin int) (string, error) {
	now := time.Now().UTC()
	claims := UserClaims{
		Name:  u.Name,
		Email: u.Email,
		Roles: u.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(ttlMin) * time.Minute)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// ParseAuthToken verifies the signature and expiry of a token and
// reconstructs the identity it carries. Only HMAC-signed tokens are
// accepted; anything else fails with ErrInvalidToken. Session liveness
// is a separate check owned by the session repository.
func ParseAuthToken(secret, token string) (*model.User, error) {
	claims := &UserClaims{}
	tok, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &model.User{
		ID:    id,
		Name:  claims.Name,
		Email: claims.Email,
		Roles: claims.Roles,
	}, nil
}

// TokenSignature returns the last dot-separated segment of a token
// string without verifying anything. The segment is used purely as the
// storage key of the active-sessions table, never as a trust decision.
// A malformed token yields whatever trails the last dot (possibly the
// whole string), which simply never matches a stored session.
func TokenSignature(token string) string {
	parts := strings.Split(token, ".")
	return parts[len(parts)-1]
}
