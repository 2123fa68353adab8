// Package repository defines error values that are reused across the
// persistence layer and translated to HTTP statuses by the handlers.
// Every boundary crossing wraps one of these sentinels so callers can
// classify failures with errors.Is instead of matching message strings.
package repository

import "errors"

// ErrBadRequest is returned when input fails local validation before
// any statement runs. Handlers translate it into HTTP 400.
var ErrBadRequest = errors.New("bad request")

// ErrUnauthorized is returned for bad credentials and for missing,
// invalid, expired or revoked tokens. Handlers translate it into 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden is returned when an authenticated caller is not
// permitted to act on the target resource. Handlers translate it into 403.
var ErrForbidden = errors.New("forbidden")

// ErrNotFound is returned when a referenced entity (franchise, admin
// email, store) does not exist. Handlers translate it into 404.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned on uniqueness violations such as a duplicate
// email or franchise name. Handlers translate it into 409.
var ErrConflict = errors.New("conflict")

// ErrUpstream is returned when the external factory call fails after
// the order has been persisted. Handlers translate it into 500 while
// telling the caller fulfillment did not complete.
var ErrUpstream = errors.New("upstream failure")
