package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/pizza-order-service/internal/repository"
)

// writeError maps the repository error taxonomy to HTTP statuses.
// Anything outside the taxonomy is an unexpected store failure and
// renders as 500 without leaking internals.
func writeError(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := err.Error()
	switch {
	case errors.Is(err, repository.ErrBadRequest):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, repository.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, repository.ErrUpstream):
		status = http.StatusInternalServerError
	default:
		message = "internal server error"
	}
	return c.JSON(status, echo.Map{"message": message})
}
