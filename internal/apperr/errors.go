// Package apperr defines the error kinds every handler maps onto HTTP status
// codes. Services wrap one of these sentinels with a human-readable detail.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

func Validation(detail string) error {
	return fmt.Errorf("%w: %s", ErrValidation, detail)
}

func Unauthorized(detail string) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, detail)
}

func Forbidden(detail string) error {
	return fmt.Errorf("%w: %s", ErrForbidden, detail)
}

func NotFound(detail string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, detail)
}

func Conflict(detail string) error {
	return fmt.Errorf("%w: %s", ErrConflict, detail)
}

// StatusCode maps an error to its HTTP status. Unknown errors are internal:
// transaction failures and other storage faults must not leak as client
// errors.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
