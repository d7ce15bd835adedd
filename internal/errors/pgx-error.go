package app_errors

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func MapPgxError(err error) *AppError {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return NewAppError(http.StatusConflict, ErrDuplicateKey, "conflict.duplicate_key", err).
				WithParams(map[string]any{"Constraint": pgErr.ConstraintName})
		case "23503": // foreign_key_violation
			return NewAppError(http.StatusBadRequest, ErrValidation, "invalid_request", err)
		case "23514": // check_violation
			return NewAppError(http.StatusBadRequest, ErrValidation, "invalid_request", err)
		}
	}

	return Internal(err)
}

// MapPgxNotFound übersetzt pgx.ErrNoRows in ein 404 mit notFoundKey, alles andere wie MapPgxError.
func MapPgxNotFound(err error, notFoundKey string) *AppError {
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFound(notFoundKey)
	}
	return MapPgxError(err)
}
