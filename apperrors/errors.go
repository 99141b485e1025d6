package apperrors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Postgres SQLSTATE codes the API maps to client errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgSerialization       = "40001"
	pgDeadlockDetected    = "40P01"
)

// Error is an application error carrying an HTTP status and a message key.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error.
func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// Classify maps an arbitrary error to a status code and message key.
// *Error values keep their own code and key.
func Classify(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code, appErr.Message
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return http.StatusConflict, "conflict"
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return http.StatusNotFound, "not_found"
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return http.StatusConflict, "conflict"
		case pgForeignKeyViolation, pgNotNullViolation:
			return http.StatusBadRequest, "bad_request"
		case pgSerialization, pgDeadlockDetected:
			return http.StatusConflict, "conflict"
		}
	}

	return http.StatusInternalServerError, "internal_server_error"
}
