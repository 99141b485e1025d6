package services

import (
	"net/http"

	"github.com/X-Vneer/e-commerc-api/apperrors"
)

// ServiceError represents a typed error with an HTTP status code. Message is
// an i18n catalog key, localized by the controller.
type ServiceError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func notFound(key string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusNotFound, Message: key}
}

func unprocessable(key string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnprocessableEntity, Message: key}
}

func badRequest(key string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusBadRequest, Message: key}
}

func conflict(key string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusConflict, Message: key}
}

func unauthorized() *ServiceError {
	return &ServiceError{StatusCode: http.StatusUnauthorized, Message: "unauthorized"}
}

// unexpected maps a storage error onto 400/404/409/500.
func unexpected(err error) *ServiceError {
	code, key := apperrors.Classify(err)
	return &ServiceError{StatusCode: code, Message: key, Err: err}
}
