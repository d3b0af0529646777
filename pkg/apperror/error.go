package apperror

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    int                 `json:"code"`
	Message string              `json:"message"`
	Fields  map[string][]string `json:"errors,omitempty"`
	Err     error               `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

// Validation reports user-correctable input problems keyed by JSON field name.
func Validation(message string, fields map[string][]string) *AppError {
	return &AppError{
		Code:    http.StatusUnprocessableEntity,
		Message: message,
		Fields:  fields,
	}
}

// FieldInvalid is a Validation error flagging a single field.
func FieldInvalid(field, message string) *AppError {
	return Validation(message, map[string][]string{field: {message}})
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// InternalMsg keeps the user-facing message generic while carrying the cause for logs.
func InternalMsg(message string, err error) *AppError {
	return New(http.StatusInternalServerError, message, err)
}

// Is reports whether err carries an AppError with the given HTTP code.
func Is(err error, code int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
