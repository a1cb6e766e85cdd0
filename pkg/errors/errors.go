package errors

import "net/http"

// AppError carries the HTTP status a failure should surface as.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

func New(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// BadRequest is a malformed request (missing or invalid fields).
func BadRequest(msg string) *AppError {
	return New(http.StatusBadRequest, msg)
}

// NotFound means a referenced entity is absent.
func NotFound(msg string) *AppError {
	return New(http.StatusNotFound, msg)
}

// Unauthorized means the caller presented no usable identity.
func Unauthorized(msg string) *AppError {
	return New(http.StatusUnauthorized, msg)
}

// Forbidden means the acting identity lacks rights on the entity.
func Forbidden(msg string) *AppError {
	return New(http.StatusForbidden, msg)
}

// InvalidOperation is a well-formed request against the wrong state:
// accepting an already-resolved connection, messaging before acceptance,
// requesting a connection with yourself.
func InvalidOperation(msg string) *AppError {
	return New(http.StatusConflict, msg)
}

func Internal(msg string) *AppError {
	return New(http.StatusInternalServerError, msg)
}

var (
	ErrInvalidRequest = BadRequest("Invalid request parameters")
	ErrUnauthorized   = Unauthorized("Unauthorized access")
	ErrForbidden      = Forbidden("Access denied")
	ErrNotFound       = NotFound("Resource not found")
	ErrInternalServer = Internal("Internal server error")
)
