package apperrors

import "net/http"

// Error is a request-scoped failure with a stable kind and an HTTP status.
// Controllers render it onto the standard JSON envelope.
type Error struct {
	Status  int    `json:"-"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Kind: "not-found", Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Kind: "bad-request", Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Kind: "unauthorized", Message: message}
}

func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Kind: "internal", Message: message}
}
