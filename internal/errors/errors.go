package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies an application error. Handlers and the HTTP error handler
// switch on Kind instead of inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

var (
	// ErrNotFound is returned by repositories when no row matches.
	ErrNotFound = stderrors.New("record not found")
	// ErrConflict is returned by repositories on unique constraint violations.
	ErrConflict = stderrors.New("record conflict")
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the tagged error carried from services to the HTTP layer.
type Error struct {
	Kind    Kind
	Message string
	Code    string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation builds a client-correctable error with per-field details.
func Validation(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidation, Message: message, Code: "INVALID_DATA", Fields: fields}
}

// Field is a shorthand for a single-field validation error.
func Field(field, message string) *Error {
	return Validation("Invalid data", FieldError{Field: field, Message: message})
}

// Unauthorized is the uniform authentication failure. It never says which check failed.
func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized, Message: "Unauthorized", Code: "UNAUTHORIZED"}
}

// Internal wraps an unexpected error behind a generic message.
func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Code: "REQUEST_FAILED", Err: err}
}

// Fail keeps validation and authorization errors as they are and collapses
// anything else, data-layer misses included, into a generic failure.
func Fail(err error, message string) *Error {
	var appErr *Error
	if stderrors.As(err, &appErr) && (appErr.Kind == KindValidation || appErr.Kind == KindUnauthorized) {
		return appErr
	}
	kind := KindInternal
	switch {
	case stderrors.Is(err, ErrNotFound):
		kind = KindNotFound
	case stderrors.Is(err, ErrConflict):
		kind = KindConflict
	}
	return &Error{Kind: kind, Message: message, Code: "REQUEST_FAILED", Err: err}
}

// KindOf reports the Kind of err, KindInternal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	var appErr *Error
	return stderrors.As(err, &appErr) && appErr.Kind == kind
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    string       `json:"code"`
	Details []FieldError `json:"details,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Details    []FieldError
}

func (e *HTTPError) Error() string {
	return e.Message
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// StatusCode maps a Kind to its HTTP status. Not-found and conflict are
// deliberately indistinguishable from other failures on the wire.
func StatusCode(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// MapErrorToHTTP maps application errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	var appErr *Error
	if !stderrors.As(err, &appErr) {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			Code:       "INTERNAL_ERROR",
		}
	}
	return &HTTPError{
		StatusCode: StatusCode(appErr.Kind),
		Message:    appErr.Message,
		Code:       appErr.Code,
		Details:    appErr.Fields,
	}
}
