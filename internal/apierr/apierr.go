package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes cover every failure class the API distinguishes. Anything else is
// surfaced as CodeStorageUnavailable by the handlers' fallback path.
const (
	CodeInvalidInput       = "invalid_input"
	CodeNotFound           = "not_found"
	CodeSelfJoin           = "self_join"
	CodeAlreadyFull        = "already_full"
	CodeDataIntegrity      = "data_integrity"
	CodeBindTransaction    = "bind_transaction"
	CodeStorageUnavailable = "storage_unavailable"
	CodeUnauthorized       = "unauthorized"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func InvalidInput(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInvalidInput, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func SelfJoin() *Error {
	return New(http.StatusBadRequest, CodeSelfJoin, errors.New("you cannot join your own wedding"))
}

func AlreadyFull() *Error {
	return New(http.StatusConflict, CodeAlreadyFull, errors.New("this wedding already has two partners"))
}

func DataIntegrity(format string, args ...interface{}) *Error {
	return New(http.StatusInternalServerError, CodeDataIntegrity, fmt.Errorf(format, args...))
}

func BindTransaction(err error) *Error {
	return New(http.StatusInternalServerError, CodeBindTransaction, fmt.Errorf("partner bind failed: %w", err))
}

func StorageUnavailable(err error) *Error {
	return New(http.StatusServiceUnavailable, CodeStorageUnavailable, fmt.Errorf("storage unavailable: %w", err))
}

func Unauthorized(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, CodeUnauthorized, fmt.Errorf(format, args...))
}

// CodeOf extracts the taxonomy code from err, or "" when err carries none.
func CodeOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// StatusOf maps err to an HTTP status, defaulting to 500 for untyped errors.
func StatusOf(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}

func Is(err error, code string) bool {
	return CodeOf(err) == code
}
