package domain

import "errors"

type ErrorCode string

const (
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeBadRequest      ErrorCode = "BAD_REQUEST"
	ErrorCodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	ErrorCodeForbidden       ErrorCode = "FORBIDDEN"
	ErrorCodeUpstream        ErrorCode = "UPSTREAM"
	ErrorCodeInternal        ErrorCode = "INTERNAL"
)

var ErrNotFound = errors.New("resource not found")

type DomainError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func NewDomainError(code ErrorCode, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func WrapDomainError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{Code: code, Message: message, Err: err}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}
