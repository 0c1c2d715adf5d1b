package types

import (
	"errors"
	"fmt"
)

// CustomError is an error that already carries its HTTP status and type tag.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ErrorKind classifies the expected failures of a domain operation.
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindNotRegistered   ErrorKind = "notRegistered"
	KindNotFound        ErrorKind = "notFound"
	KindForbidden       ErrorKind = "forbidden"
	KindInvalidArgument ErrorKind = "invalidArgument"
	KindConflict        ErrorKind = "conflict"
)

// Sentinels for errors.Is; a DomainError matches the sentinel of its kind.
var (
	ErrUnauthenticated = &DomainError{Kind: KindUnauthenticated, Message: "authentication required"}
	ErrNotRegistered   = &DomainError{Kind: KindNotRegistered, Message: "user not registered"}
	ErrNotFound        = &DomainError{Kind: KindNotFound, Message: "not found"}
	ErrForbidden       = &DomainError{Kind: KindForbidden, Message: "forbidden"}
	ErrInvalidArgument = &DomainError{Kind: KindInvalidArgument, Message: "invalid argument"}
	ErrConflict        = &DomainError{Kind: KindConflict, Message: "conflict"}
)

// DomainError is the failure value returned by every domain operation for
// expected conditions. Anything else is an infrastructure error.
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is reports kind equality so that errors.Is(err, types.ErrForbidden) works
// for any forbidden error regardless of message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NewError builds a DomainError with a formatted message.
func NewError(kind ErrorKind, format string, args ...interface{}) *DomainError {
	return &DomainError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the kind of a domain error, or "" for other errors.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
