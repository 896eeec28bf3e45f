package httperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindForbidden
	KindNotFound
	KindUnavailable
)

// Error is the outcome type shared by use cases and handlers. Code is a
// stable machine-readable identifier, Message is shown to the client.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return e.Code
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, code, message string) error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func ErrValidation(code, message string) error {
	return newError(KindValidation, code, message)
}

func ErrAuth(code, message string) error {
	return newError(KindAuth, code, message)
}

func ErrForbidden(code, message string) error {
	return newError(KindForbidden, code, message)
}

func ErrNotFound(code, message string) error {
	return newError(KindNotFound, code, message)
}

func ErrUnavailable(code, message string) error {
	return newError(KindUnavailable, code, message)
}

// ErrInternal wraps an unexpected failure. The cause is logged, never
// sent to the client.
func ErrInternal(code string, err error) error {
	return &Error{Kind: KindInternal, Code: code, Message: "Internal server error", Err: err}
}

func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, code string) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
