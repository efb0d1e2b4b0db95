package render

import (
	"context"
	"errors"

	errorslib "github.com/goliatone/go-errors"
)

// ErrorKind defines render error kinds.
type ErrorKind string

const (
	KindDeserialization ErrorKind = "deserialization"
	KindInputShape      ErrorKind = "input_shape"
	KindCompilation     ErrorKind = "compilation"
	KindExport          ErrorKind = "export"
	KindCanceled        ErrorKind = "canceled"
	KindInternal        ErrorKind = "internal"
)

// Error wraps render failures with a kind.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	if e.Msg == "" {
		return e.Err.Error()
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates a new render error.
func NewError(kind ErrorKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// AsGoError maps an error into a go-errors error.
func AsGoError(err error) *errorslib.Error {
	if err == nil {
		return nil
	}

	var ge *errorslib.Error
	if errors.As(err, &ge) {
		return ge
	}

	kind := KindFromError(err)
	msg := err.Error()

	switch kind {
	case KindDeserialization:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode(string(KindDeserialization))
	case KindInputShape:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode(string(KindInputShape))
	case KindCompilation:
		return errorslib.New(msg, errorslib.CategoryValidation).WithTextCode(string(KindCompilation))
	case KindCanceled:
		return errorslib.New(msg, errorslib.CategoryOperation).WithTextCode(string(KindCanceled))
	case KindExport:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode(string(KindExport))
	default:
		return errorslib.New(msg, errorslib.CategoryInternal).WithTextCode(string(KindInternal))
	}
}

// KindFromError maps an error to its render error kind.
func KindFromError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	var renderErr *Error
	if errors.As(err, &renderErr) {
		return renderErr.Kind
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return KindCanceled
	}

	return KindInternal
}
