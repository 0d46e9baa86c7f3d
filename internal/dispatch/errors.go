package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"
)

// ErrorKind classifies a failed dispatch.
type ErrorKind string

const (
	UnknownOperation ErrorKind = "UnknownOperation"
	InvalidArguments ErrorKind = "InvalidArguments"
	BackendError     ErrorKind = "BackendError"
)

// Error is the error envelope returned by every failed dispatch.
type Error struct {
	Kind    ErrorKind `json:"code"`
	Message string    `json:"message"`
	// Fields names the offending arguments for InvalidArguments.
	Fields []string `json:"fields,omitempty"`
	// BackendCode is the service error code when the backend reported one.
	BackendCode string `json:"backendCode,omitempty"`

	err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// KindOf returns the kind of a dispatch error, or "" for any other error.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

func unknownOperation(name string) *Error {
	return &Error{
		Kind:    UnknownOperation,
		Message: fmt.Sprintf("unknown operation %q", name),
	}
}

func missingArguments(names []string) *Error {
	return &Error{
		Kind:    InvalidArguments,
		Message: "missing required argument(s): " + strings.Join(names, ", "),
		Fields:  names,
	}
}

func invalidArgument(name, format string, args ...any) *Error {
	return &Error{
		Kind:    InvalidArguments,
		Message: fmt.Sprintf("invalid argument %s: %s", name, fmt.Sprintf(format, args...)),
		Fields:  []string{name},
	}
}

// backendFailure relays the backend's own error text, without the operation
// prefixes added while the error travelled up, and attaches the service error
// code when present.
func backendFailure(err error) *Error {
	e := &Error{
		Kind: BackendError,
		err:  err,
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		e.Message = apiErr.Error()
		e.BackendCode = apiErr.ErrorCode()
		return e
	}
	root := err
	for next := errors.Unwrap(root); next != nil; next = errors.Unwrap(root) {
		root = next
	}
	e.Message = root.Error()
	return e
}
