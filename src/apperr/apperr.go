// Package apperr defines the error kinds shared by the download and upload runs.
package apperr

import (
	"errors"
	"fmt"
)

// Error kinds. Use errors.Is to classify an error returned by this module.
var (
	ErrConfig          = errors.New("configuration error")
	ErrNetwork         = errors.New("network error")
	ErrFileSystem      = errors.New("file system error")
	ErrRemoteRejection = errors.New("remote rejection")
)

// Error attaches a kind and the failing operation to an underlying error.
type Error struct {
	Kind error
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Kind)
	}

	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}

	return []error{e.Kind, e.Err}
}

// Config reports a missing or invalid configuration value.
func Config(op, format string, args ...any) error {
	return &Error{Kind: ErrConfig, Op: op, Err: fmt.Errorf(format, args...)}
}

// Network wraps a failed call to a remote collaborator.
func Network(op string, err error) error {
	return &Error{Kind: ErrNetwork, Op: op, Err: err}
}

// FileSystem wraps a failed local file operation.
func FileSystem(op string, err error) error {
	return &Error{Kind: ErrFileSystem, Op: op, Err: err}
}

// RemoteRejection reports a non-success response carrying an error payload.
func RemoteRejection(op string, status int, message string) error {
	return &Error{Kind: ErrRemoteRejection, Op: op, Err: fmt.Errorf("status %d: %s", status, message)}
}

// UnusableResponse reports a successful response whose content cannot be acted on.
func UnusableResponse(op string, err error) error {
	return &Error{Kind: ErrRemoteRejection, Op: op, Err: err}
}
