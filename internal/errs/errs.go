// Package errs defines the coded application errors shared across components.
// Components return these at their boundaries; only the conversation layer
// turns them into user-facing messages.
package errs

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown         = "UNKNOWN"
	CodeImageDecode     = "IMAGE_DECODE"
	CodeAnalysisBackend = "ANALYSIS_BACKEND"
	CodePersistence     = "PERSISTENCE"
	CodeConfig          = "CONFIG"
	CodeTransport       = "TRANSPORT"
	CodeSession         = "SESSION"
)

// ApplicationError is implemented by every error created in this package.
type ApplicationError interface {
	error
	Code() string
	Unwrap() error
}

// Error is the basic coded application error.
type Error struct {
	code    string
	message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.message, e.err)
	}

	return e.message
}

// Code returns the error code.
func (e *Error) Code() string {
	return e.code
}

func (e *Error) Unwrap() error {
	return e.err
}

// Code returns the code of the first ApplicationError in err's chain,
// or CodeUnknown if there is none.
func Code(err error) string {
	var appErr ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Code()
	}

	return CodeUnknown
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && Code(err) == code
}

func newError(code, message string, cause error) error {
	return &Error{code: code, message: message, err: cause}
}

// NewImageDecodeError reports an unreadable or corrupt input image.
func NewImageDecodeError(message string, cause error) error {
	return newError(CodeImageDecode, message, cause)
}

// NewAnalysisBackendError reports a failed call to the remote model.
func NewAnalysisBackendError(message string, cause error) error {
	return newError(CodeAnalysisBackend, message, cause)
}

// NewPersistenceError reports a failed write to the interaction store.
func NewPersistenceError(message string, cause error) error {
	return newError(CodePersistence, message, cause)
}

// NewConfigError reports a missing or invalid configuration value.
func NewConfigError(message string, cause error) error {
	return newError(CodeConfig, message, cause)
}

// NewTransportError reports a failed chat transport operation such as a file download.
func NewTransportError(message string, cause error) error {
	return newError(CodeTransport, message, cause)
}

// NewSessionError reports a failed session store operation.
func NewSessionError(message string, cause error) error {
	return newError(CodeSession, message, cause)
}
