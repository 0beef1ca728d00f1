// Package errors provides the coded errors shared by the CLI and the HTTP
// server.
//
// Every failure that crosses a package boundary carries a [Code]. The server
// turns the code into a status; the CLI prints [UserMessage], which drops
// the code and keeps the chain of messages:
//
//	err := errors.Wrap(errors.ErrCodeNetwork, cause, "classification request failed")
//	errors.Is(err, errors.ErrCodeNetwork) // true
//	errors.UserMessage(err)               // "classification request failed: dial tcp: ..."
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidView     Code = "INVALID_VIEW"
	ErrCodeInvalidDataset  Code = "INVALID_DATASET"
	ErrCodeInvalidResponse Code = "INVALID_RESPONSE" // LLM reply failed to parse or validate
	ErrCodeInvalidPath     Code = "INVALID_PATH"

	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Provider faults.
	ErrCodeNetwork     Code = "NETWORK_ERROR"
	ErrCodeTimeout     Code = "TIMEOUT"
	ErrCodeRateLimited Code = "RATE_LIMITED"

	ErrCodeConflict     Code = "CONFLICT" // a classification run is in flight
	ErrCodeUnauthorized Code = "UNAUTHORIZED"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error returns the code followed by the message chain.
func (e *Error) Error() string {
	return string(e.Code) + ": " + e.chain()
}

func (e *Error) Unwrap() error { return e.Cause }

// chain joins the message with the cause, rendering nested coded causes
// without their code prefix.
func (e *Error) chain() string {
	if e.Cause == nil {
		return e.Message
	}
	var inner *Error
	if errors.As(e.Cause, &inner) && inner == e.Cause {
		return e.Message + ": " + inner.chain()
	}
	return e.Message + ": " + e.Cause.Error()
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// GetCode returns the code of the first *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err for display: the message chain of the first
// *Error without code prefixes, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.chain()
	}
	return err.Error()
}
