// Package errors provides the fatal error types raised during application start.
package errors

import (
	"errors"
	"fmt"
)

// Error codes as constants
const (
	ErrCodeSpawnFailure        = "SPAWN_FAILURE"
	ErrCodeRuntimeStartFailure = "RUNTIME_START_FAILURE"
)

// AppError is an unrecoverable startup error with a code and a human-readable message.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error for use with errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// SpawnFailure reports that the backend process could not be created.
func SpawnFailure(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeSpawnFailure,
		Message: message,
		Err:     err,
	}
}

// RuntimeStartFailure reports that the host runtime failed to initialise.
func RuntimeStartFailure(message string, err error) *AppError {
	return &AppError{
		Code:    ErrCodeRuntimeStartFailure,
		Message: message,
		Err:     err,
	}
}

// Wrap adds context to err. An AppError keeps its code; anything else
// becomes a RUNTIME_START_FAILURE.
func Wrap(err error, message string) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return &AppError{
			Code:    appErr.Code,
			Message: fmt.Sprintf("%s: %s", message, appErr.Message),
			Err:     err,
		}
	}

	return RuntimeStartFailure(message, err)
}

// IsSpawnFailure checks if the error is a spawn failure.
func IsSpawnFailure(err error) bool {
	return hasCode(err, ErrCodeSpawnFailure)
}

// IsRuntimeStartFailure checks if the error is a runtime start failure.
func IsRuntimeStartFailure(err error) bool {
	return hasCode(err, ErrCodeRuntimeStartFailure)
}

// Code returns the code of the outermost AppError in err's chain, or "".
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func hasCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
