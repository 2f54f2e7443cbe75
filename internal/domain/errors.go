package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced entity id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized means the caller lacks the required role or
	// ownership relationship. Never retried.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidTransition means a rental is already in a terminal state.
	ErrInvalidTransition = errors.New("rental request has already been decided")
)

// ValidationError is a malformed or missing input. The message is written
// for direct display to the end user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// UpstreamError wraps a failure from the backing store or an external
// service. The cause stays available for logging via Unwrap; Display hides
// it from end users.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// Display is the user-facing message. Store and driver detail never leaks
// through it.
func (e *UpstreamError) Display() string {
	return "Something went wrong. Please try again."
}

// Upstream wraps err as an UpstreamError, passing nil through unchanged.
func Upstream(op string, err error) error {
	if err == nil {
		return nil
	}
	return &UpstreamError{Op: op, Err: err}
}

func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// StoreErr classifies an error returned by the backing store or object
// storage. Errors already carrying domain meaning pass through untouched;
// anything else is a driver or infrastructure failure and wraps as an
// UpstreamError under op.
func StoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidTransition) || IsValidation(err) || IsUpstream(err) {
		return err
	}
	return &UpstreamError{Op: op, Err: err}
}
