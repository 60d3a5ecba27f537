package store

import "fmt"

// RecoverableError is an error that leaves the store usable. The in-memory settings remain valid, but
// they may not match what is persisted. The storage error that caused it, if any, can be reached with
// errors.Is and errors.As.
type RecoverableError struct {
	message string
	cause   error
}

// Error returns the error message for a RecoverableError, followed by the message of its cause.
func (e RecoverableError) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

// Unwrap returns the error that caused the RecoverableError.
func (e RecoverableError) Unwrap() error {
	return e.cause
}

// NewRecoverableError returns a new error that is marked as being recoverable.
func NewRecoverableError(formatString string, a ...interface{}) RecoverableError {
	return RecoverableError{message: fmt.Sprintf(formatString, a...)}
}

// WrapRecoverableError marks the failure of an underlying operation as being recoverable.
func WrapRecoverableError(cause error, formatString string, a ...interface{}) RecoverableError {
	return RecoverableError{message: fmt.Sprintf(formatString, a...), cause: cause}
}

// UnrecoverableError is an error that retrying the same operation will not fix, such as an intent that
// refers to a setting that doesn't exist.
type UnrecoverableError struct {
	message string
}

// Error returns the error message for an UnrecoverableError.
func (e UnrecoverableError) Error() string {
	return e.message
}

// NewUnrecoverableError returns a new error that is marked as being unrecoverable.
func NewUnrecoverableError(formatString string, a ...interface{}) UnrecoverableError {
	return UnrecoverableError{message: fmt.Sprintf(formatString, a...)}
}
