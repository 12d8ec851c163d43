// Package errs defines the error kinds shared by the rule engine, the codec
// registry and the transform pipeline.
package errs

import (
	"errors"
	"fmt"
)

// Kind tags an Error so callers can tell misuse from policy rejection.
type Kind int

const (
	// InvalidValue marks a configuration error: bad rule arguments, unknown
	// condition keys, unsupported formats.
	InvalidValue Kind = iota + 1
	// RuleViolation marks a request rejected by an assertor action.
	RuleViolation
	// IO marks a failure of the underlying read/write primitive.
	IO
)

func (k Kind) String() string {
	switch k {
	case InvalidValue:
		return "InvalidValue"
	case RuleViolation:
		return "RuleViolation"
	case IO:
		return "IO"
	default:
		return "Unknown"
	}
}

// Error is the tagged error type returned across the module.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Msg == "" {
			return e.Err.Error()
		}
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidValuef builds an InvalidValue error.
func InvalidValuef(format string, args ...any) error {
	return &Error{Kind: InvalidValue, Msg: fmt.Sprintf(format, args...)}
}

// Violationf builds a RuleViolation error.
func Violationf(format string, args ...any) error {
	return &Error{Kind: RuleViolation, Msg: fmt.Sprintf(format, args...)}
}

// WrapIO tags err as an IO error. Nil stays nil.
func WrapIO(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: IO, Msg: fmt.Sprintf(format, args...), Err: err}
}

// Prepend adds context to an InvalidValue error and keeps its kind. Other
// errors are returned untouched.
func Prepend(msg string, err error) error {
	var e *Error
	if errors.As(err, &e) && e.Kind == InvalidValue {
		return &Error{Kind: InvalidValue, Msg: msg + ": " + e.Error()}
	}
	return err
}

// KindOf reports the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsInvalidValue(err error) bool { return KindOf(err) == InvalidValue }

func IsViolation(err error) bool { return KindOf(err) == RuleViolation }

func IsIO(err error) bool { return KindOf(err) == IO }
