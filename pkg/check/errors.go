package check

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingConfig matches any *MissingConfigError.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrAbsent matches any *AbsentError.
	ErrAbsent = errors.New("not found")
)

// MissingConfigError reports a required environment variable that is unset or empty.
type MissingConfigError struct {
	Key string
}

func (e *MissingConfigError) Error() string {
	return "missing environment variable " + e.Key
}

func (e *MissingConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// AbsentError reports that the thing being checked does not exist,
// e.g. a Python module that is not installed.
type AbsentError struct {
	Target string
	Reason string
}

func (e *AbsentError) Error() string {
	if e.Reason == "" {
		return e.Target + " not found"
	}
	return e.Target + ": " + e.Reason
}

func (e *AbsentError) Is(target error) bool {
	return target == ErrAbsent
}

// Absent returns an *AbsentError.
func Absent(target, reason string) error {
	return &AbsentError{Target: target, Reason: reason}
}

// Fault is an unexpected error whose type name comes from the collaborator
// rather than from Go, such as a Python exception class.
type Fault struct {
	Type string
	Msg  string
}

func (e *Fault) Error() string {
	if e.Msg == "" {
		return e.Type
	}
	return e.Type + ": " + e.Msg
}

// Faultf returns a *Fault with a formatted message.
func Faultf(typ, format string, args ...interface{}) error {
	return &Fault{Type: typ, Msg: fmt.Sprintf(format, args...)}
}

// Classify maps an error onto a Status. nil is OK.
func Classify(err error) Status {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, ErrMissingConfig), errors.Is(err, ErrAbsent):
		return StatusFail
	default:
		return StatusError
	}
}

// TypeName returns the name reported for an unexpected error: the Fault type
// if one is in the chain, otherwise the Go type of the innermost error.
func TypeName(err error) string {
	var f *Fault
	if errors.As(err, &f) {
		return f.Type
	}
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}
