package check

import (
	"fmt"
	"regexp"
	"strings"
)

// Fail sets the result to failed status with a detail message.
func (r *Result) Fail(detail string, err error) Result {
	r.Status = StatusFail
	r.Details = append(r.Details, detail)
	r.Err = err
	return *r
}

// Failf sets the result to failed status with a formatted detail message.
func (r *Result) Failf(format string, args ...interface{}) Result {
	return r.Fail(fmt.Sprintf(format, args...), fmt.Errorf(format, args...))
}

// Error sets the result to error status. The detail line carries the error's
// type name so operators can tell a syntax error from a timeout.
func (r *Result) Error(err error) Result {
	r.Status = StatusError
	detail := err.Error()
	if name := TypeName(err); !strings.HasPrefix(detail, name) {
		detail = name + ": " + detail
	}
	r.Details = append(r.Details, detail)
	r.Err = err
	return *r
}

// Complete records err on the result according to its classification.
// A nil err marks the result OK.
func (r *Result) Complete(err error) Result {
	switch Classify(err) {
	case StatusOK:
		r.Status = StatusOK
		return *r
	case StatusFail:
		return r.Fail(err.Error(), err)
	default:
		return r.Error(err)
	}
}

// AddDetail appends a detail line to the result.
func (r *Result) AddDetail(detail string) *Result {
	r.Details = append(r.Details, detail)
	return r
}

// AddDetailf appends a formatted detail line to the result.
func (r *Result) AddDetailf(format string, args ...interface{}) *Result {
	return r.AddDetail(fmt.Sprintf(format, args...))
}

// Set records a metadata value on the result.
func (r *Result) Set(key, value string) *Result {
	if r.Metadata == nil {
		r.Metadata = Metadata{}
	}
	r.Metadata[key] = value
	return r
}

// Attempt runs fn and converts its outcome into a Result. Panics are
// recovered and reported as errors; nothing escapes the unit.
func Attempt(name string, fn func() (Metadata, error)) (result Result) {
	result = Result{Name: name}
	defer func() {
		if p := recover(); p != nil {
			result = Result{Name: name}
			result.Error(&Fault{Type: "panic", Msg: fmt.Sprint(p)})
		}
	}()

	md, err := fn()
	for k, v := range md {
		result.Set(k, v)
	}
	return result.Complete(err)
}

// CompileRegex compiles a regex pattern if non-empty, returning nil if pattern is empty.
func CompileRegex(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}
	return regexp.Compile(pattern)
}
