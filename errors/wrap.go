package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Wrap adds description to err and returns nil when err is nil. The first
// wrap in a chain records a stack trace. Errors that wrap no root error are
// reported as internal.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{parent: err, msg: description}
}

// Wrapf is Wrap with a formatted description.
func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithType wraps err with the Go type name of obj.
func WithType(err error, obj interface{}) error {
	return Wrap(err, fmt.Sprintf("%T", obj))
}

// Recover must be deferred. It turns a panic into an ErrPanic assigned to
// err.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

// Format prints the stack trace of the chain for the %+v verb.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s: %+v", e.msg, e.parent)
		return
	}
	fmt.Fprint(s, e.Error())
}

func (e *wrappedError) Cause() error { return e.parent }

// Unwrap lets the standard library errors.Is and errors.As walk the chain.
func (e *wrappedError) Unwrap() error { return e.parent }

type causer interface {
	Cause() error
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// walk visits err and everything it wraps, depth first. Grouped errors are
// expanded into their members. Visiting stops once fn returns false.
func walk(err error, fn func(error) bool) bool {
	for !errIsNil(err) {
		if !fn(err) {
			return false
		}
		if u, ok := err.(unpacker); ok {
			for _, child := range u.Unpack() {
				if !walk(child, fn) {
					return false
				}
			}
			return true
		}
		c, ok := err.(causer)
		if !ok {
			return true
		}
		err = c.Cause()
	}
	return true
}

// stackTrace returns the first stack trace found in the chain or nil.
func stackTrace(err error) errors.StackTrace {
	var st errors.StackTrace
	walk(err, func(cur error) bool {
		if s, ok := cur.(stackTracer); ok {
			st = s.StackTrace()
			return false
		}
		return true
	})
	return st
}

// errIsNil also catches typed nil pointers stored in an error interface.
func errIsNil(err error) bool {
	if err == nil {
		return true
	}
	val := reflect.ValueOf(err)
	return val.Kind() == reflect.Ptr && val.IsNil()
}
