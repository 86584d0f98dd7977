package errors

import (
	"fmt"
)

// Root errors shared by all extensions. Codes below 100 are reserved for
// this package; extensions register theirs from 100 up.
var (
	ErrUnauthorized = Register(2, "unauthorized")
	ErrNotFound     = Register(3, "not found")

	// ErrMsg is returned whenever a message is invalid and cannot be
	// handled.
	ErrMsg = Register(4, "invalid message")

	// ErrModel is returned whenever a stored entity is invalid.
	ErrModel     = Register(5, "invalid model")
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks a code path that is unreachable unless the
	// application is wired incorrectly.
	ErrHuman     = Register(7, "coding error")
	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")
	ErrState     = Register(10, "invalid state")
	ErrType      = Register(11, "invalid type")
	ErrAmount    = Register(12, "invalid amount")
	ErrInput     = Register(13, "invalid input")
	ErrExpired   = Register(14, "expired")
	ErrOverflow  = Register(15, "an operation cannot be completed due to value overflow")
	ErrCurrency  = Register(16, "currency")

	// ErrInsufficientAmount is returned when an account or escrow does not
	// hold enough of a token.
	ErrInsufficientAmount = Register(17, "insufficient amount")
	ErrDatabase           = Register(18, "database")
	ErrDeleted            = Register(19, "deleted")

	// ErrPanic is only produced by Recover. Its message is never exposed
	// outside of debug mode.
	ErrPanic = Register(111222, "panic")
)

// registry maps every registered code to its root error. Code 1 is kept for
// errors that carry no code.
var registry = map[uint32]*Error{
	internalABCICode: {code: internalABCICode, desc: internalABCILog},
}

// Register declares a root error with a code unique across the application.
// It panics if the code is taken, so call it only from package level
// variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := registry[code]; ok {
		panic(fmt.Sprintf("error code %d already registered as %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	registry[code] = e
	return e
}

// Error is a root error. Every error returned by a handler should wrap
// exactly one root error so that clients can tell failures apart by code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string {
	return e.desc
}

// ABCICode returns the code this error is registered with.
func (e Error) ABCICode() uint32 {
	return e.code
}

// Is reports whether err is, wraps or (for grouped errors) contains this
// root error. A nil *Error matches only nil errors.
func (e *Error) Is(err error) bool {
	if e == nil {
		return errIsNil(err)
	}
	found := false
	walk(err, func(cur error) bool {
		if cur == error(e) {
			found = true
		}
		return !found
	})
	return found
}
