package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field name to err, for example "Immutables.Amount" or
// "Funds.0". It returns nil when err is nil, so validation code can chain
// checks without branching.
func Field(fieldName string, err error, description string, args ...interface{}) error {
	if errIsNil(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) > 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: fieldName, desc: description}
}

// AppendField appends a field error to errorsOrNil. A nil fieldErrOrNil
// leaves it unchanged.
func AppendField(errorsOrNil error, fieldName string, fieldErrOrNil error) error {
	return Append(errorsOrNil, Field(fieldName, fieldErrOrNil, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Unwrap() error { return e.parent }
func (e *fieldError) Field() string { return e.field }

// FieldErrors collects the errors created with Field for fieldName. The
// search does not descend into a matching field error.
func FieldErrors(err error, fieldName string) []error {
	var res []error
	collect(err, fieldName, &res)
	return res
}

func collect(err error, fieldName string, res *[]error) {
	for !errIsNil(err) {
		if f, ok := err.(*fieldError); ok && f.field == fieldName {
			*res = append(*res, err)
			return
		}
		if u, ok := err.(unpacker); ok {
			for _, child := range u.Unpack() {
				collect(child, fieldName, res)
			}
			return
		}
		c, ok := err.(causer)
		if !ok {
			return
		}
		err = c.Cause()
	}
}
