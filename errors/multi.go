package errors

import (
	"strconv"
	"strings"
)

// Append groups all non nil errs. It returns nil for no errors and the
// error itself for exactly one. Nested groups are flattened.
func Append(errs ...error) error {
	var res multiErr
	for _, e := range errs {
		switch m := e.(type) {
		case multiErr:
			res = append(res, m...)
		default:
			if !errIsNil(e) {
				res = append(res, e)
			}
		}
	}
	switch len(res) {
	case 0:
		return nil
	case 1:
		return res[0]
	}
	return res
}

type unpacker interface {
	Unpack() []error
}

type multiErr []error

func (errs multiErr) Unpack() []error {
	return errs
}

func (errs multiErr) Error() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(errs)))
	b.WriteString(" errors occurred:")
	for _, err := range errs {
		b.WriteString("\n\t* ")
		b.WriteString(err.Error())
	}
	return b.String()
}

// ABCICode reports the code of the first error.
func (errs multiErr) ABCICode() uint32 {
	if len(errs) == 0 {
		return SuccessABCICode
	}
	return abciCode(errs[0])
}
