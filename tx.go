package xswap

import (
	"reflect"

	"github.com/iov-one/xswap/errors"
)

// Msg is the action a transaction asks for. The router picks its
// handler by Path, which must match [0-9A-Za-z_\-/]+.
type Msg interface {
	Path() string
	// Validate runs the checks that need no state.
	Validate() error
}

// Marshaller encodes to the binary format.
type Marshaller interface {
	Marshal() ([]byte, error)
}

// Persistent round trips through the binary format. Unmarshal needs a
// pointer receiver, so most values implement Marshaller on the value and
// Persistent on the pointer.
type Persistent interface {
	Marshaller
	Unmarshal([]byte) error
}

// Tx is what a client submits: a message plus whatever authenticates it.
type Tx interface {
	GetMsg() (Msg, error)
}

// TxDecoder parses raw transaction bytes.
type TxDecoder func(txBytes []byte) (Tx, error)

// GetPath is used for logging. It never fails.
func GetPath(tx Tx) string {
	if msg, err := tx.GetMsg(); err == nil && msg != nil {
		return msg.Path()
	}
	return "(missing)"
}

// LoadMsg copies the message of tx into destination, a pointer to the
// expected message type, and validates it.
func LoadMsg(tx Tx, destination interface{}) error {
	msg, err := tx.GetMsg()
	if err != nil {
		return errors.Wrap(err, "cannot get transaction message")
	}
	if msg == nil {
		return errors.Wrap(errors.ErrEmpty, "transaction message")
	}

	res := reflect.ValueOf(msg)
	dest := reflect.ValueOf(destination)
	if dest.Kind() != reflect.Ptr || dest.IsNil() {
		return errors.Wrap(errors.ErrHuman, "destination must be a non nil pointer")
	}
	target := dest.Elem()
	switch {
	case res.Type().AssignableTo(target.Type()):
		target.Set(res)
	case res.Kind() == reflect.Ptr && res.Elem().Type().AssignableTo(target.Type()):
		target.Set(res.Elem())
	default:
		return errors.Wrapf(errors.ErrType, "want %T message, got %T", destination, msg)
	}

	if err := msg.Validate(); err != nil {
		return errors.Wrap(err, "invalid message")
	}
	return nil
}
