package weavetest

import "github.com/iov-one/xswap"

// Tx represents a xswap transaction.
//
// Set Msg to the message that the transaction should return. Set Err to force
// GetMsg method to return an error.
type Tx struct {
	Msg xswap.Msg
	Err error
}

var _ xswap.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (xswap.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a xswap message with a configurable route and validation
// result.
type Msg struct {
	// RoutePath is returned by the Path method.
	RoutePath string

	// Err if set is returned by Validate.
	Err error
}

var _ xswap.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
