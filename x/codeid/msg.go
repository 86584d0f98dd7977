package codeid

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

const (
	storeCodeCost int64 = 500

	// MaxCodeSize limits the size of a stored template.
	MaxCodeSize = 800 * 1024
)

// StoreCodeMsg registers a new escrow template.
type StoreCodeMsg struct {
	Creator xswap.Address `json:"creator"`
	Code    []byte        `json:"code"`
}

var _ xswap.Msg = (*StoreCodeMsg)(nil)

func (StoreCodeMsg) Path() string {
	return "codeid/store"
}

func (m *StoreCodeMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Creator", m.Creator.Validate())
	switch {
	case len(m.Code) == 0:
		err = errors.AppendField(err, "Code", errors.ErrEmpty)
	case len(m.Code) > MaxCodeSize:
		err = errors.AppendField(err, "Code", errors.Wrapf(errors.ErrInput, "larger than %d bytes", MaxCodeSize))
	}
	return err
}

func (m *StoreCodeMsg) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(m)
}

func (m *StoreCodeMsg) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, m)
}
