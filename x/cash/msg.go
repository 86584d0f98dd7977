package cash

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
)

const (
	sendTxCost int64 = 100

	maxMemoSize int = 128
)

// SendMsg moves coins from the source to the destination wallet.
type SendMsg struct {
	Source      xswap.Address `json:"source"`
	Destination xswap.Address `json:"destination"`
	Amount      coin.Coin     `json:"amount"`
	Memo        string        `json:"memo,omitempty"`
}

var _ xswap.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var err error
	if !m.Amount.IsPositive() {
		err = errors.Wrapf(errors.ErrAmount, "non-positive SendMsg: %s", m.Amount)
	} else {
		err = errors.Field("Amount", m.Amount.Validate(), "invalid amount")
	}
	err = errors.Append(err,
		errors.Field("Source", m.Source.Validate(), "invalid source"),
		errors.Field("Destination", m.Destination.Validate(), "invalid destination"),
	)
	if len(m.Memo) > maxMemoSize {
		err = errors.Append(err, errors.Field("Memo", errors.ErrInput, "memo too long"))
	}
	return err
}

func (m *SendMsg) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(m)
}

func (m *SendMsg) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, m)
}
