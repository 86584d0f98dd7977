package escrowfactory

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x/htlc"
)

const createEscrowCost int64 = 300

// CreateEscrowDstMsg deploys an escrow for given terms. Funds are moved
// from the signer to the new escrow. The deployment time of the terms is
// ignored and replaced with the block time.
type CreateEscrowDstMsg struct {
	Immutables htlc.Immutables `json:"immutables"`
	// SrcCancellationTimestamp is the absolute cancellation time of the
	// source side escrow.
	SrcCancellationTimestamp uint64     `json:"src_cancellation_timestamp"`
	Funds                    coin.Coins `json:"funds"`
}

var _ xswap.Msg = (*CreateEscrowDstMsg)(nil)

func (CreateEscrowDstMsg) Path() string {
	return "escrowfactory/create_escrow_dst"
}

func (m *CreateEscrowDstMsg) Validate() error {
	var err error
	if m.SrcCancellationTimestamp == 0 {
		err = errors.AppendField(err, "SrcCancellationTimestamp", errors.ErrEmpty)
	}
	if len(m.Funds) == 0 {
		err = errors.AppendField(err, "Funds", errors.ErrEmpty)
	} else {
		err = errors.AppendField(err, "Funds", m.Funds.Validate())
	}
	return errors.Append(err, m.Immutables.Validate())
}

func (m *CreateEscrowDstMsg) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(m)
}

func (m *CreateEscrowDstMsg) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, m)
}
