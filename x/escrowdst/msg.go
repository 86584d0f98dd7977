package escrowdst

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x/htlc"
)

const (
	// maxSecretSize bounds the revealed preimage.
	maxSecretSize = 256

	withdrawCost int64 = 200
	cancelCost   int64 = 100
	rescueCost   int64 = 100
)

// WithdrawMsg releases the escrow to the maker. Only the taker may send it.
type WithdrawMsg struct {
	Escrow     xswap.Address   `json:"escrow"`
	Secret     []byte          `json:"secret"`
	Immutables htlc.Immutables `json:"immutables"`
}

var _ xswap.Msg = (*WithdrawMsg)(nil)

func (WithdrawMsg) Path() string {
	return "escrowdst/withdraw"
}

func (m *WithdrawMsg) Validate() error {
	return validateWithSecret(m.Escrow, m.Secret, &m.Immutables)
}

func (m *WithdrawMsg) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(m)
}

func (m *WithdrawMsg) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, m)
}

// PublicWithdrawMsg releases the escrow to the maker once the public
// withdrawal window is open. Anyone may send it and collect the safety
// deposit.
type PublicWithdrawMsg struct {
	Escrow     xswap.Address   `json:"escrow"`
	Secret     []byte          `json:"secret"`
	Immutables htlc.Immutables `json:"immutables"`
}

var _ xswap.Msg = (*PublicWithdrawMsg)(nil)

func (PublicWithdrawMsg) Path() string {
	return "escrowdst/public_withdraw"
}

func (m *PublicWithdrawMsg) Validate() error {
	return validateWithSecret(m.Escrow, m.Secret, &m.Immutables)
}

func (m *PublicWithdrawMsg) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(m)
}

func (m *PublicWithdrawMsg) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, m)
}

// CancelMsg returns the swap amount to the taker after the cancellation
// time.
type CancelMsg struct {
	Escrow     xswap.Address   `json:"escrow"`
	Immutables htlc.Immutables `json:"immutables"`
}

var _ xswap.Msg = (*CancelMsg)(nil)

func (CancelMsg) Path() string {
	return "escrowdst/cancel"
}

func (m *CancelMsg) Validate() error {
	return errors.Append(
		errors.Field("Escrow", m.Escrow.Validate(), "invalid escrow"),
		m.Immutables.Validate(),
	)
}

func (m *CancelMsg) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(m)
}

func (m *CancelMsg) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, m)
}

// RescueFundsMsg sweeps any amount of any token held by the escrow to the
// taker once the rescue delay has passed.
type RescueFundsMsg struct {
	Escrow     xswap.Address   `json:"escrow"`
	Token      string          `json:"token"`
	Amount     coin.Amount     `json:"amount"`
	Immutables htlc.Immutables `json:"immutables"`
}

var _ xswap.Msg = (*RescueFundsMsg)(nil)

func (RescueFundsMsg) Path() string {
	return "escrowdst/rescue_funds"
}

func (m *RescueFundsMsg) Validate() error {
	var err error
	err = errors.AppendField(err, "Escrow", m.Escrow.Validate())
	if !coin.IsDenom(m.Token) {
		err = errors.AppendField(err, "Token", errors.Wrapf(errors.ErrCurrency, "invalid denom %q", m.Token))
	}
	if m.Amount.IsZero() {
		err = errors.AppendField(err, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	return errors.Append(err, m.Immutables.Validate())
}

func (m *RescueFundsMsg) Marshal() ([]byte, error) {
	return xswap.MarshalBinary(m)
}

func (m *RescueFundsMsg) Unmarshal(raw []byte) error {
	return xswap.UnmarshalBinary(raw, m)
}

func validateWithSecret(escrow xswap.Address, secret []byte, im *htlc.Immutables) error {
	var err error
	err = errors.AppendField(err, "Escrow", escrow.Validate())
	switch {
	case len(secret) == 0:
		err = errors.AppendField(err, "Secret", errors.ErrEmpty)
	case len(secret) > maxSecretSize:
		err = errors.AppendField(err, "Secret", errors.Wrapf(errors.ErrInput, "longer than %d bytes", maxSecretSize))
	}
	return errors.Append(err, im.Validate())
}
