package htlc

import (
	"encoding/json"

	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
)

// FeeInfo is the fee breakdown carried by the immutables parameters.
// Fee amounts are denominated in the swap token.
type FeeInfo struct {
	ProtocolFeeAmount      coin.Amount `json:"protocol_fee_amount"`
	IntegratorFeeAmount    coin.Amount `json:"integrator_fee_amount"`
	ProtocolFeeRecipient   string      `json:"protocol_fee_recipient"`
	IntegratorFeeRecipient string      `json:"integrator_fee_recipient"`
}

// ParseFeeInfo decodes the fee breakdown from raw parameters. Both fee
// amounts must fit 128 bits.
func ParseFeeInfo(raw []byte) (*FeeInfo, error) {
	var fi FeeInfo
	if err := json.Unmarshal(raw, &fi); err != nil {
		return nil, errors.Wrap(ErrFeeParsing, err.Error())
	}
	if !fi.ProtocolFeeAmount.FitsUint128() || !fi.IntegratorFeeAmount.FitsUint128() {
		return nil, errors.Wrap(ErrFeeParsing, "fee amount exceeds 128 bits")
	}
	return &fi, nil
}

// Marshal returns the parameters representation of the fee breakdown.
func (fi FeeInfo) Marshal() ([]byte, error) {
	return json.Marshal(fi)
}

// Payout is the split of an escrowed amount on withdrawal.
type Payout struct {
	IntegratorFee coin.Amount
	ProtocolFee   coin.Amount
	// Remaining is paid to the maker.
	Remaining coin.Amount
}

// Split computes how amount is distributed. Fees exceeding the amount
// result in ErrInsufficientEscrowBalance.
func (fi *FeeInfo) Split(amount coin.Amount) (Payout, error) {
	total, err := fi.IntegratorFeeAmount.Add(fi.ProtocolFeeAmount)
	if err != nil {
		return Payout{}, errors.Wrap(ErrInsufficientEscrowBalance, "fees overflow")
	}
	remaining, err := amount.Sub(total)
	if err != nil {
		return Payout{}, errors.Wrapf(ErrInsufficientEscrowBalance, "fees %s exceed amount %s", total, amount)
	}
	return Payout{
		IntegratorFee: fi.IntegratorFeeAmount,
		ProtocolFee:   fi.ProtocolFeeAmount,
		Remaining:     remaining,
	}, nil
}
