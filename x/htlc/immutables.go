package htlc

import (
	"encoding/hex"
	"strings"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
)

// HashlockLength is the length of a hex encoded keccak256 digest.
const HashlockLength = 64

// Immutables are the terms of a single swap. They are committed to when
// the escrow is created and must be supplied unchanged with every later
// call.
//
// Parties are kept in their string form so that the commitment computed
// here matches the one computed by any other implementation given the
// same terms.
type Immutables struct {
	OrderHash     string      `json:"order_hash"`
	Hashlock      string      `json:"hashlock"`
	Maker         string      `json:"maker"`
	Taker         string      `json:"taker"`
	Token         string      `json:"token"`
	Amount        coin.Amount `json:"amount"`
	SafetyDeposit coin.Amount `json:"safety_deposit"`
	Timelocks     Timelocks   `json:"timelocks"`
	Parameters    []byte      `json:"parameters"`
}

// Validate checks the terms are well formed. It does not decode the fee
// parameters, which happens only on withdrawal.
func (im *Immutables) Validate() error {
	var err error
	if im.OrderHash == "" {
		err = errors.AppendField(err, "OrderHash", errors.ErrEmpty)
	}
	if !IsHashlock(im.Hashlock) {
		err = errors.AppendField(err, "Hashlock", errors.Wrapf(errors.ErrInput, "must be %d hex characters", HashlockLength))
	}
	if _, e := ParseParty(im.Maker); e != nil {
		err = errors.AppendField(err, "Maker", e)
	}
	if _, e := ParseParty(im.Taker); e != nil {
		err = errors.AppendField(err, "Taker", e)
	}
	if !coin.IsDenom(im.Token) {
		err = errors.AppendField(err, "Token", errors.Wrapf(errors.ErrCurrency, "invalid denom %q", im.Token))
	}
	if im.Amount.IsZero() {
		err = errors.AppendField(err, "Amount", errors.Wrap(errors.ErrAmount, "must be positive"))
	}
	return errors.Append(err, im.Timelocks.Validate())
}

// Stamped returns a copy of the terms with the deployment time set.
func (im Immutables) Stamped(deployedAt uint64) Immutables {
	im.Timelocks.DeployedAt = deployedAt
	return im
}

// MakerAddress returns the parsed maker party.
func (im *Immutables) MakerAddress() (xswap.Address, error) {
	return ParseParty(im.Maker)
}

// TakerAddress returns the parsed taker party.
func (im *Immutables) TakerAddress() (xswap.Address, error) {
	return ParseParty(im.Taker)
}

// ParseParty decodes a party identifier into an address.
func ParseParty(s string) (xswap.Address, error) {
	if s == "" {
		return nil, errors.ErrEmpty
	}
	return xswap.ParseAddress(s)
}

// Commitment returns the keccak256 digest binding all terms. Parameters
// are replaced with their own keccak256 digest before the structure is
// encoded, so the commitment has a bounded input size.
func (im *Immutables) Commitment() []byte {
	w := &canonicalWriter{}
	w.string(im.OrderHash)
	w.string(im.Hashlock)
	w.string(im.Maker)
	w.string(im.Taker)
	w.string(im.Token)
	w.string(im.Amount.String())
	w.string(im.SafetyDeposit.String())
	w.uint64(im.Timelocks.DeployedAt)
	w.uint32(im.Timelocks.SrcWithdrawal)
	w.uint32(im.Timelocks.SrcPublicWithdrawal)
	w.uint32(im.Timelocks.SrcCancellation)
	w.uint32(im.Timelocks.SrcPublicCancellation)
	w.uint32(im.Timelocks.DstWithdrawal)
	w.uint32(im.Timelocks.DstPublicWithdrawal)
	w.uint32(im.Timelocks.DstCancellation)
	w.bytes(xswap.Keccak256(im.Parameters))
	return xswap.Keccak256(w.Bytes())
}

// CommitmentHex returns the lowercase hex form of the commitment.
func (im *Immutables) CommitmentHex() string {
	return hex.EncodeToString(im.Commitment())
}

// IsHashlock returns true if the value is a hex encoded 32 byte digest,
// optionally prefixed with 0x.
func IsHashlock(s string) bool {
	s = trimHexPrefix(s)
	if len(s) != HashlockLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
