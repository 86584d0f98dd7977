package coin

import (
	"encoding/json"

	"github.com/holiman/uint256"
	"github.com/iov-one/xswap/errors"
)

// Amount is a non-negative integer of up to 256 bits. The zero value is a
// valid zero amount.
//
// Amounts are serialized as decimal strings, both in JSON and in the binary
// format, so that values above 2^53 survive any client.
type Amount struct {
	v uint256.Int
}

// NewAmount returns an amount holding given value.
func NewAmount(v uint64) Amount {
	var a Amount
	a.v.SetUint64(v)
	return a
}

// ParseAmount decodes a base 10 representation of an amount.
func ParseAmount(s string) (Amount, error) {
	var a Amount
	if s == "" {
		return a, errors.Wrap(errors.ErrAmount, "empty amount")
	}
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return a, errors.Wrapf(errors.ErrAmount, "%q: %s", s, err)
	}
	a.v = *v
	return a, nil
}

// MustParseAmount is like ParseAmount but panics on error. Use it only with
// constant input.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Add returns the sum of both amounts or ErrOverflow.
func (a Amount) Add(b Amount) (Amount, error) {
	var res Amount
	if _, overflow := res.v.AddOverflow(&a.v, &b.v); overflow {
		return Amount{}, errors.Wrap(errors.ErrOverflow, "amount addition")
	}
	return res, nil
}

// Sub returns a - b. Subtracting a bigger value results in
// ErrInsufficientAmount.
func (a Amount) Sub(b Amount) (Amount, error) {
	var res Amount
	if _, underflow := res.v.SubOverflow(&a.v, &b.v); underflow {
		return Amount{}, errors.Wrapf(errors.ErrInsufficientAmount, "%s is less than %s", a, b)
	}
	return res, nil
}

// Cmp returns -1 if a < b, 0 if both are equal and 1 if a > b.
func (a Amount) Cmp(b Amount) int {
	return a.v.Cmp(&b.v)
}

// Equals returns true if both amounts hold the same value.
func (a Amount) Equals(b Amount) bool {
	return a.v.Eq(&b.v)
}

// IsZero returns true if the amount is zero.
func (a Amount) IsZero() bool {
	return a.v.IsZero()
}

// BitLen returns the number of bits required to represent the amount.
func (a Amount) BitLen() int {
	return a.v.BitLen()
}

// FitsUint128 returns true if the amount can be represented by an unsigned
// 128 bit integer.
func (a Amount) FitsUint128() bool {
	return a.v.BitLen() <= 128
}

// String returns the base 10 representation.
func (a Amount) String() string {
	return a.v.Dec()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts both a decimal string and a JSON number.
func (a *Amount) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return errors.Wrap(errors.ErrAmount, "amount must be a string or a number")
		}
		s = n.String()
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// MarshalAmino represents the amount as a decimal string in the binary
// format.
func (a Amount) MarshalAmino() (string, error) {
	return a.String(), nil
}

// UnmarshalAmino reads a value serialized with MarshalAmino.
func (a *Amount) UnmarshalAmino(s string) error {
	// An empty string is how the zero value of a missing field is read.
	if s == "" {
		*a = Amount{}
		return nil
	}
	v, err := ParseAmount(s)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Uint64 returns the amount as uint64 and false if it does not fit.
func (a Amount) Uint64() (uint64, bool) {
	return a.v.Uint64(), a.v.IsUint64()
}
