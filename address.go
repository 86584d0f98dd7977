package xswap

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/iov-one/xswap/crypto/bech32"
	"github.com/iov-one/xswap/errors"
)

const (
	// AddressLength is the length of addresses derived from a condition.
	AddressLength = 20

	// ContractAddressLength is the length of escrow contract addresses.
	ContractAddressLength = 32
)

// Address identifies an account (derived from a Condition) or an escrow
// contract.
type Address []byte

// NewAddress returns the first AddressLength bytes of the sha256 of data.
func NewAddress(data []byte) Address {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:AddressLength]
}

func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// String is upper case hex, or "(nil)" for an empty address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Bech32 encodes the address with the given human readable part.
func (a Address) Bech32(hrp string) (string, error) {
	return bech32.Encode(hrp, a)
}

// Validate accepts account and contract lengths only.
func (a Address) Validate() error {
	switch n := len(a); n {
	case AddressLength, ContractAddressLength:
		return nil
	case 0:
		return errors.Wrap(errors.ErrEmpty, "address")
	default:
		return errors.Wrapf(errors.ErrInput, "address length %d", n)
	}
}

// MarshalJSON writes upper case hex instead of the base64 default.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(hex.EncodeToString(a)))
}

func (a *Address) UnmarshalJSON(raw []byte) error {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	addr, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// addressDecoders maps the prefix of a textual address to its decoder.
var addressDecoders = map[string]func(string) (Address, error){
	"hex": func(s string) (Address, error) {
		raw, err := hex.DecodeString(s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
		}
		return raw, nil
	},
	"bech32": func(s string) (Address, error) {
		_, raw, err := bech32.Decode(s)
		return raw, err
	},
	"cond": func(s string) (Address, error) {
		c, err := parseCondition(s)
		if err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Address(), nil
	},
}

// ParseAddress decodes "hex:...", "bech32:..." or "cond:..." text. Without
// a prefix hex is assumed. An empty value is a nil address.
func ParseAddress(s string) (Address, error) {
	format := "hex"
	if i := strings.IndexByte(s, ':'); i >= 0 {
		format, s = s[:i], s[i+1:]
	}
	decode, ok := addressDecoders[format]
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", format)
	}
	if s == "" {
		return nil, nil
	}
	addr, err := decode(s)
	if err != nil {
		return nil, err
	}
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}
