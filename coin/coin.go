package coin

import (
	"encoding/json"
	"regexp"

	"github.com/iov-one/xswap/errors"
)

const denomPattern = `[a-zA-Z][a-zA-Z0-9/:._\-]{2,127}`

var (
	// IsDenom reports whether s is a valid token denomination.
	IsDenom = regexp.MustCompile(`^` + denomPattern + `$`).MatchString

	humanCoin = regexp.MustCompile(`^\s*([0-9]+)\s*(` + denomPattern + `)\s*$`)
)

// Coin is an amount of one token.
type Coin struct {
	Denom  string `json:"denom"`
	Amount Amount `json:"amount"`
}

func NewCoin(amount uint64, denom string) Coin {
	return Coin{Denom: denom, Amount: NewAmount(amount)}
}

// Add sums two coins of the same denomination. A zero coin without a
// denomination is neutral.
func (c Coin) Add(o Coin) (Coin, error) {
	switch {
	case o.Denom == "" && o.IsZero():
		return c, nil
	case c.Denom == "" && c.IsZero():
		return o, nil
	case c.Denom != o.Denom:
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot add %s to %s", o.Denom, c.Denom)
	}
	sum, err := c.Amount.Add(o.Amount)
	if err != nil {
		return Coin{}, err
	}
	return Coin{Denom: c.Denom, Amount: sum}, nil
}

// Subtract fails with ErrInsufficientAmount when o is greater than c.
func (c Coin) Subtract(o Coin) (Coin, error) {
	if o.IsZero() {
		return c, nil
	}
	if c.Denom != o.Denom {
		return Coin{}, errors.Wrapf(errors.ErrCurrency, "cannot subtract %s from %s", o.Denom, c.Denom)
	}
	rest, err := c.Amount.Sub(o.Amount)
	if err != nil {
		return Coin{}, errors.Wrap(err, c.Denom)
	}
	return Coin{Denom: c.Denom, Amount: rest}, nil
}

func (c Coin) Equals(o Coin) bool {
	return c.Denom == o.Denom && c.Amount.Equals(o.Amount)
}

func (c Coin) IsZero() bool {
	return c.Amount.IsZero()
}

func (c Coin) IsPositive() bool {
	return !c.IsZero()
}

// IsGTE is true when o has the same denomination and is not greater.
func (c Coin) IsGTE(o Coin) bool {
	return c.Denom == o.Denom && c.Amount.Cmp(o.Amount) >= 0
}

func (c Coin) Validate() error {
	if !IsDenom(c.Denom) {
		return errors.Wrapf(errors.ErrCurrency, "invalid denom %q", c.Denom)
	}
	return nil
}

// String returns the human format, for example "100usdc".
func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// ParseHumanFormat reads "<amount><denom>", blanks allowed around both.
func ParseHumanFormat(s string) (Coin, error) {
	m := humanCoin.FindStringSubmatch(s)
	if m == nil {
		return Coin{}, errors.Wrapf(errors.ErrInput, "invalid coin %q", s)
	}
	amount, err := ParseAmount(m[1])
	if err != nil {
		return Coin{}, err
	}
	return Coin{Denom: m[2], Amount: amount}, nil
}

// UnmarshalJSON accepts the human format string as well as the object.
func (c *Coin) UnmarshalJSON(raw []byte) error {
	var human string
	if json.Unmarshal(raw, &human) == nil {
		parsed, err := ParseHumanFormat(human)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	}

	type plain Coin
	var p plain
	if err := json.Unmarshal(raw, &p); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	*c = Coin(p)
	return nil
}
