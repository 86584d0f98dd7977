package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/xswap/errors"
)

// Coins is a balance in normalized form: sorted by denomination, one coin
// per denomination and no zero amounts. Operations return a new value and
// leave the receiver untouched.
type Coins []Coin

// CombineCoins sums cs into a normalized balance.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	if err := res.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// NormalizeCoins is CombineCoins without validating the denominations.
func NormalizeCoins(cs []Coin) (Coins, error) {
	byDenom := make(map[string]Coin, len(cs))
	for _, c := range cs {
		if c.IsZero() {
			continue
		}
		sum, err := byDenom[c.Denom].Add(c)
		if err != nil {
			return nil, errors.Wrap(err, "cannot sum coins")
		}
		byDenom[c.Denom] = sum
	}
	if len(byDenom) == 0 {
		return nil, nil
	}
	res := make(Coins, 0, len(byDenom))
	for _, c := range byDenom {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Denom < res[j].Denom })
	return res, nil
}

func (cs Coins) Clone() Coins {
	if cs == nil {
		return nil
	}
	return append(make(Coins, 0, len(cs)), cs...)
}

// find returns the position of denom, or where it would be inserted.
func (cs Coins) find(denom string) (int, bool) {
	i := sort.Search(len(cs), func(i int) bool { return cs[i].Denom >= denom })
	return i, i < len(cs) && cs[i].Denom == denom
}

func (cs Coins) Add(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	i, ok := cs.find(c.Denom)
	if !ok {
		res := make(Coins, 0, len(cs)+1)
		res = append(res, cs[:i]...)
		res = append(res, c)
		return append(res, cs[i:]...), nil
	}
	sum, err := cs[i].Add(c)
	if err != nil {
		return nil, err
	}
	res := cs.Clone()
	res[i] = sum
	return res, nil
}

// Subtract fails with ErrInsufficientAmount when the balance does not
// contain c.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	if c.IsZero() {
		return cs, nil
	}
	i, ok := cs.find(c.Denom)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInsufficientAmount, "no %s", c.Denom)
	}
	rest, err := cs[i].Subtract(c)
	if err != nil {
		return nil, err
	}
	if rest.IsZero() {
		res := make(Coins, 0, len(cs)-1)
		res = append(res, cs[:i]...)
		return append(res, cs[i+1:]...), nil
	}
	res := cs.Clone()
	res[i] = rest
	return res, nil
}

// Combine adds every coin of o.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs.Clone()
	for _, c := range o {
		var err error
		if res, err = res.Add(c); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Contains is true when the balance holds at least c.
func (cs Coins) Contains(c Coin) bool {
	return c.IsZero() || cs.AmountOf(c.Denom).Cmp(c.Amount) >= 0
}

// AmountOf returns the held amount of denom, zero if none.
func (cs Coins) AmountOf(denom string) Amount {
	if i, ok := cs.find(denom); ok {
		return cs[i].Amount
	}
	return Amount{}
}

func (cs Coins) IsEmpty() bool {
	return len(cs) == 0
}

func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i, c := range cs {
		if !c.Equals(o[i]) {
			return false
		}
	}
	return true
}

// Validate checks the normalized form and every denomination.
func (cs Coins) Validate() error {
	var err error
	for i, c := range cs {
		err = errors.Append(err, c.Validate())
		if c.IsZero() {
			err = errors.Append(err, errors.Wrapf(errors.ErrState, "zero %s", c.Denom))
		}
		if i > 0 && c.Denom <= cs[i-1].Denom {
			err = errors.Append(err, errors.Wrap(errors.ErrState, "not sorted or duplicated"))
		}
	}
	return err
}

// String joins the coins with commas.
func (cs Coins) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ",")
}
