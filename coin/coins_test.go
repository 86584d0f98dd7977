package coin

import (
	"testing"

	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/weavetest/assert"
)

// mustCombineCoins has one return value for tests...
func mustCombineCoins(cs ...Coin) Coins {
	s, err := CombineCoins(cs...)
	if err != nil {
		panic(err)
	}
	return s
}

func TestMakeCoins(t *testing.T) {
	cases := map[string]struct {
		inputs   []Coin
		isEmpty  bool
		has      []Coin // <= the wallet
		dontHave []Coin // > or outside the wallet
		isErr    bool
	}{
		"empty": {
			inputs:   nil,
			isEmpty:  true,
			dontHave: []Coin{NewCoin(1, "uatom")},
		},
		"ignore 0": {
			inputs:  []Coin{NewCoin(0, "uatom")},
			isEmpty: true,
			has:     []Coin{NewCoin(0, "uatom")},
		},
		"simple": {
			inputs:   []Coin{NewCoin(40, "uatom")},
			has:      []Coin{NewCoin(10, "uatom"), NewCoin(40, "uatom")},
			dontHave: []Coin{NewCoin(41, "uatom"), NewCoin(40, "uosmo")},
		},
		"out of order and duplicated": {
			inputs:   []Coin{NewCoin(20, "uosmo"), NewCoin(40, "uatom"), NewCoin(5, "uosmo")},
			has:      []Coin{NewCoin(40, "uatom"), NewCoin(25, "uosmo")},
			dontHave: []Coin{NewCoin(41, "uatom"), NewCoin(26, "uosmo")},
		},
		"invalid denom": {
			inputs: []Coin{NewCoin(1, "a")},
			isErr:  true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			s, err := CombineCoins(tc.inputs...)
			if tc.isErr {
				assert.Equal(t, true, err != nil)
				return
			}

			assert.Nil(t, err)
			assert.Nil(t, s.Validate())
			assert.Equal(t, tc.isEmpty, s.IsEmpty())

			for _, h := range tc.has {
				assert.Equal(t, true, s.Contains(h))
			}
			for _, d := range tc.dontHave {
				assert.Equal(t, false, s.Contains(d))
			}
		})
	}
}

func TestCoinsSubtract(t *testing.T) {
	wallet := mustCombineCoins(NewCoin(10, "uatom"), NewCoin(5, "uosmo"))

	rest, err := wallet.Subtract(NewCoin(5, "uosmo"))
	assert.Nil(t, err)
	assert.Equal(t, true, rest.Equals(Coins{NewCoin(10, "uatom")}))
	// the original set is not modified
	assert.Equal(t, 2, len(wallet))

	rest, err = wallet.Subtract(NewCoin(3, "uatom"))
	assert.Nil(t, err)
	assert.Equal(t, "7", rest.AmountOf("uatom").String())

	_, err = wallet.Subtract(NewCoin(6, "uosmo"))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	_, err = wallet.Subtract(NewCoin(1, "uusdc"))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)
}

func TestCoinsCombineAndAmountOf(t *testing.T) {
	a := mustCombineCoins(NewCoin(10, "uatom"))
	b := mustCombineCoins(NewCoin(5, "uatom"), NewCoin(1, "uosmo"))

	total, err := a.Combine(b)
	assert.Nil(t, err)
	assert.Equal(t, "15", total.AmountOf("uatom").String())
	assert.Equal(t, "1", total.AmountOf("uosmo").String())
	assert.Equal(t, true, total.AmountOf("uusdc").IsZero())
	assert.Equal(t, "15uatom,1uosmo", total.String())
}

func TestCoinsValidate(t *testing.T) {
	assert.Nil(t, Coins{NewCoin(1, "uatom"), NewCoin(1, "uosmo")}.Validate())
	assert.IsErr(t, errors.ErrState, Coins{NewCoin(1, "uosmo"), NewCoin(1, "uatom")}.Validate())
	assert.IsErr(t, errors.ErrState, Coins{NewCoin(1, "uatom"), NewCoin(1, "uatom")}.Validate())
	assert.IsErr(t, errors.ErrState, Coins{NewCoin(0, "uatom")}.Validate())
}

func TestNormalizeCoins(t *testing.T) {
	got, err := NormalizeCoins([]Coin{
		NewCoin(1, "uosmo"),
		NewCoin(0, "uusdc"),
		NewCoin(2, "uatom"),
		NewCoin(3, "uosmo"),
	})
	assert.Nil(t, err)
	assert.Equal(t, true, got.Equals(Coins{NewCoin(2, "uatom"), NewCoin(4, "uosmo")}))

	got, err = NormalizeCoins(nil)
	assert.Nil(t, err)
	assert.Equal(t, true, got.IsEmpty())
}
