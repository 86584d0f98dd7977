package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/weavetest/assert"
)

func TestAddCoin(t *testing.T) {
	cases := map[string]struct {
		a, b    Coin
		want    Coin
		wantErr *errors.Error
	}{
		"same denom": {
			a:    NewCoin(10, "uatom"),
			b:    NewCoin(15, "uatom"),
			want: NewCoin(25, "uatom"),
		},
		"zero without denom is ignored": {
			a:    NewCoin(10, "uatom"),
			b:    Coin{},
			want: NewCoin(10, "uatom"),
		},
		"different denom": {
			a:       NewCoin(10, "uatom"),
			b:       NewCoin(10, "uosmo"),
			wantErr: errors.ErrCurrency,
		},
		"overflow": {
			a:       Coin{Denom: "uatom", Amount: MustParseAmount(maxUint256)},
			b:       NewCoin(1, "uatom"),
			wantErr: errors.ErrOverflow,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.a.Add(tc.b)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && !got.Equals(tc.want) {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestCoinSubtract(t *testing.T) {
	c := NewCoin(10, "uatom")

	rest, err := c.Subtract(NewCoin(4, "uatom"))
	assert.Nil(t, err)
	assert.Equal(t, true, rest.Equals(NewCoin(6, "uatom")))

	_, err = c.Subtract(NewCoin(11, "uatom"))
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	_, err = c.Subtract(NewCoin(1, "uosmo"))
	assert.IsErr(t, errors.ErrCurrency, err)
}

func TestCoinGTE(t *testing.T) {
	c := NewCoin(10, "uatom")
	assert.Equal(t, true, c.IsGTE(NewCoin(10, "uatom")))
	assert.Equal(t, true, c.IsGTE(NewCoin(9, "uatom")))
	assert.Equal(t, false, c.IsGTE(NewCoin(11, "uatom")))
	assert.Equal(t, false, c.IsGTE(NewCoin(1, "uosmo")))
}

func TestCoinValidate(t *testing.T) {
	cases := map[string]struct {
		coin    Coin
		wantErr *errors.Error
	}{
		"simple denom":      {coin: NewCoin(1, "uatom")},
		"ibc denom":         {coin: NewCoin(1, "ibc/27394FB092D2ECCD56123C74F36E4C1F926001CEADA9CA97EA622B25F41E5EB2")},
		"factory denom":     {coin: NewCoin(1, "factory/osmo1abc/usdc")},
		"zero is valid":     {coin: NewCoin(0, "uatom")},
		"too short":         {coin: NewCoin(1, "ab"), wantErr: errors.ErrCurrency},
		"starts with digit": {coin: NewCoin(1, "1atom"), wantErr: errors.ErrCurrency},
		"empty":             {coin: NewCoin(1, ""), wantErr: errors.ErrCurrency},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.coin.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestCoinDeserialization(t *testing.T) {
	cases := map[string]struct {
		serialized string
		wantErr    bool
		wantCoin   Coin
	}{
		"human format": {
			serialized: `"100uatom"`,
			wantCoin:   NewCoin(100, "uatom"),
		},
		"human format with space": {
			serialized: `"100 uatom"`,
			wantCoin:   NewCoin(100, "uatom"),
		},
		"object with string amount": {
			serialized: `{"denom": "uatom", "amount": "340282366920938463463374607431768211456"}`,
			wantCoin:   Coin{Denom: "uatom", Amount: MustParseAmount("340282366920938463463374607431768211456")},
		},
		"object with number amount": {
			serialized: `{"denom": "uatom", "amount": 7}`,
			wantCoin:   NewCoin(7, "uatom"),
		},
		"negative human format": {
			serialized: `"-1uatom"`,
			wantErr:    true,
		},
		"missing denom": {
			serialized: `"100"`,
			wantErr:    true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var c Coin
			err := json.Unmarshal([]byte(tc.serialized), &c)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, true, tc.wantCoin.Equals(c))
		})
	}
}

func TestCoinString(t *testing.T) {
	assert.Equal(t, "100uatom", NewCoin(100, "uatom").String())
	assert.Equal(t, "0uatom", NewCoin(0, "uatom").String())

	raw, err := json.Marshal(NewCoin(5, "uatom"))
	assert.Nil(t, err)
	assert.Equal(t, `{"denom":"uatom","amount":"5"}`, string(raw))
}
