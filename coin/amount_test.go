package coin

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/weavetest/assert"
)

const maxUint256 = "115792089237316195423570985008687907853269984665640564039457584007913129639935"

func TestParseAmount(t *testing.T) {
	cases := map[string]struct {
		raw     string
		want    string
		wantErr *errors.Error
	}{
		"zero":          {raw: "0", want: "0"},
		"small":         {raw: "1234", want: "1234"},
		"above uint64":  {raw: "340282366920938463463374607431768211455", want: "340282366920938463463374607431768211455"},
		"max uint256":   {raw: maxUint256, want: maxUint256},
		"above uint256": {raw: maxUint256 + "0", wantErr: errors.ErrAmount},
		"negative":      {raw: "-1", wantErr: errors.ErrAmount},
		"empty":         {raw: "", wantErr: errors.ErrAmount},
		"not a number":  {raw: "12a", wantErr: errors.ErrAmount},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			a, err := ParseAmount(tc.raw)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil {
				assert.Equal(t, tc.want, a.String())
			}
		})
	}
}

func TestAmountArithmetic(t *testing.T) {
	a := NewAmount(100)
	b := NewAmount(30)

	sum, err := a.Add(b)
	assert.Nil(t, err)
	assert.Equal(t, "130", sum.String())

	diff, err := a.Sub(b)
	assert.Nil(t, err)
	assert.Equal(t, "70", diff.String())

	_, err = b.Sub(a)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	_, err = MustParseAmount(maxUint256).Add(NewAmount(1))
	assert.IsErr(t, errors.ErrOverflow, err)

	assert.Equal(t, 1, a.Cmp(b))
	assert.Equal(t, -1, b.Cmp(a))
	assert.Equal(t, 0, a.Cmp(NewAmount(100)))
	assert.Equal(t, true, Amount{}.IsZero())
}

func TestAmountFitsUint128(t *testing.T) {
	assert.Equal(t, true, MustParseAmount("340282366920938463463374607431768211455").FitsUint128())
	assert.Equal(t, false, MustParseAmount("340282366920938463463374607431768211456").FitsUint128())
	assert.Equal(t, true, Amount{}.FitsUint128())
}

func TestAmountSerialization(t *testing.T) {
	big := MustParseAmount("340282366920938463463374607431768211456")

	raw, err := json.Marshal(big)
	assert.Nil(t, err)
	assert.Equal(t, `"340282366920938463463374607431768211456"`, string(raw))

	var fromNumber Amount
	assert.Nil(t, json.Unmarshal([]byte(`42`), &fromNumber))
	assert.Equal(t, NewAmount(42), fromNumber)

	var invalid Amount
	err = json.Unmarshal([]byte(`"-42"`), &invalid)
	assert.IsErr(t, errors.ErrAmount, err)

	// The binary format must keep all 256 bits.
	type holder struct {
		A Amount
		B Amount
	}
	bin, err := xswap.MarshalBinary(holder{A: big})
	assert.Nil(t, err)
	var got holder
	assert.Nil(t, xswap.UnmarshalBinary(bin, &got))
	assert.Equal(t, true, big.Equals(got.A))
	assert.Equal(t, true, got.B.IsZero())
}
