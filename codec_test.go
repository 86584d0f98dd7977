package xswap

import (
	"testing"

	"github.com/iov-one/xswap/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBinaryCodec(t *testing.T) {
	type record struct {
		Owner Address
		Count uint64
		Name  string
	}
	in := record{Owner: NewAddress([]byte("owner")), Count: 7, Name: "foo"}

	raw, err := MarshalBinary(in)
	require.NoError(t, err)

	var out record
	require.NoError(t, UnmarshalBinary(raw, &out))
	assert.Equal(t, in, out)

	err = UnmarshalBinary([]byte{0xff, 0xff, 0xff}, &out)
	assert.True(t, errors.ErrModel.Is(err))
}
