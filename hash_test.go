package xswap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeccak256(t *testing.T) {
	// Well known digests of the legacy keccak256 function.
	assert.Equal(t,
		"c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		Keccak256Hex())
	assert.Equal(t,
		"1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8",
		Keccak256Hex([]byte("hello")))
	assert.Equal(t, Keccak256Hex([]byte("hello")), Keccak256Hex([]byte("he"), []byte("llo")))
	assert.Len(t, Keccak256([]byte("x")), 32)
}
