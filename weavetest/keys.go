package weavetest

import (
	"crypto/rand"
	"testing"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/crypto"
)

// NewKey returns a new randomly generated private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns a signature condition of a new random key.
func NewCondition() xswap.Condition {
	return NewKey().PublicKey().Condition()
}

// RandomAddr returns a valid random account address generated on the fly.
func RandomAddr(t testing.TB) xswap.Address {
	return randomAddr(t, xswap.AddressLength)
}

// RandomContractAddr returns a valid random contract address.
func RandomContractAddr(t testing.TB) xswap.Address {
	return randomAddr(t, xswap.ContractAddressLength)
}

func randomAddr(t testing.TB, size int) xswap.Address {
	t.Helper()
	raw := make([]byte, size)
	if _, err := rand.Read(raw); err != nil {
		t.Fatalf("cannot generate a random address: %s", err)
	}
	return xswap.Address(raw)
}

// ParseAddress decodes an address in any supported text format and fails the
// test on error.
func ParseAddress(t testing.TB, encodedAddress string) xswap.Address {
	t.Helper()

	addr, err := xswap.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
