package htlc

import (
	"strings"

	"github.com/iov-one/xswap"
)

// VerifySecret returns true if the keccak256 digest of the secret matches
// the hashlock. The hashlock comparison ignores case and an optional 0x
// prefix.
func VerifySecret(secret []byte, hashlock string) bool {
	return strings.EqualFold(xswap.Keccak256Hex(secret), trimHexPrefix(hashlock))
}

// Hashlock returns the hashlock of given secret.
func Hashlock(secret []byte) string {
	return xswap.Keccak256Hex(secret)
}
