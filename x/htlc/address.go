package htlc

import (
	"crypto/sha256"
	"encoding/binary"
	"io"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

const (
	// MaxSaltLength is the longest salt accepted by DeriveAddress.
	MaxSaltLength = 64

	addressModule = "module"
	addressType   = "wasm"
)

// DeriveAddress returns the deterministic address of an instance of the
// code with given checksum, created by creator with given salt. The
// result depends only on those three values, so it can be computed before
// the instance exists.
//
// The derivation follows the instantiate2 scheme used by wasm chains:
//
//	sha256(sha256("module") | "wasm" 0x00 | len(checksum) checksum
//	       | len(creator) creator | len(salt) salt | len(msg) msg)
//
// with big endian uint64 lengths and an empty msg.
func DeriveAddress(checksum, creator, salt []byte) (xswap.Address, error) {
	if len(checksum) != sha256.Size {
		return nil, errors.Wrapf(errors.ErrInput, "checksum must be %d bytes", sha256.Size)
	}
	if len(creator) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "creator")
	}
	if len(salt) == 0 || len(salt) > MaxSaltLength {
		return nil, errors.Wrapf(errors.ErrInput, "salt must be 1 to %d bytes", MaxSaltLength)
	}

	typ := sha256.Sum256([]byte(addressModule))
	h := sha256.New()
	h.Write(typ[:])
	h.Write([]byte(addressType))
	h.Write([]byte{0})
	writeLengthPrefixed(h, checksum)
	writeLengthPrefixed(h, creator)
	writeLengthPrefixed(h, salt)
	writeLengthPrefixed(h, nil)
	return xswap.Address(h.Sum(nil)), nil
}

func writeLengthPrefixed(w io.Writer, b []byte) {
	var l [8]byte
	binary.BigEndian.PutUint64(l[:], uint64(len(b)))
	w.Write(l[:])
	w.Write(b)
}

// EscrowAddress derives the address of the escrow committed to given
// terms.
func EscrowAddress(checksum []byte, factory xswap.Address, im *Immutables) (xswap.Address, error) {
	return DeriveAddress(checksum, factory, im.Commitment())
}
