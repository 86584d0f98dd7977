package sigs

import "github.com/iov-one/xswap/errors"

// ErrInvalidSequence is returned when a signature carries a sequence that
// does not match the stored nonce of the signer.
var ErrInvalidSequence = errors.Register(120, "invalid sequence number")
