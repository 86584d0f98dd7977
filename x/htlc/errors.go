package htlc

import (
	"github.com/iov-one/xswap/errors"
)

// Registered errors of the swap escrow. Codes 1200 to 1219 are reserved
// for this package.
var (
	ErrTimelockNotReached        = errors.Register(1200, "timelock has not reached")
	ErrTimelockHasCrossed        = errors.Register(1201, "timelock has crossed")
	ErrInvalidSecret             = errors.Register(1202, "invalid secret")
	ErrInvalidImmutables         = errors.Register(1203, "invalid immutables")
	ErrInsufficientEscrowBalance = errors.Register(1204, "insufficient escrow balance")
	ErrInsufficientTokenAmount   = errors.Register(1205, "insufficient token amount")
	ErrMissingRequiredToken      = errors.Register(1206, "missing required token")
	ErrInvalidCreationTime       = errors.Register(1207, "invalid creation time")
	ErrUintConversion            = errors.Register(1208, "failed to convert uint256 into uint128")
	ErrFeeParsing                = errors.Register(1209, "error fee parsing")
	ErrInvalidSafetyDepositToken = errors.Register(1210, "invalid safety deposit token")
)

// TokenAmountError describes a funding shortfall of a single token.
type TokenAmountError struct {
	Token    string
	Expected string
	Actual   string
}

func (e *TokenAmountError) Error() string {
	return "Insufficient token amount for " + e.Token + ": expected " + e.Expected + ", got " + e.Actual
}

func (e *TokenAmountError) Cause() error {
	return ErrInsufficientTokenAmount
}

func (e *TokenAmountError) Unwrap() error {
	return ErrInsufficientTokenAmount
}
