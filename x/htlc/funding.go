package htlc

import (
	"github.com/iov-one/xswap/coin"
)

// ValidateTokenAmounts checks the deposited funds cover the swap amount and
// the safety deposit. When both are paid in the same token a single
// deposit must cover their sum, otherwise each token is checked on its
// own. A token missing from the funds counts as a zero deposit.
func ValidateTokenAmounts(im *Immutables, funds coin.Coins, safetyDenom string) error {
	if safetyDenom == im.Token {
		want, err := im.Amount.Add(im.SafetyDeposit)
		if err != nil {
			// No deposit can cover a sum past 256 bits.
			return &TokenAmountError{
				Token:    im.Token,
				Expected: im.Amount.String() + " + " + im.SafetyDeposit.String(),
				Actual:   funds.AmountOf(im.Token).String(),
			}
		}
		return requireAmount(funds, im.Token, want)
	}
	if err := requireAmount(funds, safetyDenom, im.SafetyDeposit); err != nil {
		return err
	}
	return requireAmount(funds, im.Token, im.Amount)
}

func requireAmount(funds coin.Coins, denom string, want coin.Amount) error {
	got := funds.AmountOf(denom)
	if got.Cmp(want) < 0 {
		return &TokenAmountError{
			Token:    denom,
			Expected: want.String(),
			Actual:   got.String(),
		}
	}
	return nil
}
