package escrowdst

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x/htlc"
)

// Op is an operation requested on an escrow.
type Op int

const (
	OpWithdraw Op = iota + 1
	OpPublicWithdraw
	OpCancel
	OpRescue
)

func (o Op) String() string {
	switch o {
	case OpWithdraw:
		return "withdraw"
	case OpPublicWithdraw:
		return "public_withdraw"
	case OpCancel:
		return "cancel"
	case OpRescue:
		return "rescue_funds"
	default:
		return "unknown"
	}
}

// Call is a single request against an escrow.
type Call struct {
	Op         Op
	Caller     xswap.Address
	Now        uint64
	Immutables *htlc.Immutables
	// Secret is required by both withdraw operations.
	Secret []byte
	// Rescue is the token swept by OpRescue.
	Rescue coin.Coin
}

// Transfer moves a single coin out of the escrow.
type Transfer struct {
	Recipient xswap.Address
	Coin      coin.Coin
}

// Outcome is the result of a successful transition.
type Outcome struct {
	State     State
	Transfers []Transfer
	// Payout is set by withdraw operations.
	Payout *htlc.Payout
}

// Transition computes the next state of the escrow and the transfers that
// must be issued together with the state change. It does not modify the
// escrow. Checks run in order: terms, state, caller, window, secret, fees.
func Transition(e *Escrow, c Call) (*Outcome, error) {
	if c.Immutables == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "immutables")
	}
	im := c.Immutables
	if err := e.VerifyTerms(im); err != nil {
		return nil, err
	}
	if c.Op != OpRescue && e.State != Active {
		return nil, errors.Wrapf(errors.ErrState, "escrow is %s", e.State)
	}

	taker, err := im.TakerAddress()
	if err != nil {
		return nil, errors.Field("Taker", err, "invalid taker")
	}
	if c.Op != OpPublicWithdraw && !taker.Equals(c.Caller) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "caller is not the taker")
	}

	tl := im.Timelocks
	switch c.Op {
	case OpWithdraw:
		if err := inWindow(c.Now, tl.StageTime(htlc.DstWithdrawal), tl.StageTime(htlc.DstCancellation)); err != nil {
			return nil, err
		}
		return withdraw(e, c)
	case OpPublicWithdraw:
		if err := inWindow(c.Now, tl.StageTime(htlc.DstPublicWithdrawal), tl.StageTime(htlc.DstCancellation)); err != nil {
			return nil, err
		}
		return withdraw(e, c)
	case OpCancel:
		if err := reached(c.Now, tl.StageTime(htlc.DstCancellation)); err != nil {
			return nil, err
		}
		return cancel(e, c, taker)
	case OpRescue:
		if err := reached(c.Now, tl.RescueTime(e.RescueDelay)); err != nil {
			return nil, err
		}
		return rescue(e, c, taker)
	default:
		return nil, errors.Wrapf(errors.ErrInput, "unknown operation %d", c.Op)
	}
}

// inWindow checks now is within [start, end).
func inWindow(now, start, end uint64) error {
	if err := reached(now, start); err != nil {
		return err
	}
	if now >= end {
		return errors.Wrapf(htlc.ErrTimelockHasCrossed, "window closed at %d", end)
	}
	return nil
}

func reached(now, start uint64) error {
	if now < start {
		return errors.Wrapf(htlc.ErrTimelockNotReached, "opens at %d", start)
	}
	return nil
}

func withdraw(e *Escrow, c Call) (*Outcome, error) {
	im := c.Immutables
	if !htlc.VerifySecret(c.Secret, im.Hashlock) {
		return nil, htlc.ErrInvalidSecret
	}
	fees, err := htlc.ParseFeeInfo(im.Parameters)
	if err != nil {
		return nil, err
	}
	payout, err := fees.Split(im.Amount)
	if err != nil {
		return nil, err
	}

	var transfers []Transfer
	if !payout.IntegratorFee.IsZero() {
		to, err := htlc.ParseParty(fees.IntegratorFeeRecipient)
		if err != nil {
			return nil, errors.Wrap(err, "integrator fee recipient")
		}
		transfers = append(transfers, Transfer{Recipient: to, Coin: coin.Coin{Denom: im.Token, Amount: payout.IntegratorFee}})
	}
	if !payout.ProtocolFee.IsZero() {
		to, err := htlc.ParseParty(fees.ProtocolFeeRecipient)
		if err != nil {
			return nil, errors.Wrap(err, "protocol fee recipient")
		}
		transfers = append(transfers, Transfer{Recipient: to, Coin: coin.Coin{Denom: im.Token, Amount: payout.ProtocolFee}})
	}
	if !payout.Remaining.IsZero() {
		maker, err := im.MakerAddress()
		if err != nil {
			return nil, errors.Wrap(err, "maker")
		}
		if !payout.Remaining.FitsUint128() {
			return nil, htlc.ErrUintConversion
		}
		transfers = append(transfers, Transfer{Recipient: maker, Coin: coin.Coin{Denom: im.Token, Amount: payout.Remaining}})
	}
	deposit, err := safetyDeposit(e, c)
	if err != nil {
		return nil, err
	}
	transfers = append(transfers, deposit...)
	return &Outcome{State: Withdrawn, Transfers: transfers, Payout: &payout}, nil
}

func cancel(e *Escrow, c Call, taker xswap.Address) (*Outcome, error) {
	im := c.Immutables
	if !im.Amount.FitsUint128() {
		return nil, htlc.ErrUintConversion
	}
	transfers := []Transfer{
		{Recipient: taker, Coin: coin.Coin{Denom: im.Token, Amount: im.Amount}},
	}
	deposit, err := safetyDeposit(e, c)
	if err != nil {
		return nil, err
	}
	return &Outcome{State: Cancelled, Transfers: append(transfers, deposit...)}, nil
}

// safetyDeposit pays the deposit, if any, to the caller.
func safetyDeposit(e *Escrow, c Call) ([]Transfer, error) {
	sd := c.Immutables.SafetyDeposit
	if sd.IsZero() {
		return nil, nil
	}
	if !sd.FitsUint128() {
		return nil, htlc.ErrUintConversion
	}
	return []Transfer{
		{Recipient: c.Caller, Coin: coin.Coin{Denom: e.SafetyDepositDenom, Amount: sd}},
	}, nil
}

// rescue sweeps any token to the taker. The swept amount is not checked
// against the swap terms. A terminal escrow keeps its state.
func rescue(e *Escrow, c Call, taker xswap.Address) (*Outcome, error) {
	if !c.Rescue.IsPositive() {
		return nil, errors.Wrap(errors.ErrAmount, "rescue amount must be positive")
	}
	if !c.Rescue.Amount.FitsUint128() {
		return nil, htlc.ErrUintConversion
	}
	next := e.State
	if next == Active {
		next = Rescued
	}
	return &Outcome{
		State:     next,
		Transfers: []Transfer{{Recipient: taker, Coin: c.Rescue}},
	}, nil
}
