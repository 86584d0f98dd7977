package escrowdst

import (
	"encoding/hex"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x"
	"github.com/iov-one/xswap/x/cash"
	"github.com/iov-one/xswap/x/htlc"
	"github.com/iov-one/xswap/x/utils"
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r xswap.Registry, auth x.Authenticator, bank cash.Controller) {
	b := base{auth: auth, bucket: NewBucket(), bank: bank}
	r.Handle(WithdrawMsg{}.Path(), WithdrawHandler{b})
	r.Handle(PublicWithdrawMsg{}.Path(), PublicWithdrawHandler{b})
	r.Handle(CancelMsg{}.Path(), CancelHandler{b})
	r.Handle(RescueFundsMsg{}.Path(), RescueFundsHandler{b})
}

// RegisterQuery will register this bucket as "/escrows".
func RegisterQuery(qr xswap.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

// base holds what all escrow handlers share.
type base struct {
	auth   x.Authenticator
	bucket Bucket
	bank   cash.Controller
}

// transition loads the escrow and computes the outcome of the call without
// modifying any state.
func (b base) transition(ctx xswap.Context, db xswap.KVStore, addr xswap.Address, call Call) (*Escrow, *Call, *Outcome, error) {
	now, err := xswap.BlockUnix(ctx)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "block time")
	}
	call.Now = now
	call.Caller = x.MainSignerAddress(ctx, b.auth)
	if call.Caller == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "signature required")
	}

	escrow, err := b.bucket.GetEscrow(db, addr)
	if err != nil {
		return nil, nil, nil, err
	}
	out, err := Transition(escrow, call)
	if err != nil {
		return nil, nil, nil, err
	}
	return escrow, &call, out, nil
}

// apply issues all transfers and stores the new state. Either all of it
// is written or nothing is.
func (b base) apply(ctx xswap.Context, db xswap.KVStore, escrow *Escrow, call *Call, out *Outcome) (*xswap.DeliverResult, error) {
	next := *escrow
	next.State = out.State
	err := utils.Atomic(db, func(db xswap.KVStore) error {
		for _, t := range out.Transfers {
			if err := b.bank.MoveCoins(db, escrow.Address, t.Recipient, t.Coin); err != nil {
				return errors.Wrapf(err, "transfer %s to %s", t.Coin, t.Recipient)
			}
		}
		return b.bucket.SaveEscrow(db, &next)
	})
	if err != nil {
		return nil, err
	}

	xswap.GetLogger(ctx).Info("escrow "+call.Op.String(),
		"escrow", escrow.Address,
		"state", out.State,
		"caller", call.Caller)

	res := &xswap.DeliverResult{}
	res.Tag("method", call.Op.String())
	res.Tag("escrow", escrow.Address.String())
	res.Tag("state", out.State.String())
	return res, nil
}

// tagWithdrawal adds the withdrawal details to the result.
func tagWithdrawal(res *xswap.DeliverResult, call *Call, out *Outcome) {
	im := call.Immutables
	res.Tag("secret", hex.EncodeToString(call.Secret))
	res.Tag("maker", im.Maker)
	res.Tag("amount", out.Payout.Remaining.String())
	res.Tag("integrator_fee", out.Payout.IntegratorFee.String())
	res.Tag("protocol_fee", out.Payout.ProtocolFee.String())
	res.Tag("safety_deposit", im.SafetyDeposit.String())
}

// WithdrawHandler releases the escrow on behalf of the taker.
type WithdrawHandler struct {
	base
}

var _ xswap.Handler = WithdrawHandler{}

func (h WithdrawHandler) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &xswap.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h WithdrawHandler) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.DeliverResult, error) {
	escrow, call, out, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := h.apply(ctx, db, escrow, call, out)
	if err != nil {
		return nil, err
	}
	tagWithdrawal(res, call, out)
	return res, nil
}

func (h WithdrawHandler) validate(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*Escrow, *Call, *Outcome, error) {
	var msg WithdrawMsg
	if err := xswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	return h.transition(ctx, db, msg.Escrow, Call{
		Op:         OpWithdraw,
		Secret:     msg.Secret,
		Immutables: &msg.Immutables,
	})
}

// PublicWithdrawHandler releases the escrow on behalf of anyone once the
// public window is open.
type PublicWithdrawHandler struct {
	base
}

var _ xswap.Handler = PublicWithdrawHandler{}

func (h PublicWithdrawHandler) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &xswap.CheckResult{GasAllocated: withdrawCost}, nil
}

func (h PublicWithdrawHandler) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.DeliverResult, error) {
	escrow, call, out, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := h.apply(ctx, db, escrow, call, out)
	if err != nil {
		return nil, err
	}
	tagWithdrawal(res, call, out)
	return res, nil
}

func (h PublicWithdrawHandler) validate(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*Escrow, *Call, *Outcome, error) {
	var msg PublicWithdrawMsg
	if err := xswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	return h.transition(ctx, db, msg.Escrow, Call{
		Op:         OpPublicWithdraw,
		Secret:     msg.Secret,
		Immutables: &msg.Immutables,
	})
}

// CancelHandler returns the swap amount to the taker.
type CancelHandler struct {
	base
}

var _ xswap.Handler = CancelHandler{}

func (h CancelHandler) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &xswap.CheckResult{GasAllocated: cancelCost}, nil
}

func (h CancelHandler) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.DeliverResult, error) {
	escrow, call, out, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := h.apply(ctx, db, escrow, call, out)
	if err != nil {
		return nil, err
	}
	res.Tag("taker", call.Immutables.Taker)
	res.Tag("amount", call.Immutables.Amount.String())
	res.Tag("safety_deposit", call.Immutables.SafetyDeposit.String())
	return res, nil
}

func (h CancelHandler) validate(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*Escrow, *Call, *Outcome, error) {
	var msg CancelMsg
	if err := xswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	return h.transition(ctx, db, msg.Escrow, Call{
		Op:         OpCancel,
		Immutables: &msg.Immutables,
	})
}

// RescueFundsHandler sweeps funds left in an escrow to the taker.
type RescueFundsHandler struct {
	base
}

var _ xswap.Handler = RescueFundsHandler{}

func (h RescueFundsHandler) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &xswap.CheckResult{GasAllocated: rescueCost}, nil
}

func (h RescueFundsHandler) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.DeliverResult, error) {
	escrow, call, out, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := h.apply(ctx, db, escrow, call, out)
	if err != nil {
		return nil, err
	}
	res.Tag("token", call.Rescue.Denom)
	res.Tag("amount", call.Rescue.Amount.String())
	return res, nil
}

func (h RescueFundsHandler) validate(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*Escrow, *Call, *Outcome, error) {
	var msg RescueFundsMsg
	if err := xswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, call, out, err := h.transition(ctx, db, msg.Escrow, Call{
		Op:         OpRescue,
		Rescue:     coin.Coin{Denom: msg.Token, Amount: msg.Amount},
		Immutables: &msg.Immutables,
	})
	if err != nil {
		return nil, nil, nil, err
	}
	held, err := h.bank.Balance(db, escrow.Address)
	if err != nil && !errors.ErrNotFound.Is(err) {
		return nil, nil, nil, err
	}
	if held.AmountOf(msg.Token).IsZero() {
		return nil, nil, nil, errors.Wrapf(htlc.ErrMissingRequiredToken, "Missing required token: %s", msg.Token)
	}
	return escrow, call, out, nil
}
