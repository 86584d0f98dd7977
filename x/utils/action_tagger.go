package utils

import (
	"github.com/iov-one/xswap"
)

// ActionKey is the tag under which ActionTagger records the message path.
// Relayers subscribe to it to follow escrow creation and settlement.
const ActionKey = "action"

// ActionTagger tags every successfully delivered transaction with the path
// of its message. Check calls pass through.
type ActionTagger struct{}

var _ xswap.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Checker) (*xswap.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

func (ActionTagger) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Deliverer) (*xswap.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err == nil {
		res.Tag(ActionKey, msg.Path())
	}
	return res, err
}
