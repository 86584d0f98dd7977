package utils

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// Recovery converts a panic raised below it into an ErrPanic result. The
// panic is logged together with the message path so that a misbehaving
// handler does not halt the node.
type Recovery struct{}

var _ xswap.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Checker) (_ *xswap.CheckResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Deliverer) (_ *xswap.DeliverResult, err error) {
	defer recoverTx(ctx, tx, &err)
	return next.Deliver(ctx, db, tx)
}

func recoverTx(ctx xswap.Context, tx xswap.Tx, err *error) {
	r := recover()
	if r == nil {
		return
	}
	*err = errors.Wrapf(errors.ErrPanic, "%v", r)
	xswap.GetLogger(ctx).Error("transaction panic", "path", safePath(tx), "panic", r)
}

// safePath returns the message path without trusting tx, which may be the
// source of the panic.
func safePath(tx xswap.Tx) (path string) {
	defer func() {
		if recover() != nil {
			path = ""
		}
	}()
	if tx == nil {
		return ""
	}
	return xswap.GetPath(tx)
}
