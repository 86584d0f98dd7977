package weavetest

import "github.com/iov-one/xswap"

// Decorator is a counting xswap.Decorator mock. It passes the call down the
// stack unless CheckErr or DeliverErr short circuits it.
type Decorator struct {
	calls

	CheckErr   error
	DeliverErr error
}

var _ xswap.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Checker) (*xswap.CheckResult, error) {
	d.check++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Deliverer) (*xswap.DeliverResult, error) {
	d.deliver++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// Decorate wraps h with d.
func Decorate(h xswap.Handler, d xswap.Decorator) xswap.Handler {
	return decorated{handler: h, decorator: d}
}

type decorated struct {
	handler   xswap.Handler
	decorator xswap.Decorator
}

func (d decorated) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.CheckResult, error) {
	return d.decorator.Check(ctx, db, tx, d.handler)
}

func (d decorated) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.DeliverResult, error) {
	return d.decorator.Deliver(ctx, db, tx, d.handler)
}
