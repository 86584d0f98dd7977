package app

import (
	"reflect"

	"github.com/iov-one/xswap"
)

// Decorators is an ordered decorator stack waiting for its final handler.
// The first decorator runs first.
//
//	app.ChainDecorators(
//		utils.NewLogging(),
//		utils.NewRecovery(),
//		sigs.NewDecorator(),
//	).WithHandler(router)
type Decorators struct {
	chain []xswap.Decorator
}

// ChainDecorators builds a stack. Nil decorators are skipped, which lets
// callers switch optional decorators off with a nil value.
func ChainDecorators(chain ...xswap.Decorator) Decorators {
	return Decorators{}.Chain(chain...)
}

// Chain returns a new stack with more decorators appended. d is not
// modified.
func (d Decorators) Chain(more ...xswap.Decorator) Decorators {
	chain := make([]xswap.Decorator, len(d.chain), len(d.chain)+len(more))
	copy(chain, d.chain)
	for _, dec := range more {
		if !isNilDecorator(dec) {
			chain = append(chain, dec)
		}
	}
	return Decorators{chain: chain}
}

func isNilDecorator(d xswap.Decorator) bool {
	if d == nil {
		return true
	}
	v := reflect.ValueOf(d)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack over h.
func (d Decorators) WithHandler(h xswap.Handler) xswap.Handler {
	for i := len(d.chain) - 1; i >= 0; i-- {
		h = link{decorator: d.chain[i], next: h}
	}
	return h
}

// link runs one decorator around the rest of the stack.
type link struct {
	decorator xswap.Decorator
	next      xswap.Handler
}

func (l link) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.CheckResult, error) {
	return l.decorator.Check(ctx, db, tx, l.next)
}

func (l link) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (*xswap.DeliverResult, error) {
	return l.decorator.Deliver(ctx, db, tx, l.next)
}
