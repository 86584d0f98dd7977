package utils

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
)

// Savepoint runs the rest of the stack against a cache wrap of the store
// and writes it back only on success. Enable it per phase with OnCheck and
// OnDeliver; a zero Savepoint passes calls through untouched.
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ xswap.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck enables the savepoint for CheckTx.
func (s Savepoint) OnCheck() Savepoint {
	s.onCheck = true
	return s
}

// OnDeliver enables the savepoint for DeliverTx.
func (s Savepoint) OnDeliver() Savepoint {
	s.onDeliver = true
	return s
}

func (s Savepoint) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Checker) (*xswap.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, db, tx)
	}
	var res *xswap.CheckResult
	err := Atomic(db, func(cache xswap.KVStore) (err error) {
		res, err = next.Check(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s Savepoint) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Deliverer) (*xswap.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, db, tx)
	}
	var res *xswap.DeliverResult
	err := Atomic(db, func(cache xswap.KVStore) (err error) {
		res, err = next.Deliver(ctx, cache, tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// Atomic runs fn against a cache wrap of db. Changes reach db only when fn
// returns no error. A store that cannot be cache wrapped is refused and fn
// is not called.
func Atomic(db xswap.KVStore, fn func(xswap.KVStore) error) error {
	cstore, ok := db.(xswap.CacheableKVStore)
	if !ok {
		return errors.Wrapf(errors.ErrHuman, "%T cannot be cache wrapped", db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}
