package xswap

import (
	"encoding/json"

	"github.com/iov-one/xswap/errors"
)

// Handler executes one kind of message.
type Handler interface {
	Checker
	Deliverer
}

// Checker validates a transaction against the mempool state.
type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

// Deliverer executes a transaction included in a block.
type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around the next handler of the stack, for example to
// authenticate or to make the execution atomic.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the app_state of the genesis file, one raw JSON value per
// extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the value under key into obj. A missing key leaves
// obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers runs its initializers in order and stops at the first
// error.
type ChainInitializers []Initializer

var _ Initializer = ChainInitializers(nil)

func (c ChainInitializers) FromGenesis(opts Options, db KVStore) error {
	for _, ini := range c {
		if err := ini.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
