package sigs

import (
	"context"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/x"
)

// signatureGas is charged on CheckTx for every valid signature.
const signatureGas = 500

// Decorator verifies the signatures of SignedTx transactions and exposes
// the signers through Authenticate. Transactions that do not carry
// signatures at all pass through unauthenticated.
type Decorator struct {
	allowUnsigned bool
}

var _ xswap.Decorator = Decorator{}

// NewDecorator requires at least one signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets a SignedTx with no signatures through.
func (d Decorator) AllowMissingSigs() Decorator {
	d.allowUnsigned = true
	return d
}

func (d Decorator) Check(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Checker) (*xswap.CheckResult, error) {
	ctx, n, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res, err := next.Check(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.GasAllocated += int64(n * signatureGas)
	return res, nil
}

func (d Decorator) Deliver(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx, next xswap.Deliverer) (*xswap.DeliverResult, error) {
	ctx, _, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

// authenticate returns ctx extended with the signers and their count.
func (d Decorator) authenticate(ctx xswap.Context, db xswap.KVStore, tx xswap.Tx) (xswap.Context, int, error) {
	stx, ok := tx.(SignedTx)
	if !ok {
		return ctx, 0, nil
	}
	signers, err := VerifyTxSignatures(db, stx, xswap.GetChainID(ctx))
	if err != nil {
		return nil, 0, errors.Wrap(err, "cannot verify signatures")
	}
	if len(signers) == 0 && !d.allowUnsigned {
		return nil, 0, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return context.WithValue(ctx, signersKey{}, signers), len(signers), nil
}

type signersKey struct{}

// Authenticate grants the conditions of the keys that signed the current
// transaction.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx xswap.Context) []xswap.Condition {
	signers, _ := ctx.Value(signersKey{}).([]xswap.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx xswap.Context, addr xswap.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
