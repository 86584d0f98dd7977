package cash

import (
	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
)

// CoinMover moves funds between addresses.
type CoinMover interface {
	// MoveCoins takes amount from src and gives it to dest, or changes
	// nothing.
	MoveCoins(db xswap.KVStore, src, dest xswap.Address, amount coin.Coin) error
}

// Balancer reads the funds of an address.
type Balancer interface {
	Balance(db xswap.ReadOnlyKVStore, addr xswap.Address) (coin.Coins, error)
}

// Controller is what the send handler and the escrows need from this
// package.
type Controller interface {
	CoinMover
	Balancer
	// IssueCoins creates amount out of thin air at dest.
	IssueCoins(db xswap.KVStore, dest xswap.Address, amount coin.Coin) error
}

// BaseController keeps balances in a Bucket.
type BaseController struct {
	bucket Bucket
}

var _ Controller = BaseController{}

func NewController(bucket Bucket) BaseController {
	return BaseController{bucket: bucket}
}

// Balance fails with ErrNotFound for an address that holds nothing.
func (c BaseController) Balance(db xswap.ReadOnlyKVStore, addr xswap.Address) (coin.Coins, error) {
	coins, ok, err := c.bucket.Coins(db, addr)
	switch {
	case err != nil:
		return nil, errors.Wrap(err, "cannot get account state")
	case !ok:
		return nil, errors.Wrapf(errors.ErrNotFound, "no wallet %s", addr)
	}
	return coins.Clone(), nil
}

func (c BaseController) MoveCoins(db xswap.KVStore, src, dest xswap.Address, amount coin.Coin) error {
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount %s", amount)
	}
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}

	err := c.bucket.update(db, src, func(held coin.Coins) (coin.Coins, error) {
		if held.IsEmpty() {
			return nil, errors.Wrapf(errors.ErrEmpty, "empty account %s", src)
		}
		if !held.Contains(amount) {
			return nil, errors.Wrapf(errors.ErrInsufficientAmount, "account %s has %s", src, held)
		}
		return held.Subtract(amount)
	})
	if err != nil {
		return err
	}
	// The recipient is read after the sender is written so a transfer to
	// self nets to zero.
	return c.bucket.update(db, dest, func(held coin.Coins) (coin.Coins, error) {
		return held.Add(amount)
	})
}

func (c BaseController) IssueCoins(db xswap.KVStore, dest xswap.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	return c.bucket.update(db, dest, func(held coin.Coins) (coin.Coins, error) {
		return held.Add(amount)
	})
}
