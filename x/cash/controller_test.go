package cash

import (
	"testing"

	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/store"
	"github.com/iov-one/xswap/weavetest"
	"github.com/iov-one/xswap/weavetest/assert"
)

func TestIssueAndMoveCoins(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())

	alice := weavetest.RandomAddr(t)
	bob := weavetest.RandomAddr(t)
	escrow := weavetest.RandomContractAddr(t)

	_, err := ctrl.Balance(db, alice)
	assert.IsErr(t, errors.ErrNotFound, err)

	assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(1000, "uatom")))
	assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(10, "uosmo")))

	assert.Nil(t, ctrl.MoveCoins(db, alice, escrow, coin.NewCoin(400, "uatom")))
	assert.Nil(t, ctrl.MoveCoins(db, alice, bob, coin.NewCoin(10, "uosmo")))

	aliceCoins, err := ctrl.Balance(db, alice)
	assert.Nil(t, err)
	assert.Equal(t, "600uatom", aliceCoins.String())

	escrowCoins, err := ctrl.Balance(db, escrow)
	assert.Nil(t, err)
	assert.Equal(t, "400uatom", escrowCoins.String())

	bobCoins, err := ctrl.Balance(db, bob)
	assert.Nil(t, err)
	assert.Equal(t, "10uosmo", bobCoins.String())

	// Self transfer does not create coins.
	assert.Nil(t, ctrl.MoveCoins(db, escrow, escrow, coin.NewCoin(400, "uatom")))
	escrowCoins, err = ctrl.Balance(db, escrow)
	assert.Nil(t, err)
	assert.Equal(t, "400uatom", escrowCoins.String())
}

func TestMoveCoinsFailures(t *testing.T) {
	alice := weavetest.RandomAddr(t)
	bob := weavetest.RandomAddr(t)

	cases := map[string]struct {
		src     []byte
		amount  coin.Coin
		wantErr *errors.Error
	}{
		"insufficient funds": {
			src:     alice,
			amount:  coin.NewCoin(101, "uatom"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"unknown denomination": {
			src:     alice,
			amount:  coin.NewCoin(1, "uusdc"),
			wantErr: errors.ErrInsufficientAmount,
		},
		"empty source": {
			src:     bob,
			amount:  coin.NewCoin(1, "uatom"),
			wantErr: errors.ErrEmpty,
		},
		"zero amount": {
			src:     alice,
			amount:  coin.NewCoin(0, "uatom"),
			wantErr: errors.ErrAmount,
		},
		"invalid denomination": {
			src:     alice,
			amount:  coin.NewCoin(1, "!"),
			wantErr: errors.ErrCurrency,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController(NewBucket())
			assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(100, "uatom")))

			err := ctrl.MoveCoins(db, tc.src, weavetest.RandomAddr(t), tc.amount)
			assert.IsErr(t, tc.wantErr, err)

			balance, err := ctrl.Balance(db, alice)
			assert.Nil(t, err)
			assert.Equal(t, "100uatom", balance.String())
		})
	}
}

func TestEmptyWalletIsRemoved(t *testing.T) {
	db := store.MemStore()
	ctrl := NewController(NewBucket())
	alice := weavetest.RandomAddr(t)

	assert.Nil(t, ctrl.IssueCoins(db, alice, coin.NewCoin(5, "uatom")))
	assert.Nil(t, ctrl.MoveCoins(db, alice, weavetest.RandomAddr(t), coin.NewCoin(5, "uatom")))

	_, err := ctrl.Balance(db, alice)
	assert.IsErr(t, errors.ErrNotFound, err)
}
