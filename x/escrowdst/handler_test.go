package escrowdst

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/coin"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/store"
	"github.com/iov-one/xswap/weavetest"
	"github.com/iov-one/xswap/weavetest/assert"
	"github.com/iov-one/xswap/x/cash"
	"github.com/iov-one/xswap/x/htlc"
	"github.com/stretchr/testify/require"
)

type handlerFixture struct {
	db       store.CacheableKVStore
	bank     cash.BaseController
	bucket   Bucket
	parties  parties
	takerKey xswap.Condition
	im       htlc.Immutables
	escrow   *Escrow
}

// router is a minimal registry dispatching by message path.
type router map[string]xswap.Handler

func (r router) Handle(path string, h xswap.Handler) {
	r[path] = h
}

func newHandlerFixture(t *testing.T, funds ...coin.Coin) *handlerFixture {
	t.Helper()
	f := &handlerFixture{
		db:       store.MemStore(),
		bank:     cash.NewController(cash.NewBucket()),
		bucket:   NewBucket(),
		parties:  newParties(t),
		takerKey: weavetest.NewCondition(),
	}
	f.parties.taker = f.takerKey.Address()
	f.im = newImmutables(f.parties)
	f.escrow = newEscrow(t, f.parties, &f.im, ByCommitment)
	assert.Nil(t, f.bucket.Instantiate(f.db, f.escrow))
	for _, c := range funds {
		assert.Nil(t, f.bank.IssueCoins(f.db, f.escrow.Address, c))
	}
	return f
}

func (f *handlerFixture) handler(path string, signer xswap.Condition) xswap.Handler {
	r := router{}
	RegisterRoutes(r, &weavetest.Auth{Signer: signer}, f.bank)
	return r[path]
}

func ctxAt(unix int64) xswap.Context {
	return xswap.WithBlockTime(context.Background(), time.Unix(unix, 0))
}

func (f *handlerFixture) balance(t *testing.T, addr xswap.Address) string {
	t.Helper()
	coins, err := f.bank.Balance(f.db, addr)
	if errors.ErrNotFound.Is(err) {
		return ""
	}
	assert.Nil(t, err)
	return coins.String()
}

func (f *handlerFixture) state(t *testing.T) State {
	t.Helper()
	e, err := f.bucket.GetEscrow(f.db, f.escrow.Address)
	assert.Nil(t, err)
	return e.State
}

func tagsOf(res *xswap.DeliverResult) map[string]string {
	tags := make(map[string]string)
	for _, kv := range res.Tags {
		tags[string(kv.Key)] = string(kv.Value)
	}
	return tags
}

func TestWithdrawHandler(t *testing.T) {
	f := newHandlerFixture(t, coin.NewCoin(1000, "uatom"), coin.NewCoin(10, "uosmo"))
	h := f.handler(WithdrawMsg{}.Path(), f.takerKey)
	tx := &weavetest.Tx{Msg: &WithdrawMsg{Escrow: f.escrow.Address, Secret: []byte(secret), Immutables: f.im}}

	_, err := h.Check(ctxAt(deployedAt+99), f.db, tx)
	assert.IsErr(t, htlc.ErrTimelockNotReached, err)

	_, err = h.Check(ctxAt(deployedAt+100), f.db, tx)
	assert.Nil(t, err)
	assert.Equal(t, Active, f.state(t))

	res, err := h.Deliver(ctxAt(deployedAt+100), f.db, tx)
	assert.Nil(t, err)
	assert.Equal(t, Withdrawn, f.state(t))

	assert.Equal(t, "920uatom", f.balance(t, f.parties.maker))
	assert.Equal(t, "50uatom", f.balance(t, f.parties.protocol))
	assert.Equal(t, "30uatom", f.balance(t, f.parties.integrator))
	assert.Equal(t, "10uosmo", f.balance(t, f.parties.taker))
	assert.Equal(t, "", f.balance(t, f.escrow.Address))

	tags := tagsOf(res)
	assert.Equal(t, "withdraw", tags["method"])
	assert.Equal(t, "withdrawn", tags["state"])
	assert.Equal(t, "920", tags["amount"])
	assert.Equal(t, "30", tags["integrator_fee"])
	assert.Equal(t, "50", tags["protocol_fee"])
	assert.Equal(t, "10", tags["safety_deposit"])

	_, err = h.Deliver(ctxAt(deployedAt+101), f.db, tx)
	assert.IsErr(t, errors.ErrState, err)
}

func TestWithdrawHandlerInvalidSecret(t *testing.T) {
	f := newHandlerFixture(t, coin.NewCoin(1000, "uatom"), coin.NewCoin(10, "uosmo"))
	h := f.handler(WithdrawMsg{}.Path(), f.takerKey)
	tx := &weavetest.Tx{Msg: &WithdrawMsg{Escrow: f.escrow.Address, Secret: []byte("wrong_secret"), Immutables: f.im}}

	_, err := h.Deliver(ctxAt(deployedAt+100), f.db, tx)
	assert.IsErr(t, htlc.ErrInvalidSecret, err)
	assert.Equal(t, Active, f.state(t))
	assert.Equal(t, "1000uatom,10uosmo", f.balance(t, f.escrow.Address))
}

func TestWithdrawHandlerIsAtomic(t *testing.T) {
	// The escrow was never funded with the safety deposit, so the last
	// transfer fails and none of the previous ones may remain.
	f := newHandlerFixture(t, coin.NewCoin(1000, "uatom"))
	h := f.handler(WithdrawMsg{}.Path(), f.takerKey)
	tx := &weavetest.Tx{Msg: &WithdrawMsg{Escrow: f.escrow.Address, Secret: []byte(secret), Immutables: f.im}}

	_, err := h.Deliver(ctxAt(deployedAt+100), f.db, tx)
	assert.IsErr(t, errors.ErrEmpty, err)
	assert.Equal(t, Active, f.state(t))
	assert.Equal(t, "1000uatom", f.balance(t, f.escrow.Address))
	assert.Equal(t, "", f.balance(t, f.parties.maker))
	assert.Equal(t, "", f.balance(t, f.parties.protocol))
}

func TestPublicWithdrawHandler(t *testing.T) {
	f := newHandlerFixture(t, coin.NewCoin(1000, "uatom"), coin.NewCoin(10, "uosmo"))
	relayer := weavetest.NewCondition()
	h := f.handler(PublicWithdrawMsg{}.Path(), relayer)
	tx := &weavetest.Tx{Msg: &PublicWithdrawMsg{Escrow: f.escrow.Address, Secret: []byte(secret), Immutables: f.im}}

	_, err := h.Deliver(ctxAt(deployedAt+150), f.db, tx)
	assert.IsErr(t, htlc.ErrTimelockNotReached, err)

	_, err = h.Deliver(ctxAt(deployedAt+200), f.db, tx)
	assert.Nil(t, err)
	assert.Equal(t, "10uosmo", f.balance(t, relayer.Address()))
	assert.Equal(t, "920uatom", f.balance(t, f.parties.maker))
}

func TestCancelHandler(t *testing.T) {
	f := newHandlerFixture(t, coin.NewCoin(1000, "uatom"), coin.NewCoin(10, "uosmo"))
	tx := &weavetest.Tx{Msg: &CancelMsg{Escrow: f.escrow.Address, Immutables: f.im}}

	stranger := f.handler(CancelMsg{}.Path(), weavetest.NewCondition())
	_, err := stranger.Deliver(ctxAt(deployedAt+500), f.db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	h := f.handler(CancelMsg{}.Path(), f.takerKey)
	_, err = h.Deliver(ctxAt(deployedAt+499), f.db, tx)
	assert.IsErr(t, htlc.ErrTimelockNotReached, err)

	res, err := h.Deliver(ctxAt(deployedAt+500), f.db, tx)
	assert.Nil(t, err)
	assert.Equal(t, Cancelled, f.state(t))
	assert.Equal(t, "1000uatom,10uosmo", f.balance(t, f.parties.taker))
	assert.Equal(t, "cancel", tagsOf(res)["method"])
}

func TestRescueFundsHandler(t *testing.T) {
	f := newHandlerFixture(t, coin.NewCoin(1000, "uatom"), coin.NewCoin(10, "uosmo"), coin.NewCoin(5, "ujuno"))
	h := f.handler(RescueFundsMsg{}.Path(), f.takerKey)
	rescue := func(token string, amount uint64) *weavetest.Tx {
		return &weavetest.Tx{Msg: &RescueFundsMsg{
			Escrow:     f.escrow.Address,
			Token:      token,
			Amount:     coin.NewAmount(amount),
			Immutables: f.im,
		}}
	}

	_, err := h.Deliver(ctxAt(deployedAt+86399), f.db, rescue("ujuno", 5))
	assert.IsErr(t, htlc.ErrTimelockNotReached, err)

	_, err = h.Deliver(ctxAt(deployedAt+86400), f.db, rescue("uusdc", 5))
	assert.IsErr(t, htlc.ErrMissingRequiredToken, err)

	_, err = h.Deliver(ctxAt(deployedAt+86400), f.db, rescue("ujuno", 5))
	assert.Nil(t, err)
	assert.Equal(t, Rescued, f.state(t))
	assert.Equal(t, "5ujuno", f.balance(t, f.parties.taker))

	// The amount is not correlated with the swap terms.
	_, err = h.Deliver(ctxAt(deployedAt+86401), f.db, rescue("uatom", 1000))
	assert.Nil(t, err)
	assert.Equal(t, "1000uatom,5ujuno", f.balance(t, f.parties.taker))
}

func TestHandlerRequiresSigner(t *testing.T) {
	f := newHandlerFixture(t, coin.NewCoin(1000, "uatom"))
	h := f.handler(PublicWithdrawMsg{}.Path(), nil)
	tx := &weavetest.Tx{Msg: &PublicWithdrawMsg{Escrow: f.escrow.Address, Secret: []byte(secret), Immutables: f.im}}
	_, err := h.Check(ctxAt(deployedAt+200), f.db, tx)
	assert.IsErr(t, errors.ErrUnauthorized, err)
}

func TestUnknownEscrow(t *testing.T) {
	f := newHandlerFixture(t)
	h := f.handler(CancelMsg{}.Path(), f.takerKey)
	tx := &weavetest.Tx{Msg: &CancelMsg{Escrow: weavetest.RandomContractAddr(t), Immutables: f.im}}
	_, err := h.Check(ctxAt(deployedAt+500), f.db, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestBucketInstantiate(t *testing.T) {
	f := newHandlerFixture(t)
	err := f.bucket.Instantiate(f.db, f.escrow)
	assert.IsErr(t, errors.ErrDuplicate, err)

	found, err := f.bucket.ByHashlock(f.db, "0x"+f.im.Hashlock)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, f.escrow.Address, found[0].Address)
}
