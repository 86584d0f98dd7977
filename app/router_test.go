package app

import (
	"context"
	"testing"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/iov-one/xswap/weavetest"
	"github.com/iov-one/xswap/x/cash"
	"github.com/iov-one/xswap/x/codeid"
	"github.com/iov-one/xswap/x/escrowdst"
	"github.com/iov-one/xswap/x/escrowfactory"
	"github.com/iov-one/xswap/x/sigs"
	"github.com/stretchr/testify/assert"
)

func TestRouter(t *testing.T) {
	r := NewRouter()

	counter := &weavetest.Handler{}
	failing := &weavetest.Handler{DeliverErr: errors.ErrAmount}
	r.Handle("good", counter)
	r.Handle("bad/path", failing)

	// invalid registrations panic
	assert.Panics(t, func() { r.Handle("good", counter) })
	assert.Panics(t, func() { r.Handle("l:7", counter) })

	ctx := context.Background()
	good := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "good"}}
	_, err := r.Check(ctx, nil, good)
	assert.NoError(t, err)
	_, err = r.Deliver(ctx, nil, good)
	assert.NoError(t, err)
	assert.Equal(t, 2, counter.CallCount())

	bad := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "bad/path"}}
	_, err = r.Deliver(ctx, nil, bad)
	assert.True(t, errors.ErrAmount.Is(err))

	missing := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "missing"}}
	_, err = r.Deliver(ctx, nil, missing)
	assert.True(t, errors.ErrNotFound.Is(err))
	_, err = r.Check(ctx, nil, missing)
	assert.True(t, errors.ErrNotFound.Is(err))
	assert.Equal(t, 2, counter.CallCount())

	broken := &weavetest.Tx{Err: errors.ErrInput}
	_, err = r.Check(ctx, nil, broken)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestRoutesRegistersExtensions(t *testing.T) {
	r := Routes(Authenticator())

	msgs := []xswap.Msg{
		&cash.SendMsg{},
		&sigs.BumpSequenceMsg{},
		&codeid.StoreCodeMsg{},
		&escrowfactory.CreateEscrowDstMsg{},
		&escrowdst.WithdrawMsg{},
		&escrowdst.PublicWithdrawMsg{},
		&escrowdst.CancelMsg{},
		&escrowdst.RescueFundsMsg{},
	}
	for _, msg := range msgs {
		_, ok := r.routes[msg.Path()]
		assert.True(t, ok, "no route for %q", msg.Path())
	}
	_, ok := r.handler(&weavetest.Msg{RoutePath: "missing"}).(notFoundHandler)
	assert.True(t, ok)
}
