package weavetest

import (
	"context"
	"testing"

	"github.com/iov-one/xswap"
	"github.com/iov-one/xswap/errors"
	"github.com/stretchr/testify/assert"
)

func TestHandlerCounts(t *testing.T) {
	h := &Handler{DeliverResult: xswap.DeliverResult{Data: []byte("ok")}}

	_, err := h.Check(nil, nil, nil)
	assert.NoError(t, err)
	dres, err := h.Deliver(nil, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, []byte("ok"), dres.Data)

	h.CheckErr = errors.ErrUnauthorized
	_, err = h.Check(nil, nil, nil)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	assert.Equal(t, 2, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
	assert.Equal(t, 3, h.CallCount())
}

func TestDecoratorShortCircuit(t *testing.T) {
	h := &Handler{}
	d := &Decorator{DeliverErr: errors.ErrNotFound}
	stack := Decorate(h, d)

	_, err := stack.Check(nil, nil, nil)
	assert.NoError(t, err)
	_, err = stack.Deliver(nil, nil, nil)
	assert.True(t, errors.ErrNotFound.Is(err))

	assert.Equal(t, 2, d.CallCount())
	assert.Equal(t, 1, h.CallCount(), "failed deliver must not reach the handler")
}

func TestWriteHandler(t *testing.T) {
	db := CommitKVStore().CacheWrap()
	h := WriteHandler{Key: []byte("k"), Value: []byte("v"), Err: errors.ErrHuman}

	_, err := h.Deliver(nil, db, nil)
	assert.True(t, errors.ErrHuman.Is(err))
	assert.Equal(t, []byte("v"), db.Get([]byte("k")))
}

func TestAuthMocks(t *testing.T) {
	a, b, c := NewCondition(), NewCondition(), NewCondition()

	auth := &Auth{Signer: a, Signers: []xswap.Condition{b}}
	assert.Len(t, auth.GetConditions(nil), 2)
	assert.True(t, auth.HasAddress(nil, a.Address()))
	assert.True(t, auth.HasAddress(nil, b.Address()))
	assert.False(t, auth.HasAddress(nil, c.Address()))

	ctxAuth := &CtxAuth{Key: "test"}
	ctx := context.Background()
	assert.Empty(t, ctxAuth.GetConditions(ctx))
	ctx = ctxAuth.SetConditions(ctx, c)
	assert.True(t, ctxAuth.HasAddress(ctx, c.Address()))
	assert.False(t, ctxAuth.HasAddress(ctx, a.Address()))
	assert.False(t, (&CtxAuth{Key: "other"}).HasAddress(ctx, c.Address()))
}
